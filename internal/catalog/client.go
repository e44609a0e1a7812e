// Package catalog fetches product metadata from the remote catalog service.
// The fetch is best-effort: the pipeline continues with an empty mapping when
// the service is unreachable.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
	"fjacquet/sales-analytics/internal/pipelineerror"
)

// DefaultLimit caps the number of products requested from the service.
const DefaultLimit = 100

// productsResponse mirrors the service's JSON envelope.
type productsResponse struct {
	Products []models.Product `json:"products"`
}

// Client talks to the product catalog service.
type Client struct {
	baseURL    string
	limit      int
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a catalog client. The timeout applies to the whole
// request; there are no retries.
func NewClient(baseURL string, limit int, timeout time.Duration, logger logging.Logger) *Client {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Client{
		baseURL:    baseURL,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchProducts retrieves the product list from the service. On any network
// error or non-success status it returns an empty slice together with a
// FetchError; callers recover by continuing without enrichment.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)
	c.logger.Info("Fetching product catalog",
		logging.Field{Key: logging.FieldURL, Value: url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &pipelineerror.FetchError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Warn("Catalog request failed")
		return nil, &pipelineerror.FetchError{URL: url, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Catalog returned non-success status",
			logging.Field{Key: logging.FieldStatus, Value: resp.StatusCode})
		return nil, &pipelineerror.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	var payload productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.WithError(err).Warn("Failed to decode catalog response")
		return nil, &pipelineerror.FetchError{URL: url, Err: err}
	}

	c.logger.Info("Fetched product catalog",
		logging.Field{Key: logging.FieldCount, Value: len(payload.Products)})
	return payload.Products, nil
}
