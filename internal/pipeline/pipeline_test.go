package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sales-analytics/internal/catalog"
	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
	"fjacquet/sales-analytics/internal/pipelineerror"
	"fjacquet/sales-analytics/internal/store"
	"fjacquet/sales-analytics/internal/validation"
)

type stubFetcher struct {
	products []models.Product
	err      error
}

func (s *stubFetcher) FetchProducts(ctx context.Context) ([]models.Product, error) {
	return s.products, s.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Input.File = "data/sales_data.txt"
	cfg.Input.Delimiter = "|"
	cfg.Output.Directory = t.TempDir()
	cfg.Output.EnrichedFile = "enriched_sales_data.txt"
	cfg.Output.ReportFile = "sales_report.txt"
	cfg.Catalog.BaseURL = "https://dummyjson.com"
	cfg.Catalog.Limit = 100
	cfg.Catalog.TimeoutSeconds = 10
	cfg.Analytics.TopProducts = 5
	cfg.Analytics.TopCustomers = 5
	cfg.Analytics.LowQtyCutoff = 10
	cfg.Report.CurrencySymbol = "₹"
	return cfg
}

func staticLines(lines []string) LineSource {
	return func(filePath string, logger logging.Logger) []string {
		return lines
	}
}

func sampleLines() []string {
	return []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
		"T002|2024-12-01|P102|Mouse|5|500|C002|South",
		"T003|2024-12-02|P101|Laptop|1|45000|C001|North",
		"X004|2024-12-02|P103|Keyboard|3|1500|C003|South", // bad transaction id
	}
}

func catalogProducts() []models.Product {
	return []models.Product{
		{ID: 101, Title: "Laptop Pro", Category: "laptops", Brand: "Apple", Price: decimal.RequireFromString("45000"), Rating: 4.7},
	}
}

func newTestRunner(t *testing.T, cfg *config.Config, mock *store.MockStore, opts ...Option) *Runner {
	t.Helper()
	base := []Option{
		WithLineSource(staticLines(sampleLines())),
		WithFetcher(&stubFetcher{products: catalogProducts()}),
		WithCache(catalog.NewCache("", logging.NewMockLogger())),
		WithStore(mock, mock),
	}
	return NewRunner(cfg, logging.NewMockLogger(), append(base, opts...)...)
}

func TestRunFullPipeline(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock)

	result, err := runner.Run(context.Background(), validation.Filters{})

	require.NoError(t, err)
	assert.Equal(t, 4, result.RawLines)
	assert.Equal(t, 4, result.Parsed)
	assert.Equal(t, 1, result.Summary.Invalid)
	assert.Equal(t, 3, result.Summary.FinalCount)
	require.Len(t, result.Valid, 3)

	// Two laptop records match the catalog, the mouse does not
	assert.Equal(t, 2, result.Matched)
	require.Len(t, result.Enriched, 3)
	assert.True(t, result.Enriched[0].APIMatch)
	assert.False(t, result.Enriched[1].APIMatch)

	// Both outputs went through the store
	assert.Len(t, mock.Enriched, 3)
	require.Len(t, mock.Reports, 1)
	assert.Contains(t, mock.Reports[0], "SALES ANALYTICS REPORT")
	assert.Equal(t, result.Report, mock.Reports[0])
}

func TestRunAppliesFilters(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock)
	minAmount := decimal.RequireFromString("50000")

	result, err := runner.Run(context.Background(), validation.Filters{
		Region:    "North",
		MinAmount: &minAmount,
	})

	require.NoError(t, err)
	require.Len(t, result.Valid, 1)
	assert.Equal(t, "T001", result.Valid[0].TransactionID)
	assert.Equal(t, 1, result.Summary.FilteredByRegion)
	assert.Equal(t, 1, result.Summary.FilteredByAmount)
}

func TestRunEmptyLineSource(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock, WithLineSource(staticLines(nil)))

	_, err := runner.Run(context.Background(), validation.Filters{})

	var emptyErr *pipelineerror.EmptyDatasetError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "reading", emptyErr.Stage)
	assert.Empty(t, mock.Enriched)
	assert.Empty(t, mock.Reports)
}

func TestRunNothingParses(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock,
		WithLineSource(staticLines([]string{"not|enough|fields"})))

	_, err := runner.Run(context.Background(), validation.Filters{})

	var emptyErr *pipelineerror.EmptyDatasetError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "parsing", emptyErr.Stage)
}

func TestRunFiltersEliminateEverything(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock)

	_, err := runner.Run(context.Background(), validation.Filters{Region: "Atlantis"})

	var emptyErr *pipelineerror.EmptyDatasetError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, "validation and filtering", emptyErr.Stage)
	assert.Empty(t, mock.Reports)
}

func TestRunContinuesWhenCatalogFails(t *testing.T) {
	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock,
		WithFetcher(&stubFetcher{err: errors.New("connection refused")}))

	result, err := runner.Run(context.Background(), validation.Filters{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Matched)
	for _, record := range result.Enriched {
		assert.False(t, record.APIMatch)
	}
	assert.Contains(t, result.Report, "0.00%")
}

func TestRunFallsBackToCachedCatalog(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "catalog.yaml")
	cache := catalog.NewCache(cachePath, logging.NewMockLogger())
	require.NoError(t, cache.Save(catalogProducts()))

	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock,
		WithFetcher(&stubFetcher{err: errors.New("connection refused")}),
		WithCache(cache))

	result, err := runner.Run(context.Background(), validation.Filters{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Matched)
}

func TestRunSavesCatalogSnapshot(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "catalog.yaml")
	cache := catalog.NewCache(cachePath, logging.NewMockLogger())

	mock := store.NewMockStore()
	runner := newTestRunner(t, testConfig(t), mock, WithCache(cache))

	_, err := runner.Run(context.Background(), validation.Filters{})

	require.NoError(t, err)
	cached, err := cache.Load()
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestRunStoreFailurePropagates(t *testing.T) {
	mock := store.NewMockStore()
	mock.EnrichedErr = errors.New("disk full")
	runner := newTestRunner(t, testConfig(t), mock)

	_, err := runner.Run(context.Background(), validation.Filters{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, mock.Reports)
}
