package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/pipelineerror"
)

const catalogPayload = `{
	"products": [
		{"id": 101, "title": "Laptop Pro", "category": "laptops", "brand": "Apple", "price": 45000, "rating": 4.7},
		{"id": 102, "title": "Wireless Mouse", "category": "peripherals", "brand": "Logitech", "price": 500, "rating": 4.2}
	],
	"total": 2,
	"skip": 0,
	"limit": 100
}`

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 5*time.Second, logging.NewMockLogger())
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, 101, products[0].ID)
	assert.Equal(t, "Laptop Pro", products[0].Title)
	assert.Equal(t, "laptops", products[0].Category)
	assert.Equal(t, "Apple", products[0].Brand)
	assert.Equal(t, "45000", products[0].Price.String())
	assert.InDelta(t, 4.7, products[0].Rating, 0.0001)
}

func TestFetchProductsClampsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 500, 5*time.Second, logging.NewMockLogger())
	_, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
}

func TestFetchProductsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 5*time.Second, logging.NewMockLogger())
	products, err := client.FetchProducts(context.Background())

	require.Error(t, err)
	assert.Nil(t, products)

	var fetchErr *pipelineerror.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode)
}

func TestFetchProductsUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 100, 2*time.Second, logging.NewMockLogger())
	products, err := client.FetchProducts(context.Background())

	require.Error(t, err)
	assert.Nil(t, products)

	var fetchErr *pipelineerror.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchProductsMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products": [`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 100, 5*time.Second, logging.NewMockLogger())
	_, err := client.FetchProducts(context.Background())

	require.Error(t, err)
	var fetchErr *pipelineerror.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestFetchProductsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catalogPayload))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, 100, 5*time.Second, logging.NewMockLogger())
	_, err := client.FetchProducts(ctx)
	assert.Error(t, err)
}
