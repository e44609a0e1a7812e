package catalog

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"fjacquet/sales-analytics/internal/fileutils"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

// cachedProduct is the YAML shape of one catalog entry. Price is kept as a
// string because decimal.Decimal has no YAML representation of its own.
type cachedProduct struct {
	ID       int     `yaml:"id"`
	Title    string  `yaml:"title"`
	Category string  `yaml:"category"`
	Brand    string  `yaml:"brand"`
	Price    string  `yaml:"price"`
	Rating   float64 `yaml:"rating"`
}

// Cache persists the last successful catalog fetch as a YAML snapshot so a
// run can still enrich when the service is down. An empty path disables
// caching.
type Cache struct {
	path   string
	logger logging.Logger
}

// NewCache creates a catalog cache backed by the given file path.
func NewCache(path string, logger logging.Logger) *Cache {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Cache{path: path, logger: logger}
}

// Save writes the product list to the cache file.
func (c *Cache) Save(products []models.Product) error {
	if c.path == "" {
		return nil
	}
	cached := make([]cachedProduct, 0, len(products))
	for _, p := range products {
		cached = append(cached, cachedProduct{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Price:    p.Price.String(),
			Rating:   p.Rating,
		})
	}
	data, err := yaml.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog cache: %w", err)
	}
	if err := fileutils.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	c.logger.Debug("Saved catalog cache",
		logging.Field{Key: logging.FieldFile, Value: c.path},
		logging.Field{Key: logging.FieldCount, Value: len(products)})
	return nil
}

// Load reads the product list from the cache file. A missing or disabled
// cache yields an empty slice without an error.
func (c *Cache) Load() ([]models.Product, error) {
	if c.path == "" || !fileutils.FileExists(c.path) {
		return nil, nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}
	var cached []cachedProduct
	if err := yaml.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog cache: %w", err)
	}
	products := make([]models.Product, 0, len(cached))
	for _, p := range cached {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			price = decimal.Zero
		}
		products = append(products, models.Product{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Price:    price,
			Rating:   p.Rating,
		})
	}
	c.logger.Debug("Loaded catalog cache",
		logging.Field{Key: logging.FieldFile, Value: c.path},
		logging.Field{Key: logging.FieldCount, Value: len(products)})
	return products, nil
}
