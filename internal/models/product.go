package models

import "github.com/shopspring/decimal"

// Product is one catalog entry as returned by the product service.
type Product struct {
	ID       int             `json:"id" yaml:"id"`
	Title    string          `json:"title" yaml:"title"`
	Category string          `json:"category" yaml:"category"`
	Brand    string          `json:"brand" yaml:"brand"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Rating   float64         `json:"rating" yaml:"rating"`
}

// ProductInfo is the subset of catalog data that gets merged into
// transactions during enrichment.
type ProductInfo struct {
	Title    string  `yaml:"title"`
	Category string  `yaml:"category"`
	Brand    string  `yaml:"brand"`
	Rating   float64 `yaml:"rating"`
}

// ProductMapping keys catalog data by numeric product id. It is built once
// per run and read-only for the rest of the pipeline.
type ProductMapping map[int]ProductInfo

// NewProductMapping builds a ProductMapping from fetched catalog entries.
func NewProductMapping(products []Product) ProductMapping {
	mapping := make(ProductMapping, len(products))
	for _, p := range products {
		mapping[p.ID] = ProductInfo{
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Rating:   p.Rating,
		}
	}
	return mapping
}
