package models

// EnrichedHeader lists the enriched-file columns in wire order: the original
// eight fields plus the four catalog columns.
var EnrichedHeader = append(append([]string{}, Header...),
	"API_Category", "API_Brand", "API_Rating", "API_Match")

// EnrichedTransaction is a Transaction plus the catalog enrichment columns.
// The merger creates one per validated transaction; instances are never
// mutated afterwards. The enrichment fields stay nil when the product id had
// no catalog match, and render as empty strings on the wire.
type EnrichedTransaction struct {
	Transaction
	APICategory *string  `csv:"API_Category"`
	APIBrand    *string  `csv:"API_Brand"`
	APIRating   *float64 `csv:"API_Rating"`
	APIMatch    bool     `csv:"API_Match"`
}
