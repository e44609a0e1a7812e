// Package enrichment joins validated transactions against the product
// catalog mapping, producing enriched copies with match status. The source
// records are never mutated and one unmatched record never aborts the batch.
package enrichment

import (
	"sort"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

// Enrich produces one EnrichedTransaction per input record. When the numeric
// product id resolves in the mapping, the catalog category, brand and rating
// are copied and the match flag is set; otherwise the enrichment fields stay
// nil and the flag stays false. Enrichment is idempotent: the same inputs
// always yield the same output.
func Enrich(transactions []models.Transaction, mapping models.ProductMapping, logger logging.Logger) []models.EnrichedTransaction {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	enriched := make([]models.EnrichedTransaction, 0, len(transactions))
	matched := 0

	for i := range transactions {
		record := models.EnrichedTransaction{Transaction: transactions[i]}

		if id, ok := models.NumericProductID(transactions[i].ProductID); ok {
			if info, found := mapping[id]; found {
				category := info.Category
				brand := info.Brand
				rating := info.Rating
				record.APICategory = &category
				record.APIBrand = &brand
				record.APIRating = &rating
				record.APIMatch = true
				matched++
			}
		}

		enriched = append(enriched, record)
	}

	logger.Info("Enriched transactions",
		logging.Field{Key: logging.FieldCount, Value: len(enriched)},
		logging.Field{Key: "matched", Value: matched})
	return enriched
}

// MatchedCount returns how many enriched records carry catalog data.
func MatchedCount(enriched []models.EnrichedTransaction) int {
	count := 0
	for i := range enriched {
		if enriched[i].APIMatch {
			count++
		}
	}
	return count
}

// UnmatchedProductIDs returns the distinct product ids of records without a
// catalog match, sorted, for the report's enrichment summary.
func UnmatchedProductIDs(enriched []models.EnrichedTransaction) []string {
	seen := make(map[string]bool)
	var ids []string
	for i := range enriched {
		if enriched[i].APIMatch {
			continue
		}
		id := enriched[i].ProductID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
