// Package validation enforces the record-level rules on parsed transactions
// and applies the optional caller-supplied filters.
package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
	"fjacquet/sales-analytics/internal/pipelineerror"
)

// Filters holds the optional post-validation filters. An empty Region means
// no region filter; a nil amount bound leaves that side unbounded.
type Filters struct {
	Region    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

// Validate checks one transaction against the validation rules, first failing
// rule wins. It returns nil for a valid record.
func Validate(tx *models.Transaction) error {
	for _, field := range []struct {
		name  string
		value string
	}{
		{"TransactionID", tx.TransactionID},
		{"Date", tx.Date},
		{"ProductID", tx.ProductID},
		{"ProductName", tx.ProductName},
		{"CustomerID", tx.CustomerID},
		{"Region", tx.Region},
	} {
		if strings.TrimSpace(field.value) == "" {
			return &pipelineerror.ValidationError{
				TransactionID: tx.TransactionID,
				Rule:          field.name + " must not be blank",
			}
		}
	}

	if !strings.HasPrefix(tx.TransactionID, "T") {
		return &pipelineerror.ValidationError{
			TransactionID: tx.TransactionID,
			Rule:          "TransactionID must start with 'T'",
		}
	}
	if !strings.HasPrefix(tx.ProductID, "P") {
		return &pipelineerror.ValidationError{
			TransactionID: tx.TransactionID,
			Rule:          "ProductID must start with 'P'",
		}
	}
	if !strings.HasPrefix(tx.CustomerID, "C") {
		return &pipelineerror.ValidationError{
			TransactionID: tx.TransactionID,
			Rule:          "CustomerID must start with 'C'",
		}
	}

	if tx.Quantity <= 0 {
		return &pipelineerror.ValidationError{
			TransactionID: tx.TransactionID,
			Rule:          "Quantity must be greater than zero",
		}
	}
	if !tx.UnitPrice.IsPositive() {
		return &pipelineerror.ValidationError{
			TransactionID: tx.TransactionID,
			Rule:          "UnitPrice must be greater than zero",
		}
	}

	return nil
}

// ValidateAndFilter validates the parsed records and then applies the
// filters, region first, amount range second. Filtering never re-validates;
// it only removes records. The summary reports counts at every stage.
func ValidateAndFilter(transactions []models.Transaction, filters Filters, logger logging.Logger) ([]models.Transaction, int, models.FilterSummary) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	summary := models.FilterSummary{TotalInput: len(transactions)}

	valid := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		if err := Validate(&transactions[i]); err != nil {
			summary.Invalid++
			logger.Debug("Rejected transaction",
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		valid = append(valid, transactions[i])
	}

	filtered := valid
	if filters.Region != "" {
		before := len(filtered)
		kept := filtered[:0:0]
		for _, tx := range filtered {
			if tx.Region == filters.Region {
				kept = append(kept, tx)
			}
		}
		filtered = kept
		summary.FilteredByRegion = before - len(filtered)
		logger.Info("Applied region filter",
			logging.Field{Key: logging.FieldRegion, Value: filters.Region},
			logging.Field{Key: logging.FieldCount, Value: len(filtered)})
	}

	if filters.MinAmount != nil || filters.MaxAmount != nil {
		before := len(filtered)
		kept := filtered[:0:0]
		for _, tx := range filtered {
			if amountInRange(&tx, filters.MinAmount, filters.MaxAmount) {
				kept = append(kept, tx)
			}
		}
		filtered = kept
		summary.FilteredByAmount = before - len(filtered)
		logger.Info("Applied amount filter",
			logging.Field{Key: logging.FieldCount, Value: len(filtered)})
	}

	summary.FinalCount = len(filtered)

	logger.Info("Validation complete",
		logging.Field{Key: logging.FieldCount, Value: summary.FinalCount},
		logging.Field{Key: logging.FieldInvalid, Value: summary.Invalid})
	return filtered, summary.Invalid, summary
}

// amountInRange checks the inclusive [min, max] bounds against the
// transaction amount.
func amountInRange(tx *models.Transaction, min, max *decimal.Decimal) bool {
	amount := tx.Amount()
	if min != nil && amount.LessThan(*min) {
		return false
	}
	if max != nil && amount.GreaterThan(*max) {
		return false
	}
	return true
}

// AvailableRegions returns the sorted distinct regions present in the
// transaction set. Used to show filter options before a run.
func AvailableRegions(transactions []models.Transaction) []string {
	seen := make(map[string]bool)
	var regions []string
	for i := range transactions {
		region := strings.TrimSpace(transactions[i].Region)
		if region == "" || seen[region] {
			continue
		}
		seen[region] = true
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}

// AmountRange returns the minimum and maximum transaction amounts. The
// boolean result is false for an empty set.
func AmountRange(transactions []models.Transaction) (decimal.Decimal, decimal.Decimal, bool) {
	if len(transactions) == 0 {
		return decimal.Zero, decimal.Zero, false
	}
	min := transactions[0].Amount()
	max := min
	for i := 1; i < len(transactions); i++ {
		amount := transactions[i].Amount()
		if amount.LessThan(min) {
			min = amount
		}
		if amount.GreaterThan(max) {
			max = amount
		}
	}
	return min, max, true
}
