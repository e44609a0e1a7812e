// Package models provides the data structures used throughout the application.
package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldCount is the number of pipe-separated fields in a source record.
const FieldCount = 8

// Header lists the source-file columns in wire order.
var Header = []string{
	"TransactionID", "Date", "ProductID", "ProductName",
	"Quantity", "UnitPrice", "CustomerID", "Region",
}

// Transaction represents a single sales transaction from the pipe-delimited feed.
type Transaction struct {
	TransactionID string          `csv:"TransactionID"` // Must start with "T"
	Date          string          `csv:"Date"`          // YYYY-MM-DD, sorts lexicographically
	ProductID     string          `csv:"ProductID"`     // Must start with "P"; numeric suffix keys the catalog lookup
	ProductName   string          `csv:"ProductName"`   // Commas normalized to spaces at parse time
	Quantity      int             `csv:"Quantity"`      // > 0 after validation
	UnitPrice     decimal.Decimal `csv:"UnitPrice"`     // > 0 after validation
	CustomerID    string          `csv:"CustomerID"`    // Must start with "C"
	Region        string          `csv:"Region"`
}

// Amount returns the transaction value, Quantity * UnitPrice. It is computed
// on demand and never stored on the record.
func (t *Transaction) Amount() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// ParseQuantity converts a raw quantity field to an int. Thousands separators
// are stripped first ("1,500" -> 1500).
func ParseQuantity(raw string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.Atoi(cleaned)
}

// ParsePrice converts a raw unit-price field to a decimal. Thousands
// separators are stripped first ("45,000.50" -> 45000.50).
func ParsePrice(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return decimal.NewFromString(cleaned)
}

// CleanProductName normalizes a raw product-name field. Commas are a
// forbidden character in the pipe-delimited format, so any that slipped in
// are replaced with spaces.
func CleanProductName(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, ",", " "))
}

// NumericProductID extracts the numeric suffix from a ProductID ("P101" ->
// 101). The second return value is false when the id does not conform to the
// "P" + digits shape, in which case no catalog lookup is possible.
func NumericProductID(productID string) (int, bool) {
	id := strings.TrimSpace(productID)
	if !strings.HasPrefix(id, "P") {
		return 0, false
	}
	suffix := id[1:]
	if suffix == "" {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || suffix[0] == '-' || suffix[0] == '+' {
		return 0, false
	}
	return n, true
}
