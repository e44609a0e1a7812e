// Package salesparser turns raw pipe-delimited lines into typed transaction
// records. Malformed lines are dropped, never fatal: bad input degrades to
// fewer records.
package salesparser

import (
	"strings"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

// Delimiter separates the fields of a raw sales record.
const Delimiter = "|"

// Parse converts raw data lines (header already excluded) into Transaction
// records. A line is silently dropped when it does not split into exactly
// eight fields or when its quantity or unit price fails numeric conversion.
// The dropped count is reported through the logger as a data-quality signal.
func Parse(lines []string, logger logging.Logger) []models.Transaction {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	transactions := make([]models.Transaction, 0, len(lines))
	dropped := 0

	for _, line := range lines {
		tx, ok := parseLine(line)
		if !ok {
			dropped++
			continue
		}
		transactions = append(transactions, tx)
	}

	logger.Info("Parsed sales records",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "dropped", Value: dropped})
	return transactions
}

// parseLine parses one raw line. The boolean result is false for lines that
// must be dropped.
func parseLine(line string) (models.Transaction, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return models.Transaction{}, false
	}

	parts := strings.Split(line, Delimiter)
	if len(parts) != models.FieldCount {
		return models.Transaction{}, false
	}

	quantity, err := models.ParseQuantity(parts[4])
	if err != nil {
		return models.Transaction{}, false
	}
	unitPrice, err := models.ParsePrice(parts[5])
	if err != nil {
		return models.Transaction{}, false
	}

	return models.Transaction{
		TransactionID: strings.TrimSpace(parts[0]),
		Date:          strings.TrimSpace(parts[1]),
		ProductID:     strings.TrimSpace(parts[2]),
		ProductName:   models.CleanProductName(parts[3]),
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		CustomerID:    strings.TrimSpace(parts[6]),
		Region:        strings.TrimSpace(parts[7]),
	}, true
}
