package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

func makeTransaction(id, date, productID, name string, qty int, price string, customerID, region string) models.Transaction {
	return models.Transaction{
		TransactionID: id,
		Date:          date,
		ProductID:     productID,
		ProductName:   name,
		Quantity:      qty,
		UnitPrice:     decimal.RequireFromString(price),
		CustomerID:    customerID,
		Region:        region,
	}
}

func TestValidateAcceptsGoodRecord(t *testing.T) {
	tx := makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North")
	assert.NoError(t, Validate(&tx))
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Transaction)
	}{
		{"blank transaction id", func(tx *models.Transaction) { tx.TransactionID = "" }},
		{"blank date", func(tx *models.Transaction) { tx.Date = " " }},
		{"blank product name", func(tx *models.Transaction) { tx.ProductName = "" }},
		{"blank region", func(tx *models.Transaction) { tx.Region = "" }},
		{"wrong transaction prefix", func(tx *models.Transaction) { tx.TransactionID = "X001" }},
		{"lowercase transaction prefix", func(tx *models.Transaction) { tx.TransactionID = "t001" }},
		{"wrong product prefix", func(tx *models.Transaction) { tx.ProductID = "101" }},
		{"wrong customer prefix", func(tx *models.Transaction) { tx.CustomerID = "K001" }},
		{"zero quantity", func(tx *models.Transaction) { tx.Quantity = 0 }},
		{"negative quantity", func(tx *models.Transaction) { tx.Quantity = -3 }},
		{"zero price", func(tx *models.Transaction) { tx.UnitPrice = decimal.Zero }},
		{"negative price", func(tx *models.Transaction) { tx.UnitPrice = decimal.NewFromInt(-10) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North")
			tt.mutate(&tx)
			assert.Error(t, Validate(&tx))
		})
	}
}

func TestValidateAndFilterCountsInvalid(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North"),
		makeTransaction("T002", "2024-12-01", "P102", "Mouse", 0, "500", "C002", "South"),
	}

	valid, invalid, summary := ValidateAndFilter(transactions, Filters{}, logging.NewMockLogger())

	require.Len(t, valid, 1)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, 2, summary.TotalInput)
	assert.Equal(t, 1, summary.Invalid)
	assert.Equal(t, 0, summary.FilteredByRegion)
	assert.Equal(t, 0, summary.FilteredByAmount)
	assert.Equal(t, 1, summary.FinalCount)
}

func TestValidateAndFilterRegionAndAmount(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North"),  // 90000
		makeTransaction("T002", "2024-12-01", "P102", "Monitor", 4, "20000", "C002", "South"), // 80000
	}
	min := decimal.NewFromInt(50000)

	valid, invalid, summary := ValidateAndFilter(transactions, Filters{
		Region:    "North",
		MinAmount: &min,
	}, logging.NewMockLogger())

	require.Len(t, valid, 1)
	assert.Equal(t, "T001", valid[0].TransactionID)
	assert.Equal(t, 0, invalid)
	assert.Equal(t, 1, summary.FilteredByRegion)
	assert.Equal(t, 0, summary.FilteredByAmount)
	assert.Equal(t, 1, summary.FinalCount)
}

func TestValidateAndFilterAmountBoundsInclusive(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 1, "100", "C001", "North"),
		makeTransaction("T002", "2024-12-01", "P102", "Mouse", 1, "200", "C002", "North"),
		makeTransaction("T003", "2024-12-01", "P103", "Keyboard", 1, "300", "C003", "North"),
	}
	min := decimal.NewFromInt(100)
	max := decimal.NewFromInt(200)

	valid, _, summary := ValidateAndFilter(transactions, Filters{
		MinAmount: &min,
		MaxAmount: &max,
	}, logging.NewMockLogger())

	require.Len(t, valid, 2)
	assert.Equal(t, "T001", valid[0].TransactionID)
	assert.Equal(t, "T002", valid[1].TransactionID)
	assert.Equal(t, 1, summary.FilteredByAmount)
}

func TestValidateAndFilterDoesNotMutateInput(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North"),
	}
	original := transactions[0]

	_, _, _ = ValidateAndFilter(transactions, Filters{Region: "South"}, logging.NewMockLogger())

	assert.Equal(t, original, transactions[0])
}

func TestAvailableRegions(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "South"),
		makeTransaction("T002", "2024-12-01", "P102", "Mouse", 1, "500", "C002", "North"),
		makeTransaction("T003", "2024-12-02", "P103", "Keyboard", 3, "1500", "C003", "South"),
	}

	assert.Equal(t, []string{"North", "South"}, AvailableRegions(transactions))
	assert.Empty(t, AvailableRegions(nil))
}

func TestAmountRange(t *testing.T) {
	transactions := []models.Transaction{
		makeTransaction("T001", "2024-12-01", "P101", "Laptop", 2, "45000", "C001", "North"),  // 90000
		makeTransaction("T002", "2024-12-01", "P102", "Mouse", 1, "500", "C002", "South"),     // 500
		makeTransaction("T003", "2024-12-02", "P103", "Monitor", 4, "20000", "C003", "East"),  // 80000
	}

	min, max, ok := AmountRange(transactions)
	require.True(t, ok)
	assert.Equal(t, "500", min.String())
	assert.Equal(t, "90000", max.String())

	_, _, ok = AmountRange(nil)
	assert.False(t, ok)
}
