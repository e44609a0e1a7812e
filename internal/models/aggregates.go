package models

import "github.com/shopspring/decimal"

// RegionStat holds per-region revenue figures. Percentage is the region's
// share of the grand total, rounded to 2 decimal places.
type RegionStat struct {
	Region           string
	TotalSales       decimal.Decimal
	TransactionCount int
	Percentage       decimal.Decimal
}

// ProductStat holds aggregated quantity and revenue for one product name.
type ProductStat struct {
	Name          string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}

// CustomerStat holds per-customer purchase behavior. ProductsBought is the
// distinct product names, sorted alphabetically.
type CustomerStat struct {
	CustomerID     string
	TotalSpent     decimal.Decimal
	PurchaseCount  int
	AvgOrderValue  decimal.Decimal
	ProductsBought []string
}

// DailyStat holds one day's revenue, transaction count and distinct-customer
// count.
type DailyStat struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
	UniqueCustomers  int
}

// PeakDay identifies the date with the highest aggregated revenue. The zero
// value is the sentinel for an empty transaction set.
type PeakDay struct {
	Date             string
	Revenue          decimal.Decimal
	TransactionCount int
}

// IsZero reports whether this is the no-transactions sentinel.
func (p PeakDay) IsZero() bool {
	return p.Date == ""
}

// FilterSummary reports record counts at each stage of validation and
// filtering.
type FilterSummary struct {
	TotalInput       int
	Invalid          int
	FilteredByRegion int
	FilteredByAmount int
	FinalCount       int
}
