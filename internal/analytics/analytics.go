// Package analytics computes the descriptive aggregates over a validated
// transaction set. Every function is a pure, independent pass: it receives
// the record slice read-only and returns a freshly built result. Groupings
// track first-seen key order so that sort tie-breaks are deterministic with
// respect to the original record order.
package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/sales-analytics/internal/models"
)

// DefaultTopN is the number of entries returned by TopSellingProducts when
// the caller passes a non-positive n.
const DefaultTopN = 5

// DefaultLowQtyCutoff is the quantity threshold below which a product counts
// as low performing.
const DefaultLowQtyCutoff = 10

var hundred = decimal.NewFromInt(100)

// TotalRevenue sums Quantity * UnitPrice across all records.
func TotalRevenue(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		total = total.Add(transactions[i].Amount())
	}
	return total
}

// RegionWiseSales groups by region, summing amount and counting transactions
// per group. Percentage is the region's share of the grand total rounded to
// 2 decimal places; it is zero for every region when there is no revenue.
// The result is sorted by total sales descending, ties kept in first-seen
// order. Blank regions are excluded from the grouping.
func RegionWiseSales(transactions []models.Transaction) []models.RegionStat {
	index := make(map[string]int)
	var stats []models.RegionStat
	grandTotal := decimal.Zero

	for i := range transactions {
		region := strings.TrimSpace(transactions[i].Region)
		if region == "" {
			continue
		}
		amount := transactions[i].Amount()
		grandTotal = grandTotal.Add(amount)

		pos, ok := index[region]
		if !ok {
			pos = len(stats)
			index[region] = pos
			stats = append(stats, models.RegionStat{Region: region, TotalSales: decimal.Zero})
		}
		stats[pos].TotalSales = stats[pos].TotalSales.Add(amount)
		stats[pos].TransactionCount++
	}

	for i := range stats {
		if grandTotal.IsPositive() {
			stats[i].Percentage = stats[i].TotalSales.Div(grandTotal).Mul(hundred).Round(2)
		} else {
			stats[i].Percentage = decimal.Zero
		}
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales.GreaterThan(stats[j].TotalSales)
	})
	return stats
}

// productSummary aggregates quantity and revenue by product name in
// first-seen order. Blank product names are excluded.
func productSummary(transactions []models.Transaction) []models.ProductStat {
	index := make(map[string]int)
	var stats []models.ProductStat

	for i := range transactions {
		name := strings.TrimSpace(transactions[i].ProductName)
		if name == "" {
			continue
		}
		pos, ok := index[name]
		if !ok {
			pos = len(stats)
			index[name] = pos
			stats = append(stats, models.ProductStat{Name: name, TotalRevenue: decimal.Zero})
		}
		stats[pos].TotalQuantity += transactions[i].Quantity
		stats[pos].TotalRevenue = stats[pos].TotalRevenue.Add(transactions[i].Amount())
	}
	return stats
}

// TopSellingProducts returns at most n products sorted by total quantity
// descending, total revenue descending on ties.
func TopSellingProducts(transactions []models.Transaction, n int) []models.ProductStat {
	if n <= 0 {
		n = DefaultTopN
	}
	stats := productSummary(transactions)

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].TotalQuantity != stats[j].TotalQuantity {
			return stats[i].TotalQuantity > stats[j].TotalQuantity
		}
		return stats[i].TotalRevenue.GreaterThan(stats[j].TotalRevenue)
	})

	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformingProducts returns products whose aggregated quantity is
// strictly below the threshold, sorted by quantity ascending, revenue
// ascending on ties.
func LowPerformingProducts(transactions []models.Transaction, threshold int) []models.ProductStat {
	stats := productSummary(transactions)

	var low []models.ProductStat
	for _, s := range stats {
		if s.TotalQuantity < threshold {
			low = append(low, s)
		}
	}

	sort.SliceStable(low, func(i, j int) bool {
		if low[i].TotalQuantity != low[j].TotalQuantity {
			return low[i].TotalQuantity < low[j].TotalQuantity
		}
		return low[i].TotalRevenue.LessThan(low[j].TotalRevenue)
	})
	return low
}

// CustomerAnalysis groups by customer id, summing spend, counting purchases
// and collecting the distinct product names bought (sorted alphabetically).
// Average order value is total spent over purchase count, rounded to 2
// decimal places. The result is sorted by total spent descending, ties kept
// in first-seen order. Blank customer ids are excluded.
func CustomerAnalysis(transactions []models.Transaction) []models.CustomerStat {
	index := make(map[string]int)
	products := make(map[string]map[string]bool)
	var stats []models.CustomerStat

	for i := range transactions {
		customerID := strings.TrimSpace(transactions[i].CustomerID)
		if customerID == "" {
			continue
		}
		pos, ok := index[customerID]
		if !ok {
			pos = len(stats)
			index[customerID] = pos
			products[customerID] = make(map[string]bool)
			stats = append(stats, models.CustomerStat{CustomerID: customerID, TotalSpent: decimal.Zero})
		}
		stats[pos].TotalSpent = stats[pos].TotalSpent.Add(transactions[i].Amount())
		stats[pos].PurchaseCount++

		if name := strings.TrimSpace(transactions[i].ProductName); name != "" {
			products[customerID][name] = true
		}
	}

	for i := range stats {
		// A group always implies at least one purchase
		count := decimal.NewFromInt(int64(stats[i].PurchaseCount))
		stats[i].AvgOrderValue = stats[i].TotalSpent.Div(count).Round(2)

		names := make([]string, 0, len(products[stats[i].CustomerID]))
		for name := range products[stats[i].CustomerID] {
			names = append(names, name)
		}
		sort.Strings(names)
		stats[i].ProductsBought = names
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent.GreaterThan(stats[j].TotalSpent)
	})
	return stats
}

// DailySalesTrend groups by date, summing revenue, counting transactions and
// distinct customers per day, sorted chronologically. The lexicographic sort
// is chronological for the YYYY-MM-DD date format. Blank dates are excluded.
func DailySalesTrend(transactions []models.Transaction) []models.DailyStat {
	index := make(map[string]int)
	customers := make(map[string]map[string]bool)
	var stats []models.DailyStat

	for i := range transactions {
		date := strings.TrimSpace(transactions[i].Date)
		if date == "" {
			continue
		}
		pos, ok := index[date]
		if !ok {
			pos = len(stats)
			index[date] = pos
			customers[date] = make(map[string]bool)
			stats = append(stats, models.DailyStat{Date: date, Revenue: decimal.Zero})
		}
		stats[pos].Revenue = stats[pos].Revenue.Add(transactions[i].Amount())
		stats[pos].TransactionCount++

		if customerID := strings.TrimSpace(transactions[i].CustomerID); customerID != "" {
			customers[date][customerID] = true
		}
	}

	for i := range stats {
		stats[i].UniqueCustomers = len(customers[stats[i].Date])
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Date < stats[j].Date
	})
	return stats
}

// PeakSalesDay returns the date with the highest aggregated revenue. Ties go
// to the first date encountered in record order. The zero PeakDay is
// returned for an empty set.
func PeakSalesDay(transactions []models.Transaction) models.PeakDay {
	index := make(map[string]int)
	var days []models.PeakDay

	for i := range transactions {
		date := strings.TrimSpace(transactions[i].Date)
		if date == "" {
			continue
		}
		pos, ok := index[date]
		if !ok {
			pos = len(days)
			index[date] = pos
			days = append(days, models.PeakDay{Date: date, Revenue: decimal.Zero})
		}
		days[pos].Revenue = days[pos].Revenue.Add(transactions[i].Amount())
		days[pos].TransactionCount++
	}

	if len(days) == 0 {
		return models.PeakDay{Revenue: decimal.Zero}
	}

	peak := days[0]
	for _, day := range days[1:] {
		if day.Revenue.GreaterThan(peak.Revenue) {
			peak = day
		}
	}
	return peak
}
