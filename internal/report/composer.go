// Package report renders the analytics aggregates and enrichment summary
// into the fixed-section text report. The composition is deterministic given
// the validated and enriched record sets; only the generation timestamp
// varies, and tests pin it through the clock option.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fjacquet/sales-analytics/internal/analytics"
	"fjacquet/sales-analytics/internal/enrichment"
	"fjacquet/sales-analytics/internal/logging"
	"fjacquet/sales-analytics/internal/models"
)

const sectionWidth = 60

var hundred = decimal.NewFromInt(100)

// Composer builds the sales analytics report.
type Composer struct {
	currencySymbol string
	topProducts    int
	topCustomers   int
	lowQtyCutoff   int
	now            func() time.Time
	logger         logging.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithCurrencySymbol overrides the currency symbol used for monetary values.
func WithCurrencySymbol(symbol string) Option {
	return func(c *Composer) { c.currencySymbol = symbol }
}

// WithTopProducts overrides the number of entries in the product table.
func WithTopProducts(n int) Option {
	return func(c *Composer) { c.topProducts = n }
}

// WithTopCustomers overrides the number of entries in the customer table.
func WithTopCustomers(n int) Option {
	return func(c *Composer) { c.topCustomers = n }
}

// WithLowQtyCutoff overrides the low-performing quantity threshold.
func WithLowQtyCutoff(n int) Option {
	return func(c *Composer) { c.lowQtyCutoff = n }
}

// WithClock overrides the timestamp source, used by tests for a fixed
// generation time.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// NewComposer creates a report composer with the default layout parameters.
func NewComposer(logger logging.Logger, opts ...Option) *Composer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	c := &Composer{
		currencySymbol: "₹",
		topProducts:    analytics.DefaultTopN,
		topCustomers:   analytics.DefaultTopN,
		lowQtyCutoff:   analytics.DefaultLowQtyCutoff,
		now:            time.Now,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders the full report from the validated transactions and the
// enriched record set.
func (c *Composer) Compose(transactions []models.Transaction, enriched []models.EnrichedTransaction) string {
	var lines []string
	add := func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}
	rule := func(char string) string {
		return strings.Repeat(char, sectionWidth)
	}
	money := func(amount decimal.Decimal) string {
		return FormatMoney(amount, c.currencySymbol)
	}

	totalRevenue := analytics.TotalRevenue(transactions)
	regionStats := analytics.RegionWiseSales(transactions)
	topProducts := analytics.TopSellingProducts(transactions, c.topProducts)
	customerStats := analytics.CustomerAnalysis(transactions)
	dailyTrend := analytics.DailySalesTrend(transactions)
	peakDay := analytics.PeakSalesDay(transactions)
	lowProducts := analytics.LowPerformingProducts(transactions, c.lowQtyCutoff)

	// 1) Header
	add("%s", rule("="))
	add("           SALES ANALYTICS REPORT")
	add("         Generated: %s", c.now().Format("2006-01-02 15:04:05"))
	add("         Records Processed: %d", len(transactions))
	add("%s", rule("="))
	add("")

	// 2) Overall summary
	avgOrderValue := decimal.Zero
	if len(transactions) > 0 {
		avgOrderValue = totalRevenue.Div(decimal.NewFromInt(int64(len(transactions)))).Round(2)
	}
	firstDate, lastDate := dateRange(transactions)
	add("OVERALL SUMMARY")
	add("%s", rule("-"))
	add("%-20s %s", "Total Revenue:", money(totalRevenue))
	add("%-20s %d", "Total Transactions:", len(transactions))
	add("%-20s %s", "Average Order Value:", money(avgOrderValue))
	add("%-20s %s to %s", "Date Range:", firstDate, lastDate)
	add("")

	// 3) Region performance
	add("REGION-WISE PERFORMANCE")
	add("%s", rule("-"))
	add("%-10s%-15s%-12s%-12s", "Region", "Sales", "% of Total", "Transactions")
	for _, stat := range regionStats {
		add("%-10s%-15s%-12s%-12d",
			truncate(stat.Region, 9), money(stat.TotalSales),
			FormatPercent(stat.Percentage), stat.TransactionCount)
	}
	add("")

	// 4) Top products
	add("TOP %d PRODUCTS", c.topProducts)
	add("%s", rule("-"))
	add("%-6s%-25s%-10s%-15s", "Rank", "Product Name", "Qty Sold", "Revenue")
	for i, stat := range topProducts {
		add("%-6d%-25s%-10d%-15s",
			i+1, truncate(stat.Name, 24), stat.TotalQuantity, money(stat.TotalRevenue))
	}
	add("")

	// 5) Top customers
	add("TOP %d CUSTOMERS", c.topCustomers)
	add("%s", rule("-"))
	add("%-6s%-15s%-15s%-10s", "Rank", "Customer ID", "Total Spent", "Orders")
	for i, stat := range customerStats {
		if i == c.topCustomers {
			break
		}
		add("%-6d%-15s%-15s%-10d",
			i+1, stat.CustomerID, money(stat.TotalSpent), stat.PurchaseCount)
	}
	add("")

	// 6) Daily trend
	add("DAILY SALES TREND")
	add("%s", rule("-"))
	add("%-12s%-15s%-15s%-17s", "Date", "Revenue", "Transactions", "Unique Customers")
	for _, stat := range dailyTrend {
		add("%-12s%-15s%-15d%-17d",
			stat.Date, money(stat.Revenue), stat.TransactionCount, stat.UniqueCustomers)
	}
	add("")

	// 7) Product performance analysis
	add("PRODUCT PERFORMANCE ANALYSIS")
	add("%s", rule("-"))
	if peakDay.IsZero() {
		add("Best Selling Day: N/A")
	} else {
		add("Best Selling Day: %s | Revenue: %s | Transactions: %d",
			peakDay.Date, money(peakDay.Revenue), peakDay.TransactionCount)
	}
	add("")
	if len(lowProducts) > 0 {
		add("Low Performing Products (Total Quantity < %d)", c.lowQtyCutoff)
		add("%-25s%-10s%-15s", "Product Name", "Qty Sold", "Revenue")
		for _, stat := range lowProducts {
			add("%-25s%-10d%-15s",
				truncate(stat.Name, 24), stat.TotalQuantity, money(stat.TotalRevenue))
		}
	} else {
		add("Low Performing Products: None")
	}
	add("")
	add("Average Transaction Value per Region")
	add("%-10s%-22s", "Region", "Avg Transaction Value")
	for _, stat := range averagePerRegion(regionStats) {
		add("%-10s%-22s", truncate(stat.Region, 9), money(stat.Average))
	}
	add("")

	// 8) Enrichment summary
	matched := enrichment.MatchedCount(enriched)
	successRate := decimal.Zero
	if len(enriched) > 0 {
		successRate = decimal.NewFromInt(int64(matched)).
			Div(decimal.NewFromInt(int64(len(enriched)))).
			Mul(hundred).Round(2)
	}
	add("API ENRICHMENT SUMMARY")
	add("%s", rule("-"))
	add("%-25s %d", "Total records enriched:", matched)
	add("%-25s %s", "Success rate:", FormatPercent(successRate))
	add("Products not enriched (ProductIDs):")
	unmatched := enrichment.UnmatchedProductIDs(enriched)
	if len(unmatched) > 0 {
		for _, id := range unmatched {
			add(" - %s", id)
		}
	} else {
		add(" - None")
	}
	add("")

	c.logger.Info("Composed sales report",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return strings.Join(lines, "\n")
}

// dateRange returns the earliest and latest non-blank dates, or "N/A" for an
// empty set. Lexicographic order is chronological for YYYY-MM-DD.
func dateRange(transactions []models.Transaction) (string, string) {
	var dates []string
	for i := range transactions {
		if d := strings.TrimSpace(transactions[i].Date); d != "" {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return "N/A", "N/A"
	}
	sort.Strings(dates)
	return dates[0], dates[len(dates)-1]
}

type regionAverage struct {
	Region  string
	Average decimal.Decimal
}

// averagePerRegion derives the average transaction value per region from the
// region stats, sorted by value descending.
func averagePerRegion(stats []models.RegionStat) []regionAverage {
	averages := make([]regionAverage, 0, len(stats))
	for _, stat := range stats {
		avg := decimal.Zero
		if stat.TransactionCount > 0 {
			avg = stat.TotalSales.Div(decimal.NewFromInt(int64(stat.TransactionCount))).Round(2)
		}
		averages = append(averages, regionAverage{Region: stat.Region, Average: avg})
	}
	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].Average.GreaterThan(averages[j].Average)
	})
	return averages
}
