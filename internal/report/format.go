package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a monetary value with the currency symbol, thousands
// separators and exactly 2 decimal places ("₹1,545,000.50").
func FormatMoney(amount decimal.Decimal, symbol string) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString(symbol)
	b.WriteString(groupThousands(intPart))
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}

// FormatPercent renders a percentage at 2 decimal places ("29.13%").
func FormatPercent(value decimal.Decimal) string {
	return value.StringFixed(2) + "%"
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// truncate shortens a string to at most n runes for fixed-width columns.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
