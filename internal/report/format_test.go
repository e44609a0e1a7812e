package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"small amount", "500", "₹500.00"},
		{"thousands grouping", "45000", "₹45,000.00"},
		{"millions grouping", "1545000.50", "₹1,545,000.50"},
		{"exactly three digits", "999", "₹999.00"},
		{"four digits", "1000", "₹1,000.00"},
		{"rounds to two places", "10.005", "₹10.01"},
		{"zero", "0", "₹0.00"},
		{"negative", "-45000.25", "-₹45,000.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(decimal.RequireFromString(tt.amount), "₹")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMoneyCustomSymbol(t *testing.T) {
	got := FormatMoney(decimal.RequireFromString("1234.5"), "$")
	assert.Equal(t, "$1,234.50", got)
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "29.13%", FormatPercent(decimal.RequireFromString("29.13")))
	assert.Equal(t, "100.00%", FormatPercent(decimal.NewFromInt(100)))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 24))
	assert.Equal(t, "abcd", truncate("abcdef", 4))
	assert.Equal(t, "日本語", truncate("日本語テスト", 3))
}
