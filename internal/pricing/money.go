package pricing

import "github.com/shopspring/decimal"

// CurrencySymbol prefixes every amount shown to operators or written to receipts
const CurrencySymbol = "₱"

var (
	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.RequireFromString("100.00")
)

// FormatCurrency renders an amount with the currency symbol and two decimals
func FormatCurrency(amount decimal.Decimal) string {
	return CurrencySymbol + amount.StringFixed(2)
}

// ValidPrice reports whether a per-page price is within the range operators may enter.
// The table itself accepts any value; this bound belongs to input handling.
func ValidPrice(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(minPrice) && price.LessThanOrEqual(maxPrice)
}
