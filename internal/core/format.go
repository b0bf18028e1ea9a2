package core

import "github.com/shopspring/decimal"

// Display precision contracts for rendered documents: currency and gram
// weights to 3 decimal places, percentages to 2.
const (
	CurrencyPlaces = 3
	WeightPlaces   = 3
	PercentPlaces  = 2
)

// FormatCurrency renders a currency value at display precision.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixed(CurrencyPlaces)
}

// FormatWeight renders a gram weight at display precision.
func FormatWeight(d decimal.Decimal) string {
	return d.StringFixed(WeightPlaces)
}

// FormatPercent renders a percentage at display precision.
func FormatPercent(d decimal.Decimal) string {
	return d.StringFixed(PercentPlaces)
}
