package pricing

import "github.com/shopspring/decimal"

// Round2 rounds a monetary value to two decimal places, half away from
// zero. Intermediate engine arithmetic stays in full float64 precision;
// only the published components of a result pass through here.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatAmount renders a monetary value with exactly two decimal places
// for CSV rows and invoice lines.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
