package pricing

// purity maps a karat designation to the fractional gold content used to
// scale prices off the 24K reference rate. 24K is quoted as 99.9 fine,
// matching hallmarking practice.
var purity = map[int]float64{
	24: 0.999,
	22: 0.916,
	20: 0.833,
	18: 0.750,
}

// SupportedKarats returns the tabulated karat designations, highest first.
func SupportedKarats() []int {
	return []int{24, 22, 20, 18}
}

// PurityOf returns the tabulated purity fraction for a karat and whether
// that karat is tabulated.
func PurityOf(karat int) (float64, bool) {
	p, ok := purity[karat]
	return p, ok
}

// PurityRatio returns the factor that converts a 24K price into the price
// for the requested karat. Tabulated karats use the purity table; any
// other positive karat falls back to a linear karat/24 approximation.
func PurityRatio(karat float64) float64 {
	if k := int(karat); float64(k) == karat {
		if p, ok := purity[k]; ok {
			return p / purity[24]
		}
	}
	return karat / 24.0
}

// RateForKarat derives the per-gram rate for a karat from the 24K
// reference rate. Pure; never errors for non-negative numeric karats.
func RateForKarat(rate24K, karat float64) float64 {
	return rate24K * PurityRatio(karat)
}
