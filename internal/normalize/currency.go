package normalize

// ReferenceCurrency is the currency all amounts are normalized into.
const ReferenceCurrency = "USD"

// conversionRates holds fixed multiplicative rates into the reference
// currency. Unlisted currencies pass through unchanged.
var conversionRates = map[string]float64{
	"CAD": 0.75,
}

// NormalizeAmount converts an amount into the reference currency using the
// static rate table.
func NormalizeAmount(amount float64, currency string) float64 {
	if rate, ok := conversionRates[currency]; ok {
		return amount * rate
	}
	return amount
}
