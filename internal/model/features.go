package model

import "math"

// FeatureNames lists the model features in the fixed order the oracle was
// trained with. FeatureVector must produce values in exactly this order.
var FeatureNames = []string{
	"total_open_amount",
	"due_days",
	"avg_due_days",
	"avg_payment_delay",
	"std_payment_delay",
	"avg_days_to_clear",
	"avg_invoice_amount",
	"transaction_count",
	"late_payment_ratio",
}

// FeatureVector builds the oracle input row for one open record joined with
// its company profile. Missing or non-finite values are coerced to 0.
func FeatureVector(c *CaseRecord, p *CompanyProfile) []float64 {
	dueDays := 0.0
	if c.DueDays != nil {
		dueDays = float64(*c.DueDays)
	}

	return []float64{
		safeFeature(c.Amount),
		safeFeature(dueDays),
		safeFeature(p.AvgDueDays),
		safeFeature(p.AvgDelay),
		safeFeature(p.StdDelay),
		safeFeature(p.AvgDaysToClear),
		safeFeature(p.AvgAmount),
		safeFeature(float64(p.TransactionCount)),
		safeFeature(p.LateRatio),
	}
}

func safeFeature(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
