package scoring

import (
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// dayFormat is how calendar dates are persisted on case documents.
const dayFormat = "2006-01-02"

// FieldMap lays out the classification payload written back to a case
// document. All scoring outputs are set together from one pass; a record is
// never left with a partial set.
func FieldMap(c model.CaseRecord, now time.Time) map[string]any {
	fields := map[string]any{
		"predicted_delay":        0.0,
		"predicted_payment_date": nil,
		"sla_days":               c.SLADays,
		"sla_date":               nil,
		"zone":                   string(c.Zone),
		"action":                 string(c.Action),
		"escalated":              c.Escalated,
		"late_payment_ratio":     c.LateRatio,
		"last_predicted_at":      now.UTC().Format(time.RFC3339),
	}

	if c.PredictedDelay != nil {
		fields["predicted_delay"] = *c.PredictedDelay
	}
	if c.PredictedPaymentDate != nil {
		fields["predicted_payment_date"] = c.PredictedPaymentDate.Format(dayFormat)
	}
	if c.SLADate != nil {
		fields["sla_date"] = c.SLADate.Format(dayFormat)
	}

	return fields
}
