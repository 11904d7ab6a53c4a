package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/batch"
	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// Persist queues a merge-upsert for every profile into the company_features
// collection, keyed by customer id. The caller flushes the writer at the end
// of the phase.
func Persist(ctx context.Context, writer *batch.Writer, profiles []model.CompanyProfile, now time.Time) error {
	for _, p := range profiles {
		if p.CustomerID == "" {
			// Receivables with no customer reference cannot key a profile
			// document; they still contributed to open-record scoring.
			continue
		}
		if err := writer.Queue(ctx, p.CustomerID, FieldMap(p, now)); err != nil {
			return fmt.Errorf("failed to queue profile %s: %w", p.CustomerID, err)
		}
	}
	return nil
}

// FieldMap lays a profile out as the flat document the store persists.
func FieldMap(p model.CompanyProfile, now time.Time) map[string]any {
	return map[string]any{
		"cust_number":          p.CustomerID,
		"company_name":         p.DisplayName,
		"avg_payment_delay":    p.AvgDelay,
		"std_payment_delay":    p.StdDelay,
		"min_delay":            p.MinDelay,
		"max_delay":            p.MaxDelay,
		"avg_days_to_clear":    p.AvgDaysToClear,
		"avg_due_days":         p.AvgDueDays,
		"avg_invoice_amount":   p.AvgAmount,
		"total_lifetime_value": p.LifetimeValue,
		"transaction_count":    p.TransactionCount,
		"late_payment_ratio":   p.LateRatio,
		"last_updated_at":      now.UTC().Format(time.RFC3339),
	}
}
