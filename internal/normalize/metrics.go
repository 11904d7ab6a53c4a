package normalize

import (
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// DeriveMetrics fills a record's per-record temporal metrics from its parsed
// dates: payment_delay (clear - due), due_days (due - invoice) and
// invoice_age_at_clearing (clear - invoice). A metric is nil whenever one of
// its inputs is nil.
func DeriveMetrics(c *model.CaseRecord) {
	c.PaymentDelay = daysBetween(c.DueDate, c.ClearDate)
	c.DueDays = daysBetween(c.InvoiceDate, c.DueDate)
	c.InvoiceAge = daysBetween(c.InvoiceDate, c.ClearDate)
}

// Partition splits records into history (closed) and open sets.
func Partition(records []model.CaseRecord) (history, open []model.CaseRecord) {
	for _, r := range records {
		if r.Closed() {
			history = append(history, r)
		} else {
			open = append(open, r)
		}
	}
	return history, open
}

// daysBetween returns to - from in whole days. Both inputs are already
// midnight-normalized, so the division is exact.
func daysBetween(from, to *time.Time) *int {
	if from == nil || to == nil {
		return nil
	}
	days := int(to.Sub(*from) / (24 * time.Hour))
	return &days
}
