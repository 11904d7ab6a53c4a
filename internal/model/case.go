// Package model defines the core domain models used throughout the application.
package model

import "time"

// CaseRecord represents a single receivable (invoice) from the case collection.
// Temporal fields are nil when the stored value was absent or unparseable.
type CaseRecord struct {
	DocID        string
	CustomerID   string
	CustomerName string

	InvoiceDate *time.Time
	DueDate     *time.Time
	ClearDate   *time.Time

	// Amount is normalized into the reference currency at ingestion.
	Amount   float64
	Currency string
	// OriginalAmount is the first-seen amount, nil when the stored document
	// has not been backfilled yet.
	OriginalAmount *float64

	IsOpen bool

	// Derived per-record metrics in whole days, nil when an input date is nil.
	PaymentDelay *int // clear_date - due_date
	DueDays      *int // due_date - invoice_date
	InvoiceAge   *int // clear_date - invoice_date

	// Scoring outputs. Set together by one scoring pass, only on open records.
	PredictedDelay       *float64
	PredictedPaymentDate *time.Time
	SLADays              int
	SLADate              *time.Time
	Zone                 Zone
	Action               Action
	Escalated            bool
	LateRatio            float64
}

// Closed reports whether the record is a settled receivable usable as history.
func (c *CaseRecord) Closed() bool {
	return !c.IsOpen
}
