package sla

import (
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// Apply fills a scored record's SLA and classification fields in place.
// The record's LateRatio and prediction fields must already be set.
func Apply(c *model.CaseRecord, today time.Time) {
	c.SLADays = DeriveSLADays(c.LateRatio)
	c.SLADate = Date(c.DueDate, c.SLADays)
	c.Escalated = Escalated(today, c.SLADate)
	c.Zone = Classify(Inputs{
		Today:                today,
		DueDate:              c.DueDate,
		SLADate:              c.SLADate,
		SLADays:              c.SLADays,
		PredictedDelay:       c.PredictedDelay,
		PredictedPaymentDate: c.PredictedPaymentDate,
	})
	c.Action = model.ActionForZone(c.Zone)
}
