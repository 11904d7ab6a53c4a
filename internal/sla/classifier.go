// Package sla derives service-level deadlines from customer payment history
// and classifies open records into risk zones. Everything here is a pure
// function of its inputs and the injected reference date; zones carry no
// memory between runs and can move in either direction as predictions and
// dates change.
package sla

import (
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"
)

// DeriveSLADays maps a customer's historical lateness to the grace period
// (days past due) before a record counts as critically breached. Boundaries
// are inclusive on the upper branch.
func DeriveSLADays(lateRatio float64) int {
	switch {
	case lateRatio >= 0.8:
		return 3
	case lateRatio >= 0.5:
		return 5
	case lateRatio >= 0.2:
		return 10
	default:
		return 15
	}
}

// Date returns due + slaDays, or nil when the due date is unknown.
func Date(dueDate *time.Time, slaDays int) *time.Time {
	if dueDate == nil {
		return nil
	}
	d := dueDate.AddDate(0, 0, slaDays)
	return &d
}

// Escalated reports whether today has reached the SLA deadline. Unknown
// deadlines never escalate.
func Escalated(today time.Time, slaDate *time.Time) bool {
	return slaDate != nil && !today.Before(*slaDate)
}

// Inputs are the facts the classifier decides on. Today must be
// midnight-normalized like every stored date.
type Inputs struct {
	Today                time.Time
	DueDate              *time.Time
	SLADate              *time.Time
	PredictedDelay       *float64
	PredictedPaymentDate *time.Time
	SLADays              int
}

// Classify assigns a risk zone, evaluated in strict priority order:
//
//  1. RED    — the SLA deadline is known and reached (inclusive).
//  2. GREEN  — not yet due.
//  3. ORANGE — past due with prediction data missing (safety fallback).
//  4. YELLOW — past due but the oracle still expects timely payment within SLA.
//  5. ORANGE — every remaining past-due case: the promised delay exceeds the
//     SLA, or the predicted settlement date has passed without clearing.
func Classify(in Inputs) model.Zone {
	if in.SLADate != nil && !in.Today.Before(*in.SLADate) {
		return model.ZoneRed
	}

	if in.DueDate != nil && in.Today.Before(*in.DueDate) {
		return model.ZoneGreen
	}

	if in.PredictedDelay == nil || in.PredictedPaymentDate == nil {
		return model.ZoneOrange
	}

	if *in.PredictedDelay <= float64(in.SLADays) && !in.Today.After(*in.PredictedPaymentDate) {
		return model.ZoneYellow
	}

	return model.ZoneOrange
}
