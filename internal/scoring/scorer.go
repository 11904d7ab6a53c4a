// Package scoring joins open records with their company profiles, builds
// the fixed-order feature vectors, and obtains delay predictions from the
// external oracle.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/model"
	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// Scorer predicts settlement behavior for open records.
type Scorer struct {
	predictor service.Predictor
}

// NewScorer creates a scorer backed by the given predictor.
func NewScorer(predictor service.Predictor) *Scorer {
	return &Scorer{predictor: predictor}
}

// Score joins each open record with its profile (cold-start defaults when a
// customer has no profile), invokes the oracle once for the whole set, and
// fills each record's predicted delay and settlement date. Oracle failure
// aborts the pass: no record is partially scored.
func (s *Scorer) Score(ctx context.Context, open []model.CaseRecord, profiles []model.CompanyProfile) ([]model.CaseRecord, error) {
	if len(open) == 0 {
		return nil, nil
	}

	byCustomer := make(map[string]model.CompanyProfile, len(profiles))
	for _, p := range profiles {
		byCustomer[p.CustomerID] = p
	}

	scored := make([]model.CaseRecord, len(open))
	vectors := make([][]float64, len(open))

	for i, rec := range open {
		p, ok := byCustomer[rec.CustomerID]
		if !ok {
			p = model.ColdStartProfile(rec.CustomerID, rec.CustomerName)
		}
		rec.LateRatio = p.LateRatio
		vectors[i] = model.FeatureVector(&rec, &p)
		scored[i] = rec
	}

	preds, err := s.predictor.Predict(ctx, vectors)
	if err != nil {
		return nil, fmt.Errorf("oracle prediction failed: %w", err)
	}
	if len(preds) != len(open) {
		return nil, fmt.Errorf("oracle returned %d predictions for %d records", len(preds), len(open))
	}

	for i := range scored {
		delay := preds[i]
		if math.IsNaN(delay) || math.IsInf(delay, 0) {
			delay = 0
		}
		scored[i].PredictedDelay = &delay
		scored[i].PredictedPaymentDate = predictedPaymentDate(scored[i].DueDate, delay)
	}

	slog.Info("Scored open records", "count", len(scored))

	return scored, nil
}

// predictedPaymentDate is due_date + predicted_delay days, nil when the due
// date is unknown. Fractional delays round down to whole days.
func predictedPaymentDate(dueDate *time.Time, delay float64) *time.Time {
	if dueDate == nil {
		return nil
	}
	d := dueDate.AddDate(0, 0, int(delay))
	return &d
}
