// Package oracle provides clients for the external payment-delay predictor.
// The predictor is a previously trained regression model served behind a
// small HTTP surface; this package treats it as a black box mapping
// fixed-order feature vectors to delay predictions.
package oracle

import (
	"context"
)

// Client defines the interface for predictor providers.
type Client interface {
	// Predict maps feature vectors to predicted payment delays in days.
	// The response has the same length and order as the input, or the call
	// fails as a whole.
	Predict(ctx context.Context, vectors [][]float64) ([]float64, error)
}

// Config holds predictor provider configuration.
type Config struct {
	Provider       string
	Endpoint       string
	APIKey         string
	TimeoutSeconds int
}
