package oracle

import (
	"context"
	"sync"
)

// MockPredictor is a test implementation of the Client interface. It returns
// a configurable delay per vector and records every call.
type MockPredictor struct {
	// PredictFn overrides the default behavior when set.
	PredictFn func(ctx context.Context, vectors [][]float64) ([]float64, error)
	// FixedDelay is returned for every vector when PredictFn is nil.
	FixedDelay float64

	mu    sync.Mutex
	calls [][][]float64
}

// Predict returns FixedDelay per input vector, or delegates to PredictFn.
func (m *MockPredictor) Predict(ctx context.Context, vectors [][]float64) ([]float64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, vectors)
	m.mu.Unlock()

	if m.PredictFn != nil {
		return m.PredictFn(ctx, vectors)
	}

	preds := make([]float64, len(vectors))
	for i := range preds {
		preds[i] = m.FixedDelay
	}
	return preds, nil
}

// Calls returns every recorded invocation.
func (m *MockPredictor) Calls() [][][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
