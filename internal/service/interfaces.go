// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"
)

// Collection names in the shared document store.
const (
	CasesCollection    = "cases"
	ProfilesCollection = "company_features"
)

// Document is one record in a store collection: a flat field map keyed by a
// store-assigned document id.
type Document struct {
	Fields map[string]any
	ID     string
}

// Filter restricts a query to documents whose field equals the given value.
type Filter struct {
	Value any
	Field string
}

// FieldUpdate is a per-document field-map update. Fields present in the map
// replace the document's values; fields absent from the map are untouched.
type FieldUpdate struct {
	Fields map[string]any
	DocID  string
}

// DocumentStore is the boundary to the shared transactional document store.
// It is accessed concurrently by external processes (dispatcher, outbound
// agents); CommitBatch reports contention as a distinct error kind so
// callers can retry.
type DocumentStore interface {
	// ListDocuments streams every document of a collection matching all
	// equality filters.
	ListDocuments(ctx context.Context, collection string, filters ...Filter) ([]Document, error)

	// UpdateDocument applies a single field-map update to one document.
	UpdateDocument(ctx context.Context, collection, docID string, fields map[string]any) error

	// AppendToArray appends values to an array-valued field, creating the
	// array when the field is absent. Used for per-case history logs.
	AppendToArray(ctx context.Context, collection, docID, field string, values ...any) error

	// CommitBatch applies all updates atomically. A contention-kind error
	// means the whole batch was rolled back and may be retried.
	CommitBatch(ctx context.Context, collection string, updates []FieldUpdate) error

	Close() error
}

// BatchCommitter is the slice of the store the resilient batch writer drives.
type BatchCommitter interface {
	CommitBatch(ctx context.Context, collection string, updates []FieldUpdate) error
}

// Predictor is the boundary to the external predictive oracle. Predict maps
// fixed-order numeric feature vectors to predicted payment delays in days,
// same length and order as the input. Failure is all-or-nothing for the call.
type Predictor interface {
	Predict(ctx context.Context, vectors [][]float64) ([]float64, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RunStats shows the results of one pipeline run.
type RunStats struct {
	RunID           string
	TotalCases      int
	Backfilled      int
	HistoryRecords  int
	OpenRecords     int
	ProfilesWritten int
	CasesScored     int
	SkippedBatches  int
	ZoneCounts      map[string]int
	Duration        time.Duration
}
