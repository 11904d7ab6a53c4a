// Package batch implements the resilient bounded batch writer used to
// persist field updates against the shared document store.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/common"
	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// DefaultBatchSize caps the number of document updates per commit. The store
// enforces per-transaction document-lock limits, so this stays well under
// them.
const DefaultBatchSize = 50

// DefaultCommitDelay throttles write rate against the shared store, which is
// concurrently written by the dispatcher and outbound agents.
const DefaultCommitDelay = 100 * time.Millisecond

// Options configures a Writer.
type Options struct {
	BatchSize   int
	CommitDelay time.Duration
	Retry       service.RetryOptions
}

// DefaultOptions returns the writer defaults used by the pipeline.
func DefaultOptions() Options {
	return Options{
		BatchSize:   DefaultBatchSize,
		CommitDelay: DefaultCommitDelay,
		Retry: service.RetryOptions{
			MaxAttempts:  5,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
}

// Writer accumulates per-document field updates for one collection and
// commits them in bounded batches. Commits that fail with the contention
// error kind are retried with exponential backoff and jitter; retry
// exhaustion skips the batch and continues, because every batch is an
// idempotent re-derivation of current state. Any other commit error
// propagates immediately.
type Writer struct {
	committer  service.BatchCommitter
	collection string
	pending    []service.FieldUpdate
	opts       Options

	committed int
	skipped   int
}

// NewWriter creates a batch writer for one collection.
func NewWriter(committer service.BatchCommitter, collection string, opts Options) *Writer {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Writer{
		committer:  committer,
		collection: collection,
		opts:       opts,
	}
}

// Queue adds one document update, committing the pending batch when the cap
// is reached.
func (w *Writer) Queue(ctx context.Context, docID string, fields map[string]any) error {
	w.pending = append(w.pending, service.FieldUpdate{DocID: docID, Fields: fields})
	if len(w.pending) >= w.opts.BatchSize {
		return w.commit(ctx)
	}
	return nil
}

// Flush commits any remaining updates. Call at the end of each phase.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.pending) == 0 {
		return nil
	}
	return w.commit(ctx)
}

// Committed returns the number of updates successfully persisted.
func (w *Writer) Committed() int {
	return w.committed
}

// Skipped returns the number of batches dropped after retry exhaustion.
func (w *Writer) Skipped() int {
	return w.skipped
}

func (w *Writer) commit(ctx context.Context) error {
	updates := w.pending
	w.pending = nil

	err := common.WithRetry(ctx, func() error {
		return w.committer.CommitBatch(ctx, w.collection, updates)
	}, w.opts.Retry)

	switch {
	case err == nil:
		w.committed += len(updates)
		w.throttle(ctx)
		return nil
	case errors.Is(err, common.ErrMaxRetries):
		// Contention persisted through every attempt. The next run
		// re-derives the same updates, so skipping is safe.
		w.skipped++
		slog.Warn("Skipping batch after retry exhaustion",
			"collection", w.collection,
			"updates", len(updates),
			"error", err)
		return nil
	default:
		return fmt.Errorf("batch commit to %s failed: %w", w.collection, err)
	}
}

// throttle sleeps briefly after a successful commit.
func (w *Writer) throttle(ctx context.Context) {
	if w.opts.CommitDelay <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(w.opts.CommitDelay):
	}
}
