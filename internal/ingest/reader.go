package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JahnaviK1725/dca-collection/internal/batch"
	"github.com/JahnaviK1725/dca-collection/internal/model"
	"github.com/JahnaviK1725/dca-collection/internal/service"
)

// Reader streams the case collection and performs the lazy original_amount
// migration as it goes. Records already carrying the field are untouched, so
// the backfill converges to a no-op across runs.
type Reader struct {
	store service.DocumentStore
}

// NewReader creates a case reader over the given store.
func NewReader(store service.DocumentStore) *Reader {
	return &Reader{store: store}
}

// Load fetches every case document, adapts it into a CaseRecord, and queues
// an original_amount backfill update for each document missing the field.
// It returns the adapted records and the number of backfills queued.
func (r *Reader) Load(ctx context.Context, writer *batch.Writer) ([]model.CaseRecord, int, error) {
	docs, err := r.store.ListDocuments(ctx, service.CasesCollection)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list cases: %w", err)
	}

	records := make([]model.CaseRecord, 0, len(docs))
	backfilled := 0

	for _, doc := range docs {
		if update, ok := BackfillUpdate(doc); ok {
			if err := writer.Queue(ctx, doc.ID, update); err != nil {
				return nil, 0, fmt.Errorf("failed to queue backfill for %s: %w", doc.ID, err)
			}
			backfilled++
		}

		records = append(records, AdaptDocument(doc))
	}

	slog.Info("Loaded case collection",
		"total", len(records),
		"backfills_queued", backfilled)

	return records, backfilled, nil
}

// BackfillUpdate returns the one-field migration update for a document that
// lacks original_amount. The first-seen amount is recorded as stored, before
// currency normalization.
func BackfillUpdate(doc service.Document) (map[string]any, bool) {
	if _, ok := doc.Fields["original_amount"]; ok {
		return nil, false
	}
	return map[string]any{"original_amount": asFloat(coalesce(doc.Fields, amountFields))}, true
}
