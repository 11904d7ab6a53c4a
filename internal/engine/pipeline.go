// Package engine orchestrates the periodic risk-scoring pipeline: ingest
// and backfill, profile aggregation, oracle scoring, zone classification,
// and resilient persistence of every derived field.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/batch"
	"github.com/JahnaviK1725/dca-collection/internal/common"
	"github.com/JahnaviK1725/dca-collection/internal/ingest"
	"github.com/JahnaviK1725/dca-collection/internal/model"
	"github.com/JahnaviK1725/dca-collection/internal/normalize"
	"github.com/JahnaviK1725/dca-collection/internal/profile"
	"github.com/JahnaviK1725/dca-collection/internal/scoring"
	"github.com/JahnaviK1725/dca-collection/internal/service"
	"github.com/JahnaviK1725/dca-collection/internal/sla"

	"github.com/google/uuid"
)

// Pipeline runs one scoring pass end to end. It is single-threaded and
// run-to-completion; every suspension point is a store or oracle call.
type Pipeline struct {
	store     service.DocumentStore
	predictor service.Predictor
	config    Config
}

// Config holds configuration options for the pipeline.
type Config struct {
	// Now supplies the reference time; the run operates on its calendar day.
	Now func() time.Time
	// OnPhase is invoked as each pipeline phase starts. Optional.
	OnPhase func(name string)
	// BatchOptions configures the resilient batch writers.
	BatchOptions batch.Options
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Now:          time.Now,
		BatchOptions: batch.DefaultOptions(),
	}
}

// New creates a pipeline with default configuration.
func New(store service.DocumentStore, predictor service.Predictor) *Pipeline {
	return NewWithConfig(store, predictor, DefaultConfig())
}

// NewWithConfig creates a pipeline with custom configuration.
func NewWithConfig(store service.DocumentStore, predictor service.Predictor, config Config) *Pipeline {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Pipeline{
		store:     store,
		predictor: predictor,
		config:    config,
	}
}

// Run executes one full scoring pass and returns its statistics. A crash or
// abort mid-run leaves consistent but partially updated state; re-running
// converges, since every phase is a pure re-derivation of current state
// plus today.
func (p *Pipeline) Run(ctx context.Context) (*service.RunStats, error) {
	start := p.config.Now()
	today := normalize.Day(start)

	stats := &service.RunStats{
		RunID:      uuid.NewString(),
		ZoneCounts: make(map[string]int),
	}

	slog.Info("Starting scoring run", "run_id", stats.RunID, "today", today.Format("2006-01-02"))

	// Phase 1: ingest and backfill.
	p.phase("ingest")
	caseWriter := batch.NewWriter(p.store, service.CasesCollection, p.config.BatchOptions)

	records, backfilled, err := ingest.NewReader(p.store).Load(ctx, caseWriter)
	if err != nil {
		return nil, err
	}
	stats.TotalCases = len(records)
	stats.Backfilled = backfilled

	if len(records) == 0 {
		slog.Info("No cases found, nothing to score")
		stats.Duration = p.config.Now().Sub(start)
		return stats, nil
	}

	if err := caseWriter.Flush(ctx); err != nil {
		return nil, err
	}

	// Phase 2: profile aggregation.
	p.phase("profiles")
	history, open := normalize.Partition(records)
	stats.HistoryRecords = len(history)
	stats.OpenRecords = len(open)

	profiles := profile.Aggregate(history, open)

	profileWriter := batch.NewWriter(p.store, service.ProfilesCollection, p.config.BatchOptions)
	if err := profile.Persist(ctx, profileWriter, profiles, start); err != nil {
		return nil, err
	}
	if err := profileWriter.Flush(ctx); err != nil {
		return nil, err
	}
	stats.ProfilesWritten = profileWriter.Committed()

	if len(open) == 0 {
		slog.Info("No open records to score")
		stats.SkippedBatches = caseWriter.Skipped() + profileWriter.Skipped()
		stats.Duration = p.config.Now().Sub(start)
		return stats, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Phase 3: oracle scoring. Failure aborts before any classification
	// write; no partial predictions are ever persisted.
	p.phase("scoring")
	scored, err := scoring.NewScorer(p.predictor).Score(ctx, open, profiles)
	if err != nil {
		return nil, err
	}

	// Phase 4: classification and persistence.
	p.phase("classify")
	var breached []model.CaseRecord

	for i := range scored {
		prior := scored[i].Zone
		sla.Apply(&scored[i], today)

		stats.ZoneCounts[string(scored[i].Zone)]++
		if scored[i].Zone == model.ZoneRed && prior != model.ZoneRed {
			breached = append(breached, scored[i])
		}

		if err := caseWriter.Queue(ctx, scored[i].DocID, scoring.FieldMap(scored[i], start)); err != nil {
			return nil, err
		}
	}

	if err := caseWriter.Flush(ctx); err != nil {
		return nil, err
	}
	stats.CasesScored = len(scored)

	// Phase 5: audit trail for records newly entering RED.
	p.phase("audit")
	if err := p.logBreaches(ctx, breached, stats.RunID, today); err != nil {
		return nil, err
	}

	stats.SkippedBatches = caseWriter.Skipped() + profileWriter.Skipped()
	stats.Duration = p.config.Now().Sub(start)

	slog.Info("Scoring run complete",
		"run_id", stats.RunID,
		"total_cases", stats.TotalCases,
		"backfilled", stats.Backfilled,
		"profiles", stats.ProfilesWritten,
		"scored", stats.CasesScored,
		"zones", stats.ZoneCounts,
		"skipped_batches", stats.SkippedBatches,
		"duration", stats.Duration)

	return stats, nil
}

// logBreaches appends a history entry to each case that crossed into RED
// this run. Contention is retried like any other store write; exhaustion
// skips the entry, since the next breach detection re-derives it.
func (p *Pipeline) logBreaches(ctx context.Context, breached []model.CaseRecord, runID string, today time.Time) error {
	for _, rec := range breached {
		entry := map[string]any{
			"date":   today.Format("2006-01-02"),
			"action": "SLA_BREACH",
			"note":   fmt.Sprintf("SLA deadline reached, case escalated (run %s)", runID),
			"status": "Escalated",
		}

		docID := rec.DocID
		err := common.WithRetry(ctx, func() error {
			return p.store.AppendToArray(ctx, service.CasesCollection, docID, "history_logs", entry)
		}, p.config.BatchOptions.Retry)

		switch {
		case err == nil:
		case isRetryExhaustion(err):
			slog.Warn("Skipping breach audit entry after retry exhaustion",
				"doc_id", docID, "error", err)
		default:
			return fmt.Errorf("failed to append breach audit for %s: %w", docID, err)
		}
	}
	return nil
}

func isRetryExhaustion(err error) bool {
	return errors.Is(err, common.ErrMaxRetries)
}

func (p *Pipeline) phase(name string) {
	if p.config.OnPhase != nil {
		p.config.OnPhase(name)
	}
}
