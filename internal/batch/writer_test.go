package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/JahnaviK1725/dca-collection/internal/common"
	"github.com/JahnaviK1725/dca-collection/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCommitter records batch commits and fails a configurable number of
// initial attempts.
type mockCommitter struct {
	failErr      error
	commits      [][]service.FieldUpdate
	failAttempts int
	attempts     int
	mu           sync.Mutex
}

func (m *mockCommitter) CommitBatch(_ context.Context, _ string, updates []service.FieldUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.attempts <= m.failAttempts {
		return m.failErr
	}

	copied := make([]service.FieldUpdate, len(updates))
	copy(copied, updates)
	m.commits = append(m.commits, copied)
	return nil
}

func testOptions() Options {
	return Options{
		BatchSize:   50,
		CommitDelay: 0,
		Retry: service.RetryOptions{
			MaxAttempts:  5,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Multiplier:   2.0,
		},
	}
}

func TestWriter_CommitsAtCap(t *testing.T) {
	committer := &mockCommitter{}
	opts := testOptions()
	opts.BatchSize = 3
	w := NewWriter(committer, "cases", opts)

	ctx := context.Background()
	for i := 0; i < 7; i++ {
		require.NoError(t, w.Queue(ctx, fmt.Sprintf("doc-%d", i), map[string]any{"n": i}))
	}
	require.NoError(t, w.Flush(ctx))

	require.Len(t, committer.commits, 3)
	assert.Len(t, committer.commits[0], 3)
	assert.Len(t, committer.commits[1], 3)
	assert.Len(t, committer.commits[2], 1)
	assert.Equal(t, 7, w.Committed())
	assert.Zero(t, w.Skipped())
}

func TestWriter_FlushOnEmptyIsNoop(t *testing.T) {
	committer := &mockCommitter{}
	w := NewWriter(committer, "cases", testOptions())

	require.NoError(t, w.Flush(context.Background()))
	assert.Empty(t, committer.commits)
}

func TestWriter_ContentionRetriedThenPersistedOnce(t *testing.T) {
	// Contention on attempts 1-4, success on attempt 5: the batch lands
	// exactly once with no duplicate writes.
	committer := &mockCommitter{
		failAttempts: 4,
		failErr:      fmt.Errorf("%w: database is locked", common.ErrContention),
	}
	w := NewWriter(committer, "cases", testOptions())

	ctx := context.Background()
	require.NoError(t, w.Queue(ctx, "doc-1", map[string]any{"zone": "RED"}))
	require.NoError(t, w.Flush(ctx))

	require.Len(t, committer.commits, 1)
	require.Len(t, committer.commits[0], 1)
	assert.Equal(t, "doc-1", committer.commits[0][0].DocID)
	assert.Equal(t, 5, committer.attempts)
	assert.Equal(t, 1, w.Committed())
	assert.Zero(t, w.Skipped())
}

func TestWriter_RetryExhaustionSkipsBatchAndContinues(t *testing.T) {
	committer := &mockCommitter{
		failAttempts: 5,
		failErr:      fmt.Errorf("%w: database is locked", common.ErrContention),
	}
	w := NewWriter(committer, "cases", testOptions())

	ctx := context.Background()
	require.NoError(t, w.Queue(ctx, "doc-1", map[string]any{"zone": "RED"}))
	require.NoError(t, w.Flush(ctx), "exhaustion is logged, not fatal")

	assert.Equal(t, 1, w.Skipped())
	assert.Zero(t, w.Committed())
	assert.Equal(t, 5, committer.attempts)

	// The writer keeps accepting work after a skipped batch.
	require.NoError(t, w.Queue(ctx, "doc-2", map[string]any{"zone": "GREEN"}))
	require.NoError(t, w.Flush(ctx))
	require.Len(t, committer.commits, 1)
	assert.Equal(t, "doc-2", committer.commits[0][0].DocID)
}

func TestWriter_OtherErrorsPropagateImmediately(t *testing.T) {
	permission := errors.New("permission denied")
	committer := &mockCommitter{failAttempts: 10, failErr: permission}
	w := NewWriter(committer, "cases", testOptions())

	ctx := context.Background()
	require.NoError(t, w.Queue(ctx, "doc-1", map[string]any{"zone": "RED"}))

	err := w.Flush(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, permission))
	assert.Equal(t, 1, committer.attempts, "non-contention errors are not retried")
	assert.Zero(t, w.Skipped())
}

func TestWriter_DefaultsApplied(t *testing.T) {
	w := NewWriter(&mockCommitter{}, "cases", Options{})
	assert.Equal(t, DefaultBatchSize, w.opts.BatchSize)
}
