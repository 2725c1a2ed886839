package usage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRecorder(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Record(ctx, "org/docs", OutcomeRich))
	require.NoError(t, rec.Record(ctx, "org/docs", OutcomeLegacy))
	require.NoError(t, rec.Record(ctx, "org/docs", OutcomeUnavailable))
	require.NoError(t, rec.Record(ctx, "org/other", OutcomeRich))

	snap := rec.Snapshot()
	assert.Equal(t, Counts{Rich: 1, Legacy: 1, Unavailable: 1}, snap["org/docs"])
	assert.Equal(t, Counts{Rich: 1}, snap["org/other"])
}

func TestMemoryRecorder_Concurrent(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rec.Record(ctx, "org/docs", OutcomeRich)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, rec.Snapshot()["org/docs"].Rich)
}

func TestSnapshotIsACopy(t *testing.T) {
	rec := NewMemoryRecorder()
	_ = rec.Record(context.Background(), "org/docs", OutcomeRich)

	snap := rec.Snapshot()
	snap["org/docs"] = Counts{Rich: 99}

	assert.Equal(t, 1, rec.Snapshot()["org/docs"].Rich)
}
