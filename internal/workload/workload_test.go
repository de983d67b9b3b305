package workload

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/webbmaffian/go-slab/mmslab"
	"github.com/webbmaffian/go-slab/slab"
)

func TestRunCountsAddUp(t *testing.T) {
	q, err := slab.NewSized[uint64, uint16](64)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Ops = 20_000
	cfg.Interval = 0

	stats, err := Run[uint16](context.Background(), q, cfg, nil)
	require.NoError(t, err)

	require.Equal(t, cfg.Ops, stats.Ops)
	require.Equal(t, q.Len(), stats.Len)
	require.Equal(t, stats.Pushes-stats.Pops-stats.Removes, stats.Len)
	require.Positive(t, stats.Pops)
	require.Positive(t, stats.Removes)
	require.LessOrEqual(t, stats.Pushes+stats.Pops+stats.Removes+stats.Full+stats.Empty, stats.Ops)
}

func TestRunFillsSmallQueue(t *testing.T) {
	q, err := slab.NewSized[uint64, uint8](4)
	require.NoError(t, err)

	cfg := Config{Ops: 1000, Seed: 7, PopRatio: 0.05, RemoveRatio: 0.05}
	stats, err := Run[uint8](context.Background(), q, cfg, nil)
	require.NoError(t, err)
	require.Positive(t, stats.Full)
}

func TestRunDrainsQueue(t *testing.T) {
	q, err := slab.NewSized[uint64, uint8](4)
	require.NoError(t, err)

	cfg := Config{Ops: 1000, Seed: 3, PopRatio: 0.7, RemoveRatio: 0.2}
	stats, err := Run[uint8](context.Background(), q, cfg, nil)
	require.NoError(t, err)
	require.Positive(t, stats.Empty)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := Config{Ops: 5000, Seed: 42, PopRatio: 0.3, RemoveRatio: 0.3}

	run := func() Stats {
		q, err := slab.NewSized[uint64, uint32](32)
		require.NoError(t, err)

		stats, err := Run[uint32](context.Background(), q, cfg, nil)
		require.NoError(t, err)

		stats.Elapsed = 0
		return stats
	}

	require.Equal(t, run(), run())
}

func TestRunAdoptsExistingElements(t *testing.T) {
	q, err := slab.NewSized[uint64, uint32](8)
	require.NoError(t, err)
	require.NoError(t, q.Extend(10, 11, 12))

	cfg := Config{Ops: 3, PopRatio: 1}
	stats, err := Run[uint32](context.Background(), q, cfg, nil)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Pops)
	require.True(t, q.IsEmpty())
}

func TestRunDetectsWrongResults(t *testing.T) {
	inner, err := slab.NewSized[uint64, uint32](8)
	require.NoError(t, err)

	q := &lyingQueue{Slab: inner}
	cfg := Config{Ops: 100, Seed: 1, PopRatio: 0.5}

	_, err = Run[uint32](context.Background(), q, cfg, nil)
	require.ErrorIs(t, err, ErrMismatch)
}

// Returns a wrong value from every pop.
type lyingQueue struct {
	*slab.Slab[uint64, uint32]
}

func (q *lyingQueue) PopBack() (uint64, error) {
	v, err := q.Slab.PopBack()
	return v + 1, err
}

func TestRunStopsOnCancel(t *testing.T) {
	q, err := slab.NewSized[uint64, uint32](16)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var reported bool
	stats, err := Run[uint32](ctx, q, DefaultConfig(), func(Stats) { reported = true })
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, stats.Ops)
	require.True(t, reported)
}

func TestRunReportsProgress(t *testing.T) {
	q, err := slab.NewSized[uint64, uint32](16)
	require.NoError(t, err)

	cfg := Config{Ops: 10_000, Seed: 1, PopRatio: 0.4, Interval: time.Nanosecond}

	var calls int
	_, err = Run[uint32](context.Background(), q, cfg, func(Stats) { calls++ })
	require.NoError(t, err)
	require.Greater(t, calls, 1)
}

func TestRunOnMappedSlab(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workload.slab")
	cfg := Config{Ops: 5000, Seed: 9, PopRatio: 0.3, RemoveRatio: 0.3}

	q, err := mmslab.New[uint64, uint32](path, 32)
	require.NoError(t, err)

	first, err := Run[uint32](context.Background(), q, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, q.Close())

	q, err = mmslab.New[uint64, uint32](path)
	require.NoError(t, err)
	t.Cleanup(func() { q.Close() })

	require.Equal(t, first.Len, q.Len())

	_, err = Run[uint32](context.Background(), q, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, q.Validate())
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	bad := []Config{
		{Ops: -1},
		{PopRatio: -0.1},
		{PopRatio: 0.6, RemoveRatio: 0.5},
		{Interval: -time.Second},
	}

	for _, cfg := range bad {
		require.Error(t, cfg.Validate(), "%+v", cfg)
	}
}
