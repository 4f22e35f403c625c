package runindex_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/runindex"
	"github.com/katalvlaran/voxwfc/wfc"
)

func open(t *testing.T) (*runindex.Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db", "runs.db")
	idx, err := runindex.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx, path
}

func sample(created time.Time) runindex.Run {
	return runindex.Run{
		CreatedAt:     created,
		Preset:        "simple",
		Dimensions:    lattice.NewDimensions(10, 10, 10),
		MaxDistance:   2,
		Seed:          42,
		Attempts:      1,
		Contradiction: "deferred",
		Phase:         wfc.Completed.String(),
		Stats: wfc.Stats{
			Cells: 1000, Observed: 1000, ForcedInitial: 300, ForcedPropagated: 20,
			Sampled: 680, Updates: 12000,
		},
		Duration: 1500 * time.Millisecond,
		Output:   "mv_import.txt",
		Counts:   map[string]int{"ground": 420, "sky": 580},
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := runindex.Open("")
	assert.ErrorIs(t, err, runindex.ErrEmptyPath)
}

func TestRecordGet(t *testing.T) {
	idx, _ := open(t)
	ctx := context.Background()
	created := time.Date(2026, 3, 4, 5, 6, 7, 891, time.UTC)

	want := sample(created)
	id, err := idx.Record(ctx, want)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated ids are uuids")

	got, err := idx.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.CreatedAt), "created_at %v", got.CreatedAt)

	want.ID = id
	want.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, want, got)
}

func TestRecord_FailedRun(t *testing.T) {
	idx, _ := open(t)
	ctx := context.Background()

	r := sample(time.Time{})
	r.ID = "failed-1"
	r.Phase = wfc.Contradicted.String()
	r.Error = "observe: cell 5 at (1, 0, 1): wfc: contradiction"
	r.Counts = nil
	id, err := idx.Record(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, "failed-1", id)

	got, err := idx.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, r.Error, got.Error)
	assert.Empty(t, got.Counts)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = idx.Record(ctx, r)
	assert.Error(t, err, "duplicate id")
}

func TestGet_NotFound(t *testing.T) {
	idx, _ := open(t)
	_, err := idx.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, runindex.ErrNotFound)
}

func TestList(t *testing.T) {
	idx, _ := open(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 4; i++ {
		r := sample(base.Add(time.Duration(i) * time.Hour))
		r.Seed = int64(i)
		id, err := idx.Record(ctx, r)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := idx.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, r := range all {
		assert.Equal(t, ids[3-i], r.ID, "newest first")
		assert.Equal(t, 420, r.Counts["ground"])
	}

	two, err := idx.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, int64(3), two[0].Seed)
	assert.Equal(t, int64(2), two[1].Seed)
}

func TestReopenAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	ctx := context.Background()

	idx, err := runindex.Open(path)
	require.NoError(t, err)
	id, err := idx.Record(ctx, sample(time.Now()))
	require.NoError(t, err)
	require.NoError(t, idx.Close())
	require.NoError(t, idx.Close(), "close is idempotent")

	_, err = idx.Get(ctx, id)
	assert.ErrorIs(t, err, runindex.ErrClosed)
	_, err = idx.Record(ctx, sample(time.Now()))
	assert.ErrorIs(t, err, runindex.ErrClosed)
	_, err = idx.List(ctx, 1)
	assert.ErrorIs(t, err, runindex.ErrClosed)

	again, err := runindex.Open(path)
	require.NoError(t, err)
	defer again.Close()
	got, err := again.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"ground": 420, "sky": 580}, got.Counts)
}
