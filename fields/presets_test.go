package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/fields"
	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wfc"
)

func run(t *testing.T, preset string, d lattice.Dimensions) (*wfc.Engine, error) {
	t.Helper()
	tbl, err := fields.Table(preset)
	require.NoError(t, err)
	e, err := wfc.New(lattice.MustNew(d), tbl, wfc.WithSeed(5))
	require.NoError(t, err)
	return e, e.Run()
}

func TestPresetRuns(t *testing.T) {
	small, err := fields.Size(fields.SizeSmall)
	require.NoError(t, err)
	one, err := fields.Size(fields.SizeTestOne)
	require.NoError(t, err)

	t.Run("simple small", func(t *testing.T) {
		e, err := run(t, fields.PresetSimple, small)
		require.NoError(t, err)
		counts := e.Counts()
		assert.Equal(t, small.Len(), counts[fields.Ground]+counts[fields.Sky])
		assert.GreaterOrEqual(t, counts[fields.Ground], 100, "bottom layer is ground")
		assert.GreaterOrEqual(t, counts[fields.Sky], 100, "top layer is sky")
		for _, a := range e.Assignments() {
			switch a.Point.Z {
			case 0:
				assert.Equal(t, fields.Ground, a.State)
			case small.Height - 1:
				assert.Equal(t, fields.Sky, a.State)
			}
		}
	})

	t.Run("simple test-one", func(t *testing.T) {
		e, err := run(t, fields.PresetSimple, one)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{fields.Ground: 1}, e.Counts())
	})

	t.Run("edge test-one", func(t *testing.T) {
		e, err := run(t, fields.PresetEdge, one)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{fields.Edge: 1}, e.Counts())
	})

	t.Run("ground-only", func(t *testing.T) {
		e, err := run(t, fields.PresetGroundOnly, small)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{fields.Ground: small.Len()}, e.Counts())
		assert.Zero(t, e.Stats().Sampled)
	})

	t.Run("initial-weights-error", func(t *testing.T) {
		_, err := run(t, fields.PresetInitialWeightsError, one)
		assert.ErrorIs(t, err, wfc.ErrConfiguration)
	})

	t.Run("contradiction", func(t *testing.T) {
		e, err := run(t, fields.PresetContradiction, lattice.NewDimensions(3, 3, 3))
		assert.ErrorIs(t, err, wfc.ErrContradiction)
		assert.Equal(t, wfc.Contradicted, e.Phase())
	})
}
