package fields_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/fields"
	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
)

func TestSkyField(t *testing.T) {
	d := lattice.NewDimensions(4, 4, 4)
	assert.Equal(t, float32(0), fields.SkyField(d, lattice.NewPoint(1, 2, 0)))
	prev := float32(0)
	for z := 1; z < d.Height; z++ {
		v := fields.SkyField(d, lattice.NewPoint(0, 0, z))
		assert.Greater(t, v, prev, "sky grows with height")
		prev = v
	}
	assert.Greater(t, fields.SkyField(d, lattice.NewPoint(0, 0, 3)), float32(1))
	assert.Less(t, fields.LowSkyField(d, lattice.NewPoint(0, 0, 3)), fields.SkyField(d, lattice.NewPoint(0, 0, 3)))
}

func TestGroundField(t *testing.T) {
	d := lattice.NewDimensions(10, 10, 10)
	assert.InDelta(t, 1.0, float64(fields.GroundField(d, lattice.NewPoint(5, 5, 0))), 1e-6)
	assert.Less(t, fields.GroundField(d, lattice.NewPoint(0, 0, 0)), fields.GroundField(d, lattice.NewPoint(4, 4, 0)))
	assert.Less(t, fields.GroundField(d, lattice.NewPoint(5, 5, 9)), float32(0), "no ground under a dense sky")
}

func TestBorderAndBottom(t *testing.T) {
	d := lattice.NewDimensions(3, 3, 2)
	assert.Equal(t, float32(1), fields.BorderField(d, lattice.NewPoint(0, 1, 0)))
	assert.Equal(t, float32(1), fields.BorderField(d, lattice.NewPoint(1, 2, 1)))
	assert.Equal(t, float32(0), fields.BorderField(d, lattice.NewPoint(1, 1, 0)))
	assert.Equal(t, float32(1), fields.BottomField(d, lattice.NewPoint(1, 1, 0)))
	assert.Equal(t, float32(0), fields.BottomField(d, lattice.NewPoint(1, 1, 1)))
}

func TestRules(t *testing.T) {
	cases := []struct {
		name string
		rule state.UpdateWeightFn
		sig  state.Signal
		want float32
	}{
		{"ground beside ground", fields.GroundRule, state.Signal{Source: fields.Ground, Direction: lattice.Front, Distance: 1}, 1.5},
		{"ground beside far ground", fields.GroundRule, state.Signal{Source: fields.Ground, Direction: lattice.Front, Distance: 2}, 1},
		{"ground above ground", fields.GroundRule, state.Signal{Source: fields.Ground, Direction: lattice.Down, Distance: 1}, 1},
		{"ground above sky", fields.GroundRule, state.Signal{Source: fields.Sky, Direction: lattice.Down, Distance: 2}, 0},
		{"ground under sky", fields.GroundRule, state.Signal{Source: fields.Sky, Direction: lattice.Up, Distance: 1}, 1},
		{"edge ground above sky", fields.EdgeGroundRule, state.Signal{Source: fields.Sky, Direction: lattice.Down, Distance: 1}, 0},
		{"edge ground above far sky", fields.EdgeGroundRule, state.Signal{Source: fields.Sky, Direction: lattice.Down, Distance: 2}, 1},
		{"edge ground beside ground", fields.EdgeGroundRule, state.Signal{Source: fields.Ground, Direction: lattice.Left, Distance: 1}, 1.5},
		{"edge beside ground", fields.EdgeRule, state.Signal{Source: fields.Ground, Direction: lattice.Left, Distance: 1}, 1},
		{"sky under edge", fields.EdgeSkyRule, state.Signal{Source: fields.Edge, Direction: lattice.Up, Distance: 1}, 0},
		{"sky above ground", fields.EdgeSkyRule, state.Signal{Source: fields.Ground, Direction: lattice.Down, Distance: 1}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.rule(tc.sig))
		})
	}
}

func TestPresetNames(t *testing.T) {
	assert.Equal(t, []string{"contradiction", "edge", "ground-only", "initial-weights-error", "simple"}, fields.PresetNames())
	for _, name := range fields.PresetNames() {
		tbl, err := fields.Table(name)
		require.NoError(t, err, name)
		assert.Positive(t, tbl.Len())
		assert.NotEmpty(t, fields.Summary(name))
	}
	assert.Empty(t, fields.Summary("nope"))
}

func TestPreset_Unknown(t *testing.T) {
	_, err := fields.Preset("volcano")
	assert.ErrorIs(t, err, fields.ErrUnknownPreset)
	_, err = fields.Table("volcano")
	assert.ErrorIs(t, err, fields.ErrUnknownPreset)
}

func TestPreset_FreshCopy(t *testing.T) {
	a, err := fields.Preset(fields.PresetSimple)
	require.NoError(t, err)
	a[0].Name = "mutated"
	b, err := fields.Preset(fields.PresetSimple)
	require.NoError(t, err)
	assert.Equal(t, fields.Ground, b[0].Name)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, []string{"test-one", "small", "medium", "large"}, fields.SizeNames())
	d, err := fields.Size(fields.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, lattice.NewDimensions(20, 20, 20), d)

	_, err = fields.Size("huge")
	assert.ErrorIs(t, err, fields.ErrUnknownSize)
}
