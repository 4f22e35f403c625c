package state_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
)

// TestNewTable_Errors verifies every validation branch of NewTable.
func TestNewTable_Errors(t *testing.T) {
	ok := state.Definition{Name: "ground", Initial: state.Constant(1), Update: state.Neutral}

	cases := []struct {
		name string
		defs []state.Definition
		err  error
	}{
		{"Empty", nil, state.ErrEmptyTable},
		{"EmptyName", []state.Definition{{Initial: state.Constant(1), Update: state.Neutral}}, state.ErrEmptyName},
		{"Duplicate", []state.Definition{ok, ok}, state.ErrDuplicateName},
		{"NilInitial", []state.Definition{{Name: "sky", Update: state.Neutral}}, state.ErrNilFunc},
		{"NilUpdate", []state.Definition{{Name: "sky", Initial: state.Constant(1)}}, state.ErrNilFunc},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := state.NewTable(tc.defs...)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.Panics(t, func() { state.MustTable() })
}

// TestTable_Lookup checks ids, names and their stability.
func TestTable_Lookup(t *testing.T) {
	tbl := state.MustTable(
		state.Definition{Name: "ground", Initial: state.Constant(1), Update: state.Neutral},
		state.Definition{Name: "sky", Initial: state.Constant(2), Update: state.Neutral},
	)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"ground", "sky"}, tbl.Names())
	assert.Equal(t, "sky", tbl.Name(1))
	assert.Equal(t, "", tbl.Name(2))
	assert.Equal(t, "", tbl.Name(-1))

	id, ok := tbl.ID("sky")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	_, ok = tbl.ID("lava")
	assert.False(t, ok)

	names := tbl.Names()
	names[0] = "mutated"
	assert.Equal(t, "ground", tbl.Name(0), "Names returns a copy")
}

// TestTable_Weights evaluates both function families in id order.
func TestTable_Weights(t *testing.T) {
	tbl := state.MustTable(
		state.Definition{
			Name:    "low",
			Initial: func(_ lattice.Dimensions, p lattice.Point) float32 { return float32(p.Z) },
			Update: func(s state.Signal) float32 {
				if s.Direction == lattice.Down {
					return 0
				}
				return 1
			},
		},
		state.Definition{
			Name:    "high",
			Initial: func(d lattice.Dimensions, p lattice.Point) float32 { return float32(d.Height - p.Z) },
			Update:  func(s state.Signal) float32 { return float32(s.Distance) },
		},
	)
	d := lattice.NewDimensions(2, 2, 5)

	w := tbl.InitialWeights(nil, d, lattice.NewPoint(0, 0, 3))
	require.Len(t, w, 2)
	assert.Equal(t, []float32{3, 2}, w)

	buf := make([]float32, 0, 8)
	u := tbl.UpdateWeights(buf, state.Signal{Source: "low", Direction: lattice.Down, Distance: 2})
	assert.Equal(t, []float32{0, 2}, u)
	assert.Equal(t, 8, cap(u), "buffer with enough capacity is reused")
}

// TestSignal_String pins the compact form used in logs.
func TestSignal_String(t *testing.T) {
	s := state.Signal{Source: "sky", Direction: lattice.Up, Distance: 1}
	assert.Equal(t, "sky/Up/1", s.String())
	assert.Equal(t, float32(1), state.Neutral(s))
}

// TestFactor ignores the signal.
func TestFactor(t *testing.T) {
	f := state.Factor(0.25)
	assert.Equal(t, float32(0.25), f(state.Signal{Source: "a", Direction: lattice.Left, Distance: 1}))
	assert.Equal(t, float32(0.25), f(state.Signal{}))
}
