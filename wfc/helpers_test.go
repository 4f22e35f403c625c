package wfc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
	"github.com/katalvlaran/voxwfc/wfc"
)

// def is a compact Definition constructor for fixtures.
func def(name string, initial state.InitialWeightFn, update state.UpdateWeightFn) state.Definition {
	return state.Definition{Name: name, Initial: initial, Update: update}
}

// onlyFrom returns 1 for signals from src and 0 for every other source.
func onlyFrom(src string) state.UpdateWeightFn {
	return func(s state.Signal) float32 {
		if s.Source == src {
			return 1
		}
		return 0
	}
}

// newEngine builds a lattice + table + engine or fails the test.
func newEngine(t *testing.T, d lattice.Dimensions, defs []state.Definition, opts ...wfc.Option) *wfc.Engine {
	t.Helper()
	lat, err := lattice.New(d)
	require.NoError(t, err)
	tbl, err := state.NewTable(defs...)
	require.NoError(t, err)
	e, err := wfc.New(lat, tbl, opts...)
	require.NoError(t, err)
	return e
}

// layered is a two-state table whose states are forced by height:
// ground on z == 0, sky above.
func layered() []state.Definition {
	return []state.Definition{
		def("ground", func(_ lattice.Dimensions, p lattice.Point) float32 {
			if p.Z == 0 {
				return 1
			}
			return 0
		}, state.Neutral),
		def("sky", func(_ lattice.Dimensions, p lattice.Point) float32 {
			if p.Z == 0 {
				return 0
			}
			return 1
		}, state.Neutral),
	}
}

// terrain is a three-state table with position-dependent priors and
// multiplicative neighbor rules; it never contradicts because every state
// keeps a positive factor from at least one source.
func terrain() []state.Definition {
	return []state.Definition{
		def("rock", func(d lattice.Dimensions, p lattice.Point) float32 {
			return float32(d.Height-p.Z) / float32(d.Height)
		}, func(s state.Signal) float32 {
			if s.Source == "air" && s.Direction == lattice.Down {
				return 0.2
			}
			return 1.2
		}),
		def("grass", state.Constant(0.5), func(s state.Signal) float32 {
			if s.Source == "rock" && s.Direction == lattice.Down && s.Distance == 1 {
				return 2
			}
			return 0.8
		}),
		def("air", func(d lattice.Dimensions, p lattice.Point) float32 {
			return float32(p.Z+1) / float32(d.Height)
		}, func(s state.Signal) float32 {
			if s.Source == "rock" && s.Direction == lattice.Up {
				return 0.5
			}
			return 1
		}),
	}
}
