// File: wfc/example_test.go
package wfc_test

import (
	"fmt"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
	"github.com/katalvlaran/voxwfc/wfc"
)

// ExampleEngine_Run collapses a 2×2×2 map whose fields force ground on the
// bottom layer and sky above it.
func ExampleEngine_Run() {
	lat := lattice.MustNew(lattice.NewDimensions(2, 2, 2))
	tbl := state.MustTable(
		state.Definition{Name: "ground", Update: state.Neutral, Initial: func(_ lattice.Dimensions, p lattice.Point) float32 {
			if p.Z == 0 {
				return 1
			}
			return 0
		}},
		state.Definition{Name: "sky", Update: state.Neutral, Initial: func(_ lattice.Dimensions, p lattice.Point) float32 {
			if p.Z == 0 {
				return 0
			}
			return 1
		}},
	)

	e, err := wfc.New(lat, tbl, wfc.WithSeed(7))
	if err != nil {
		fmt.Println(err)
		return
	}
	if err := e.Run(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(e.Phase(), e.Counts())
	fmt.Println("sampled:", e.Stats().Sampled)

	// Output:
	// completed map[ground:4 sky:4]
	// sampled: 0
}
