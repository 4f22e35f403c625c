package fields

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
)

// Sentinel errors for name lookups.
var (
	// ErrUnknownPreset indicates a preset name with no registered table.
	ErrUnknownPreset = errors.New("fields: unknown preset")
	// ErrUnknownSize indicates a size name with no registered dimensions.
	ErrUnknownSize = errors.New("fields: unknown size")
)

// Preset names.
const (
	PresetSimple              = "simple"
	PresetEdge                = "edge"
	PresetGroundOnly          = "ground-only"
	PresetInitialWeightsError = "initial-weights-error"
	PresetContradiction       = "contradiction"
)

// Size names.
const (
	SizeTestOne = "test-one"
	SizeSmall   = "small"
	SizeMedium  = "medium"
	SizeLarge   = "large"
)

// DefaultPreset and DefaultSize are used when a run names neither.
const (
	DefaultPreset = PresetSimple
	DefaultSize   = SizeSmall
)

type preset struct {
	summary string
	defs    func() []state.Definition
}

var presets = map[string]preset{
	PresetSimple: {
		summary: "ground mound under an exponential sky",
		defs: func() []state.Definition {
			return []state.Definition{
				{Name: Ground, Initial: GroundField, Update: GroundRule},
				{Name: Sky, Initial: SkyField, Update: state.Neutral},
			}
		},
	},
	PresetEdge: {
		summary: "ground, edge and sky with a border ring",
		defs: func() []state.Definition {
			return []state.Definition{
				{Name: Ground, Initial: func(d lattice.Dimensions, p lattice.Point) float32 {
					return 1 - LowSkyField(d, p) - BorderField(d, p)
				}, Update: EdgeGroundRule},
				{Name: Edge, Initial: func(d lattice.Dimensions, p lattice.Point) float32 {
					return BorderField(d, p) - LowSkyField(d, p)
				}, Update: EdgeRule},
				{Name: Sky, Initial: LowSkyField, Update: EdgeSkyRule},
			}
		},
	},
	PresetGroundOnly: {
		summary: "every cell forced to ground",
		defs: func() []state.Definition {
			return []state.Definition{
				{Name: Ground, Initial: state.Constant(1), Update: state.Neutral},
				{Name: Sky, Initial: state.Constant(0), Update: state.Neutral},
			}
		},
	},
	PresetInitialWeightsError: {
		summary: "no initial mass anywhere; fails with a configuration error",
		defs: func() []state.Definition {
			return []state.Definition{
				{Name: Ground, Initial: state.Constant(0), Update: state.Factor(0)},
			}
		},
	},
	PresetContradiction: {
		summary: "every signal rules out every state; fails with a contradiction",
		defs: func() []state.Definition {
			return []state.Definition{
				{Name: Ground, Initial: state.Constant(1), Update: state.Factor(0)},
				{Name: Sky, Initial: state.Constant(1), Update: state.Factor(0)},
			}
		},
	},
}

var sizes = map[string]lattice.Dimensions{
	SizeTestOne: lattice.NewDimensions(1, 1, 1),
	SizeSmall:   lattice.NewDimensions(10, 10, 10),
	SizeMedium:  lattice.NewDimensions(20, 20, 20),
	SizeLarge:   lattice.NewDimensions(30, 30, 30),
}

// Preset returns a fresh copy of the named preset's definitions.
func Preset(name string) ([]state.Definition, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.defs(), nil
}

// Table builds the state table of the named preset.
func Table(name string) (*state.Table, error) {
	defs, err := Preset(name)
	if err != nil {
		return nil, err
	}
	return state.NewTable(defs...)
}

// Summary returns the one-line description of a preset, or "" if unknown.
func Summary(name string) string {
	return presets[name].summary
}

// PresetNames returns the registered preset names, sorted.
func PresetNames() []string {
	return sortedKeys(presets)
}

// Size returns the dimensions of a named size.
func Size(name string) (lattice.Dimensions, error) {
	d, ok := sizes[name]
	if !ok {
		return lattice.Dimensions{}, fmt.Errorf("%w: %q", ErrUnknownSize, name)
	}
	return d, nil
}

// SizeNames returns the registered size names, smallest first.
func SizeNames() []string {
	names := sortedKeys(sizes)
	sort.SliceStable(names, func(i, j int) bool {
		return sizes[names[i]].Len() < sizes[names[j]].Len()
	})
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
