package fields

import (
	"math"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
	"github.com/katalvlaran/voxwfc/wavemath"
)

// State names shared by the presets.
const (
	Ground = "ground"
	Edge   = "edge"
	Sky    = "sky"
)

// SkyField rises exponentially with height: exp(4z/h) − 1.
// It is 0 on the bottom layer and exceeds 1 in the upper layers.
func SkyField(d lattice.Dimensions, p lattice.Point) float32 {
	return heightExp(d, p, 4)
}

// GroundField is a Gaussian mound centred on the map, scaled by (1 − sky).
// Where the sky field exceeds 1 the result is negative and the state is
// dropped during normalization.
func GroundField(d lattice.Dimensions, p lattice.Point) float32 {
	w := float32(d.Width)
	s := w * 0.9
	g := wavemath.Gaussian(1, w/2, float32(d.Depth)/2, s, s, float32(p.X), float32(p.Y))
	return (1 - SkyField(d, p)) * g
}

// LowSkyField is the gentler sky used by the edge preset: exp(2z/h) − 1.
func LowSkyField(d lattice.Dimensions, p lattice.Point) float32 {
	return heightExp(d, p, 2)
}

// BorderField is 1 on the outer ring of every layer and 0 inside it.
func BorderField(d lattice.Dimensions, p lattice.Point) float32 {
	if p.X == 0 || p.X == d.Width-1 || p.Y == 0 || p.Y == d.Depth-1 {
		return 1
	}
	return 0
}

// BottomField is 1 on the bottom layer and 0 above it.
func BottomField(_ lattice.Dimensions, p lattice.Point) float32 {
	if p.Z == 0 {
		return 1
	}
	return 0
}

func heightExp(d lattice.Dimensions, p lattice.Point, k float64) float32 {
	return float32(math.Exp(float64(p.Z)/float64(d.Height)*k) - 1)
}

// GroundRule reinforces ground next to horizontal ground and rules it out
// above sky.
func GroundRule(s state.Signal) float32 {
	switch {
	case s.Source == Ground && s.Direction.IsHorizontal() && s.Distance == 1:
		return 1.5
	case s.Source == Sky && s.Direction == lattice.Down:
		return 0
	default:
		return 1
	}
}

// noGroundOverSky rules a state out directly above sky.
func noGroundOverSky(s state.Signal) float32 {
	if s.Source == Sky && s.Direction == lattice.Down && s.Distance == 1 {
		return 0
	}
	return 1
}

// flatGround reinforces a state next to horizontal ground.
func flatGround(s state.Signal) float32 {
	if s.Source == Ground && s.Direction.IsHorizontal() && s.Distance == 1 {
		return 1.5
	}
	return 1
}

// EdgeGroundRule combines noGroundOverSky and flatGround.
func EdgeGroundRule(s state.Signal) float32 {
	return noGroundOverSky(s) * flatGround(s)
}

// EdgeRule rules edge out directly above sky.
func EdgeRule(s state.Signal) float32 {
	return noGroundOverSky(s)
}

// EdgeSkyRule rules sky out directly under ground or edge.
func EdgeSkyRule(s state.Signal) float32 {
	if (s.Source == Ground || s.Source == Edge) && s.Direction == lattice.Up && s.Distance == 1 {
		return 0
	}
	return 1
}
