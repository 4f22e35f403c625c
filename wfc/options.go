// SPDX-License-Identifier: MIT
// Package: voxwfc/wfc
//
// options.go — functional options and resolved configuration.
//
// Contract:
//   • Options are functional (type Option func(*Options)), applied in order.
//   • Constructors panic on nil arguments; invalid values are recorded and
//     surfaced as ErrOptionViolation by New.
//   • Determinism is explicit: the RNG comes from WithRand or WithSeed only.

package wfc

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
)

// Defaults.
const (
	// DefaultMaxDistance is the propagation radius in hops.
	DefaultMaxDistance = 2
	// DefaultJitter is the half-width of the uniform entropy tie-break noise, in bits.
	DefaultJitter = 0.001
)

// Option configures an Engine.
type Option func(*Options)

// Options holds the resolved engine configuration.
type Options struct {
	// MaxDistance bounds propagation: signals reach cells at most MaxDistance
	// hops from the collapsed cell. Must be ≥ 1.
	MaxDistance int

	// Rand is the single source of randomness for jitter and observation.
	Rand *rand.Rand

	// Jitter is the half-width of the uniform noise added to finite initial
	// entropies. 0 disables tie-breaking noise.
	Jitter float32

	// Contradiction selects deferred or strict contradiction handling.
	Contradiction ContradictionPolicy

	// Logger receives Debug events per collapse and Warn on contradictions.
	Logger *zap.Logger

	// OnCollapse is called after every collapse, whatever its cause.
	OnCollapse func(CollapseEvent)

	// OnUpdate is called after a propagation update with the receiving
	// cell, the signal and the cell's new entropy.
	OnUpdate func(cell lattice.CellID, sig state.Signal, entropy float32)

	err error
}

// DefaultOptions returns the defaults: MaxDistance 2, seed-0 RNG, jitter
// 0.001, deferred contradictions, no-op logger and hooks.
func DefaultOptions() Options {
	return Options{
		MaxDistance:   DefaultMaxDistance,
		Rand:          rngFromSeed(0),
		Jitter:        DefaultJitter,
		Contradiction: ContradictionDeferred,
		Logger:        zap.NewNop(),
		OnCollapse:    func(CollapseEvent) {},
		OnUpdate:      func(lattice.CellID, state.Signal, float32) {},
	}
}

// WithMaxDistance sets the propagation radius.
//
//	d ≥ 1: signals travel up to d hops
//	d < 1: invalid → ErrOptionViolation
func WithMaxDistance(d int) Option {
	return func(o *Options) {
		if d < 1 {
			o.err = fmt.Errorf("%w: MaxDistance must be ≥ 1 (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDistance = d
	}
}

// WithRand injects the random source. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("wfc: WithRand(nil)")
	}
	return func(o *Options) {
		o.Rand = r
	}
}

// WithSeed creates the random source from seed (0 selects the fixed default seed).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Rand = rngFromSeed(seed)
	}
}

// WithJitter sets the tie-break noise half-width; negative values are invalid.
func WithJitter(j float32) Option {
	return func(o *Options) {
		if j < 0 || j != j {
			o.err = fmt.Errorf("%w: jitter must be ≥ 0 (%v)", ErrOptionViolation, j)
			return
		}
		o.Jitter = j
	}
}

// WithContradictionPolicy selects deferred or strict contradiction handling.
func WithContradictionPolicy(p ContradictionPolicy) Option {
	return func(o *Options) {
		if p > ContradictionStrict {
			o.err = fmt.Errorf("%w: %s", ErrOptionViolation, p)
			return
		}
		o.Contradiction = p
	}
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("wfc: WithLogger(nil)")
	}
	return func(o *Options) {
		o.Logger = l
	}
}

// WithOnCollapse registers a collapse hook.
func WithOnCollapse(fn func(CollapseEvent)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnCollapse = fn
		}
	}
}

// WithOnUpdate registers a propagation-update hook.
func WithOnUpdate(fn func(cell lattice.CellID, sig state.Signal, entropy float32)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnUpdate = fn
		}
	}
}
