// SPDX-License-Identifier: MIT
// Package: voxwfc/wfc
//
// engine.go — engine construction, initialization and the collapse loop.
//
// Determinism:
//   • Cells are initialized in CellID order; each non-forced cell draws exactly
//     one jitter value, forced cells draw none.
//   • Selection scans in CellID order; Observe draws one value per call.

package wfc

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
	"github.com/katalvlaran/voxwfc/wave"
	"github.com/katalvlaran/voxwfc/wavemath"
)

// Engine runs one collapse over a lattice. Create it with New, call Run once.
type Engine struct {
	lat   *lattice.Lattice
	table *state.Table
	names []string
	opts  Options
	rng   *rand.Rand
	log   *zap.Logger

	store *wave.Store
	phase Phase
	stats Stats

	// updates memoizes UpdateWeights per (source, direction, distance) for
	// distances up to memoDist.
	updates  [][]float32
	memoDist int

	// propagation scratch, reused across calls
	queue []node
	stamp []uint32
	epoch uint32
}

// New validates its inputs and options and returns an uninitialized engine.
// Returns ErrNilInput or ErrOptionViolation.
func New(lat *lattice.Lattice, table *state.Table, opts ...Option) (*Engine, error) {
	if lat == nil || table == nil {
		return nil, ErrNilInput
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	e := &Engine{
		lat:     lat,
		table:   table,
		names:   table.Names(),
		opts:    o,
		rng:     o.Rand,
		log:     o.Logger.Named("wfc"),
		store:   wave.NewStore(table.Len(), lat.Len()),
		stamp:   make([]uint32, lat.Len()),
	}
	e.memoDist = min(o.MaxDistance, max(lat.Dimensions().Diameter(), 1))
	e.updates = make([][]float32, table.Len()*len(lattice.Directions)*e.memoDist)
	e.stats.Cells = lat.Len()
	return e, nil
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Lattice returns the lattice the engine runs on.
func (e *Engine) Lattice() *lattice.Lattice {
	return e.lat
}

// Table returns the state table.
func (e *Engine) Table() *state.Table {
	return e.table
}

// MaxDistance returns the resolved propagation radius.
func (e *Engine) MaxDistance() int {
	return e.opts.MaxDistance
}

// Run executes the whole collapse: Initialize, then MinEntropyCell → Observe
// → Propagate until every cell is observed. Any error aborts the run and
// leaves the engine in a terminal phase; there are no retries.
func (e *Engine) Run() error {
	if err := e.Initialize(); err != nil {
		return err
	}
	for {
		id, ok := e.MinEntropyCell()
		if !ok {
			break
		}
		if err := e.Observe(id); err != nil {
			return err
		}
		if err := e.Propagate(id); err != nil {
			return err
		}
	}
	e.phase = Completed
	e.log.Debug("collapse completed",
		zap.Int("cells", e.stats.Cells),
		zap.Int("sampled", e.stats.Sampled),
		zap.Int("forced", e.stats.ForcedInitial+e.stats.ForcedPropagated),
		zap.Int("updates", e.stats.Updates))
	return nil
}

// Initialize evaluates and normalizes every cell's initial weights.
// One-hot cells are collapsed immediately (no jitter, no propagation);
// cells without any valid weight fail the run with ErrConfiguration.
func (e *Engine) Initialize() error {
	if e.phase != Uninitialized {
		return ErrAlreadyRun
	}
	e.phase = Initializing

	d := e.lat.Dimensions()
	buf := make([]float32, e.table.Len())
	for i, p := range e.lat.Points() {
		id := lattice.CellID(i)
		buf = e.table.InitialWeights(buf, d, p)
		wavemath.Normalize(buf)

		obs := wave.Unobserved
		var h float32
		if hot, ok := wavemath.OneHot(buf); ok {
			obs = hot
		} else {
			h = wavemath.Entropy(buf)
			if math.IsNaN(float64(h)) {
				e.phase = ConfigurationFailed
				err := &CellError{Op: "initialize", Cell: id, Point: p, Err: ErrConfiguration}
				e.log.Warn("unsatisfiable initial weights", zap.Int("cell", i), zap.Stringer("point", p))
				return err
			}
			h += jitter(e.rng, e.opts.Jitter)
		}

		if _, err := e.store.Add(p, e.lat.Edges(id), buf, h, obs); err != nil {
			e.phase = ConfigurationFailed
			return &CellError{Op: "initialize", Cell: id, Point: p, Err: err}
		}
		if obs != wave.Unobserved {
			e.stats.ForcedInitial++
			e.collapsed(id, p, obs, CauseInitial)
		}
	}

	e.phase = Running
	e.log.Debug("wave initialized",
		zap.Stringer("dimensions", d),
		zap.Int("states", e.table.Len()),
		zap.Int("forced", e.stats.ForcedInitial))
	return nil
}

// collapsed records a collapse in the log and the hook.
func (e *Engine) collapsed(id lattice.CellID, p lattice.Point, st int, cause Cause) {
	if ce := e.log.Check(zapcore.DebugLevel, "cell collapsed"); ce != nil {
		ce.Write(
			zap.Int("cell", int(id)),
			zap.Stringer("point", p),
			zap.String("state", e.names[st]),
			zap.Stringer("cause", cause))
	}
	e.opts.OnCollapse(CollapseEvent{Cell: id, Point: p, State: e.names[st], Cause: cause})
}

// Stats returns the work counters of the run so far.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.Observed = e.store.ObservedCount()
	return s
}

// Assignments returns every initialized cell in CellID order with its state
// name, if observed.
func (e *Engine) Assignments() []Assignment {
	view := e.store.View()
	out := make([]Assignment, len(view))
	for i, c := range view {
		a := Assignment{Cell: lattice.CellID(i), Point: c.Point, Observed: c.Observed}
		if c.Observed {
			a.State = e.names[c.State]
		}
		out[i] = a
	}
	return out
}

// Counts returns how many cells collapsed to each state.
func (e *Engine) Counts() map[string]int {
	out := make(map[string]int, len(e.names))
	for _, c := range e.store.View() {
		if c.Observed {
			out[e.names[c.State]]++
		}
	}
	return out
}

// Weights returns a copy of the weight vector of id, or nil if id has not
// been initialized.
func (e *Engine) Weights(id lattice.CellID) []float32 {
	if id < 0 || int(id) >= e.store.Len() {
		return nil
	}
	return append([]float32(nil), e.store.Weights(id)...)
}

// Entropy returns the cached entropy of id (NaN if id has not been initialized).
func (e *Engine) Entropy(id lattice.CellID) float32 {
	if id < 0 || int(id) >= e.store.Len() {
		return float32(math.NaN())
	}
	return e.store.Entropy(id)
}

// Observation returns the state name of id and whether it has collapsed.
func (e *Engine) Observation(id lattice.CellID) (string, bool) {
	if id < 0 || int(id) >= e.store.Len() {
		return "", false
	}
	st, ok := e.store.Observation(id)
	if !ok {
		return "", false
	}
	return e.names[st], true
}

func (e *Engine) String() string {
	return fmt.Sprintf("wfc.Engine(%s, %d states, max distance %d, %s)",
		e.lat.Dimensions(), e.table.Len(), e.opts.MaxDistance, e.phase)
}
