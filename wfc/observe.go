package wfc

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxwfc/lattice"
)

// MinEntropyCell returns the unobserved cell of smallest entropy. NaN never
// compares as smallest: cells zeroed by propagation are only returned once no
// cell with a finite entropy remains, lowest id first, so that the run
// reaches its deferred contradiction. Returns false when every cell is
// observed. Ties are broken by the initial jitter, then by lowest id.
// Complexity: O(cells).
func (e *Engine) MinEntropyCell() (lattice.CellID, bool) {
	best, firstNaN := -1, -1
	var bestH float32
	for i := 0; i < e.store.Len(); i++ {
		id := lattice.CellID(i)
		if e.store.Observed(id) {
			continue
		}
		h := e.store.Entropy(id)
		if math.IsNaN(float64(h)) {
			if firstNaN < 0 {
				firstNaN = i
			}
			continue
		}
		if best < 0 || h < bestH {
			best, bestH = i, h
		}
	}
	switch {
	case best >= 0:
		return lattice.CellID(best), true
	case firstNaN >= 0:
		return lattice.CellID(firstNaN), true
	default:
		return 0, false
	}
}

// Observe collapses id to a state drawn proportionally to its weights.
// A cell without positive weight fails the run with ErrContradiction.
func (e *Engine) Observe(id lattice.CellID) error {
	if e.phase != Running {
		return fmt.Errorf("%w: phase %s", ErrNotRunning, e.phase)
	}
	p, err := e.lat.Point(id)
	if err != nil {
		return &CellError{Op: "observe", Cell: id, Err: err}
	}
	if e.store.Observed(id) {
		return &CellError{Op: "observe", Cell: id, Point: p, Err: ErrObserved}
	}

	st, ok := sample(e.rng, e.store.Weights(id))
	if !ok {
		e.phase = Contradicted
		e.log.Warn("contradiction on observe",
			zap.Int("cell", int(id)),
			zap.Stringer("point", p),
			zap.Int("observed", e.store.ObservedCount()))
		return &CellError{Op: "observe", Cell: id, Point: p, Err: ErrContradiction}
	}
	if err := e.store.Collapse(id, st); err != nil {
		return &CellError{Op: "observe", Cell: id, Point: p, Err: err}
	}
	e.stats.Sampled++
	e.collapsed(id, p, st, CauseObserved)
	return nil
}
