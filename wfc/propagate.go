// SPDX-License-Identifier: MIT
// Package: voxwfc/wfc
//
// propagate.go — bounded breadth-first spread of one collapse.
//
// Contract:
//   • The walk starts at the collapsed cell at distance 0 and visits each cell
//     at most once per call (per-call visited set, epoch-stamped).
//   • Observed cells are never mutated but are walked through, carrying the
//     state of the node that reached them.
//   • An unobserved neighbor at hop h receives Signal{source, dir, h}; its
//     weights are multiplied by every state's factor and renormalized.
//   • A neighbor that becomes one-hot is collapsed and re-enqueued at distance
//     0 with its own state, starting a fresh bounded broadcast.
//   • A neighbor reaches the queue only when its hop count is < MaxDistance.
//   • Explicit FIFO queue: chains of forced collapses never grow the call stack.

package wfc

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/state"
	"github.com/katalvlaran/voxwfc/wavemath"
)

// node is one queue entry: the cell to expand, the state it broadcasts and
// its hop distance from the broadcasting cell.
type node struct {
	cell  lattice.CellID
	state int
	dist  int
}

// Propagate spreads the observation of id to cells within MaxDistance hops.
// It is a no-op for an unobserved cell. Under ContradictionStrict it returns
// ErrContradiction for the first cell it drives to all-zero weights.
func (e *Engine) Propagate(id lattice.CellID) error {
	if e.phase != Running {
		return fmt.Errorf("%w: phase %s", ErrNotRunning, e.phase)
	}
	if id < 0 || int(id) >= e.store.Len() {
		return &CellError{Op: "propagate", Cell: id, Err: lattice.ErrOutOfBounds}
	}
	src, ok := e.store.Observation(id)
	if !ok {
		return nil
	}

	e.nextEpoch()
	e.queue = e.queue[:0]
	e.enqueue(node{cell: id, state: src, dist: 0})
	e.stamp[id] = e.epoch

	for head := 0; head < len(e.queue); head++ {
		n := e.queue[head]
		for _, edge := range e.store.Edges(n.cell) {
			nb := edge.Neighbor
			if e.stamp[nb] == e.epoch {
				continue
			}
			e.stamp[nb] = e.epoch
			dist := n.dist + 1

			if !e.store.Observed(nb) {
				forced, err := e.update(nb, n.state, edge.Direction, dist)
				if err != nil {
					return err
				}
				if forced >= 0 {
					e.enqueue(node{cell: nb, state: forced, dist: 0})
					continue
				}
			}
			if dist < e.opts.MaxDistance {
				e.enqueue(node{cell: nb, state: n.state, dist: dist})
			}
		}
	}
	return nil
}

// update applies one signal to the unobserved cell nb. It returns the forced
// state when the result is one-hot, −1 otherwise.
func (e *Engine) update(nb lattice.CellID, src int, dir lattice.Direction, dist int) (int, error) {
	sig := state.Signal{Source: e.names[src], Direction: dir, Distance: dist}
	wasZeroed := math.IsNaN(float64(e.store.Entropy(nb)))
	h, err := e.store.Combine(nb, e.updateVector(src, dir, dist))
	if err != nil {
		return -1, &CellError{Op: "propagate", Cell: nb, Point: e.store.Point(nb), Err: err}
	}
	e.stats.Updates++
	e.opts.OnUpdate(nb, sig, h)

	if hot, ok := wavemath.OneHot(e.store.Weights(nb)); ok {
		if err := e.store.Collapse(nb, hot); err != nil {
			return -1, &CellError{Op: "propagate", Cell: nb, Point: e.store.Point(nb), Err: err}
		}
		e.stats.ForcedPropagated++
		e.collapsed(nb, e.store.Point(nb), hot, CausePropagated)
		return hot, nil
	}

	if math.IsNaN(float64(h)) {
		if !wasZeroed {
			e.stats.Latent++
		}
		p := e.store.Point(nb)
		if e.opts.Contradiction == ContradictionStrict {
			e.phase = Contradicted
			e.log.Warn("contradiction on propagate",
				zap.Int("cell", int(nb)),
				zap.Stringer("point", p),
				zap.Stringer("signal", sig))
			return -1, &CellError{Op: "propagate", Cell: nb, Point: p, Err: ErrContradiction}
		}
		e.log.Debug("cell zeroed, contradiction deferred",
			zap.Int("cell", int(nb)),
			zap.Stringer("point", p),
			zap.Stringer("signal", sig))
	}
	return -1, nil
}

// updateVector returns the memoized factors of every state for the signal
// (src, dir, dist). UpdateWeightFn is pure, so each vector is built once.
// Distances past the lattice diameter never occur; they are evaluated unmemoized.
func (e *Engine) updateVector(src int, dir lattice.Direction, dist int) []float32 {
	if dist > e.memoDist {
		return e.table.UpdateWeights(nil, state.Signal{Source: e.names[src], Direction: dir, Distance: dist})
	}
	idx := (src*len(lattice.Directions)+int(dir))*e.memoDist + dist - 1
	if v := e.updates[idx]; v != nil {
		return v
	}
	sig := state.Signal{Source: e.names[src], Direction: dir, Distance: dist}
	v := e.table.UpdateWeights(nil, sig)
	e.updates[idx] = v
	return v
}

func (e *Engine) enqueue(n node) {
	e.queue = append(e.queue, n)
}

// nextEpoch advances the visited stamp, clearing stamps on wrap-around.
func (e *Engine) nextEpoch() {
	e.epoch++
	if e.epoch == 0 {
		clear(e.stamp)
		e.epoch = 1
	}
}
