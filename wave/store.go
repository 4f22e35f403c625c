// Package wave stores the per-cell state of a collapse run: the weight
// vector over states, its cached entropy and the observation, if any.
//
// Cells are appended once, in CellID order, and never removed. While a cell is
// unobserved its weights may be combined with update vectors; once observed,
// the cell is frozen and every mutation returns ErrFrozen.
package wave

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxwfc/lattice"
	"github.com/katalvlaran/voxwfc/wavemath"
)

// Unobserved is the observation value of a cell that has not collapsed.
const Unobserved = -1

// Sentinel errors for store operations.
var (
	// ErrWeightLength indicates a weight vector whose length differs from the state count.
	ErrWeightLength = errors.New("wave: weight vector length mismatch")
	// ErrInconsistent indicates an observation that does not match a one-hot vector.
	ErrInconsistent = errors.New("wave: observation requires a one-hot vector")
	// ErrFrozen indicates a mutation of an observed cell.
	ErrFrozen = errors.New("wave: cell already observed")
	// ErrUnknownCell indicates a CellID that was never added.
	ErrUnknownCell = errors.New("wave: unknown cell")
	// ErrUnknownState indicates a state id outside [0, state count).
	ErrUnknownState = errors.New("wave: unknown state")
)

// Entry is the export view of one cell.
type Entry struct {
	Point    lattice.Point
	State    int
	Observed bool
}

// Store holds every cell of a run. Weight vectors live in one flat slice,
// cell i owning weights[i*k : (i+1)*k].
type Store struct {
	k            int
	points       []lattice.Point
	edges        [][]lattice.Edge
	weights      []float32
	entropies    []float32
	observations []int
	observed     int
}

// NewStore returns an empty store for stateCount states, preallocated for
// capacity cells.
func NewStore(stateCount, capacity int) *Store {
	if stateCount < 1 {
		stateCount = 1
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		k:            stateCount,
		points:       make([]lattice.Point, 0, capacity),
		edges:        make([][]lattice.Edge, 0, capacity),
		weights:      make([]float32, 0, capacity*stateCount),
		entropies:    make([]float32, 0, capacity),
		observations: make([]int, 0, capacity),
	}
}

// Add appends a cell and returns its id. weights is copied. observation is a
// state id or Unobserved; an observed cell must carry a one-hot vector whose
// hot entry is that state, and its entropy is stored as 0.
func (s *Store) Add(p lattice.Point, edges []lattice.Edge, weights []float32, entropy float32, observation int) (lattice.CellID, error) {
	if len(weights) != s.k {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrWeightLength, len(weights), s.k)
	}
	if observation != Unobserved {
		if observation < 0 || observation >= s.k {
			return 0, fmt.Errorf("%w: %d", ErrUnknownState, observation)
		}
		if hot, ok := wavemath.OneHot(weights); !ok || hot != observation {
			return 0, fmt.Errorf("%w: state %d, weights %v", ErrInconsistent, observation, weights)
		}
		entropy = 0
		s.observed++
	}
	id := lattice.CellID(len(s.points))
	s.points = append(s.points, p)
	s.edges = append(s.edges, edges)
	s.weights = append(s.weights, weights...)
	s.entropies = append(s.entropies, entropy)
	s.observations = append(s.observations, observation)
	return id, nil
}

// Len returns the number of cells; ids run from 0 to Len()-1.
func (s *Store) Len() int {
	return len(s.points)
}

// StateCount returns the length of every weight vector.
func (s *Store) StateCount() int {
	return s.k
}

// ObservedCount returns how many cells have collapsed.
func (s *Store) ObservedCount() int {
	return s.observed
}

func (s *Store) valid(id lattice.CellID) bool {
	return id >= 0 && int(id) < len(s.points)
}

// Point returns the coordinate of id.
func (s *Store) Point(id lattice.CellID) lattice.Point {
	return s.points[id]
}

// Edges returns the adjacency list of id.
func (s *Store) Edges(id lattice.CellID) []lattice.Edge {
	return s.edges[id]
}

// Weights returns the weight vector of id. The slice aliases the store and
// must be treated as read-only.
func (s *Store) Weights(id lattice.CellID) []float32 {
	off := int(id) * s.k
	return s.weights[off : off+s.k : off+s.k]
}

// Entropy returns the cached entropy of id.
func (s *Store) Entropy(id lattice.CellID) float32 {
	return s.entropies[id]
}

// Observation returns the collapsed state of id and whether it has collapsed.
func (s *Store) Observation(id lattice.CellID) (int, bool) {
	o := s.observations[id]
	return o, o != Unobserved
}

// Observed reports whether id has collapsed.
func (s *Store) Observed(id lattice.CellID) bool {
	return s.observations[id] != Unobserved
}

// Combine folds update into the weights of an unobserved cell and refreshes
// its entropy, which it returns.
func (s *Store) Combine(id lattice.CellID, update []float32) (float32, error) {
	if !s.valid(id) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCell, id)
	}
	if s.Observed(id) {
		return 0, fmt.Errorf("%w: %d", ErrFrozen, id)
	}
	if len(update) != s.k {
		return 0, fmt.Errorf("%w: update has %d, want %d", ErrWeightLength, len(update), s.k)
	}
	h := wavemath.Combine(s.Weights(id), update)
	s.entropies[id] = h
	return h, nil
}

// Collapse fixes id to state: one-hot weights, entropy 0, observation set.
func (s *Store) Collapse(id lattice.CellID, state int) error {
	if !s.valid(id) {
		return fmt.Errorf("%w: %d", ErrUnknownCell, id)
	}
	if state < 0 || state >= s.k {
		return fmt.Errorf("%w: %d", ErrUnknownState, state)
	}
	if s.Observed(id) {
		return fmt.Errorf("%w: %d", ErrFrozen, id)
	}
	wavemath.SetOneHot(s.Weights(id), state)
	s.entropies[id] = 0
	s.observations[id] = state
	s.observed++
	return nil
}

// View returns the (point, observation) pairs of every cell in id order.
func (s *Store) View() []Entry {
	out := make([]Entry, len(s.points))
	for i, p := range s.points {
		o := s.observations[i]
		out[i] = Entry{Point: p, State: o, Observed: o != Unobserved}
	}
	return out
}
