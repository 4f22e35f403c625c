// Package state defines the ordered table of candidate cell states. Each state
// is a record of two pure functions: the initial weight of the state at a
// point, and the multiplicative factor applied when a neighbor's collapse
// reaches the cell as a Signal.
//
// A state's id is its index in the Table; the table is immutable once built,
// so ids stay valid for the lifetime of a generation run.
package state

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxwfc/lattice"
)

// Sentinel errors for table construction.
var (
	// ErrEmptyTable is returned when no definitions are supplied.
	ErrEmptyTable = errors.New("state: table needs at least one state")
	// ErrEmptyName is returned for a definition with an empty name.
	ErrEmptyName = errors.New("state: state name is empty")
	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("state: duplicate state name")
	// ErrNilFunc is returned when a definition lacks a weight function.
	ErrNilFunc = errors.New("state: weight function is nil")
)

// Signal is one hop of influence spreading from a collapsed cell.
//
//	Source:    name of the state that was collapsed.
//	Direction: side of the receiving cell the influence arrives from.
//	Distance:  hops from the collapsed cell (1 for direct neighbors).
type Signal struct {
	Source    string
	Direction lattice.Direction
	Distance  int
}

func (s Signal) String() string {
	return fmt.Sprintf("%s/%s/%d", s.Source, s.Direction, s.Distance)
}

// InitialWeightFn returns the unnormalized prior weight of a state at p.
// Any value is accepted; zero, negative and non-finite results are treated
// as "impossible here".
type InitialWeightFn func(d lattice.Dimensions, p lattice.Point) float32

// UpdateWeightFn returns the factor a cell's weight for this state is
// multiplied by when sig reaches it. 1 is neutral, 0 rules the state out.
// It must depend on sig only.
type UpdateWeightFn func(sig Signal) float32

// Definition describes one candidate state.
type Definition struct {
	Name    string
	Initial InitialWeightFn
	Update  UpdateWeightFn
}

// Table is the immutable, ordered set of states of a run.
type Table struct {
	defs  []Definition
	names []string
	index map[string]int
}

// NewTable validates defs and freezes them in the given order.
// Returns ErrEmptyTable, ErrEmptyName, ErrDuplicateName or ErrNilFunc.
func NewTable(defs ...Definition) (*Table, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyTable
	}
	t := &Table{
		defs:  make([]Definition, len(defs)),
		names: make([]string, len(defs)),
		index: make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: definition %d", ErrEmptyName, i)
		}
		if _, dup := t.index[d.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		if d.Initial == nil || d.Update == nil {
			return nil, fmt.Errorf("%w: state %q", ErrNilFunc, d.Name)
		}
		t.defs[i] = d
		t.names[i] = d.Name
		t.index[d.Name] = i
	}
	return t, nil
}

// MustTable is like NewTable but panics on invalid definitions.
func MustTable(defs ...Definition) *Table {
	t, err := NewTable(defs...)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of states.
func (t *Table) Len() int {
	return len(t.defs)
}

// Name returns the name of state id, or "" if id is out of range.
func (t *Table) Name(id int) string {
	if id < 0 || id >= len(t.names) {
		return ""
	}
	return t.names[id]
}

// ID returns the id of the named state.
func (t *Table) ID(name string) (int, bool) {
	id, ok := t.index[name]
	return id, ok
}

// Names returns a copy of the state names in id order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// InitialWeights writes every state's raw initial weight at p into dst,
// reallocating dst if it is too short, and returns it.
func (t *Table) InitialWeights(dst []float32, d lattice.Dimensions, p lattice.Point) []float32 {
	dst = resize(dst, len(t.defs))
	for i, def := range t.defs {
		dst[i] = def.Initial(d, p)
	}
	return dst
}

// UpdateWeights writes every state's factor for sig into dst, reallocating
// dst if it is too short, and returns it.
func (t *Table) UpdateWeights(dst []float32, sig Signal) []float32 {
	dst = resize(dst, len(t.defs))
	for i, def := range t.defs {
		dst[i] = def.Update(sig)
	}
	return dst
}

func resize(dst []float32, n int) []float32 {
	if cap(dst) < n {
		return make([]float32, n)
	}
	return dst[:n]
}

// Constant returns an InitialWeightFn that ignores its arguments.
func Constant(w float32) InitialWeightFn {
	return func(lattice.Dimensions, lattice.Point) float32 { return w }
}

// Neutral is the UpdateWeightFn that leaves weights unchanged.
func Neutral(Signal) float32 { return 1 }

// Factor returns an UpdateWeightFn that multiplies by f for every signal.
func Factor(f float32) UpdateWeightFn {
	return func(Signal) float32 { return f }
}
