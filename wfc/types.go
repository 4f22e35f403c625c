// SPDX-License-Identifier: MIT
// Package: voxwfc/wfc
//
// types.go — phases, policies, sentinel errors and result records.
//
// Error policy:
//   • Only sentinel variables are exposed; callers use errors.Is.
//   • Cell-level failures are wrapped in *CellError (use errors.As for the cell).
//   • Algorithms never panic; option constructors panic on nil arguments.

package wfc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/voxwfc/lattice"
)

// ErrConfiguration indicates an unsatisfiable initial field: some cell has
// no finite positive initial weight and no forced state.
var ErrConfiguration = errors.New("wfc: unsatisfiable initial weights")

// ErrContradiction indicates a cell whose weights were driven to all-zero
// before it could be observed.
var ErrContradiction = errors.New("wfc: contradiction")

// ErrOptionViolation indicates an invalid Option value.
var ErrOptionViolation = errors.New("wfc: invalid option supplied")

// ErrNilInput indicates a nil lattice or state table.
var ErrNilInput = errors.New("wfc: lattice and state table are required")

// ErrAlreadyRun indicates a second Run or Initialize on the same engine.
var ErrAlreadyRun = errors.New("wfc: engine already started")

// ErrNotRunning indicates Observe or Propagate outside the Running phase.
var ErrNotRunning = errors.New("wfc: engine is not running")

// ErrObserved indicates Observe on a cell that has already collapsed.
var ErrObserved = errors.New("wfc: cell already observed")

// CellError attaches the failing operation and cell to a sentinel error.
type CellError struct {
	Op    string // "initialize", "observe" or "propagate"
	Cell  lattice.CellID
	Point lattice.Point
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%s: cell %d at %s: %v", e.Op, e.Cell, e.Point, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// Phase is the lifecycle position of an Engine.
type Phase uint8

const (
	// Uninitialized is the phase of a fresh engine.
	Uninitialized Phase = iota
	// Initializing is the phase while initial weights are evaluated.
	Initializing
	// Running is the select → observe → propagate loop.
	Running
	// Completed means every cell is observed.
	Completed
	// ConfigurationFailed is terminal after ErrConfiguration.
	ConfigurationFailed
	// Contradicted is terminal after ErrContradiction.
	Contradicted
)

var phaseNames = [...]string{"uninitialized", "initializing", "running", "completed", "configuration-error", "contradiction"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return fmt.Sprintf("Phase(%d)", uint8(p))
}

// Terminal reports whether no further progress is possible.
func (p Phase) Terminal() bool {
	return p >= Completed
}

// ContradictionPolicy selects when a cell zeroed by propagation fails the run.
type ContradictionPolicy uint8

const (
	// ContradictionDeferred keeps the zeroed cell and fails when it is observed.
	ContradictionDeferred ContradictionPolicy = iota
	// ContradictionStrict fails inside the propagation that zeroed the cell.
	ContradictionStrict
)

func (p ContradictionPolicy) String() string {
	switch p {
	case ContradictionDeferred:
		return "deferred"
	case ContradictionStrict:
		return "strict"
	default:
		return fmt.Sprintf("ContradictionPolicy(%d)", uint8(p))
	}
}

// ParseContradictionPolicy maps "deferred"/"strict" ("" means deferred).
func ParseContradictionPolicy(s string) (ContradictionPolicy, error) {
	switch s {
	case "", "deferred":
		return ContradictionDeferred, nil
	case "strict":
		return ContradictionStrict, nil
	default:
		return 0, fmt.Errorf("%w: contradiction policy %q", ErrOptionViolation, s)
	}
}

// Cause tells how a cell came to be collapsed.
type Cause uint8

const (
	// CauseInitial marks a cell forced by a one-hot initial field.
	CauseInitial Cause = iota
	// CauseObserved marks a cell sampled by Observe.
	CauseObserved
	// CausePropagated marks a cell forced to one-hot during propagation.
	CausePropagated
)

func (c Cause) String() string {
	switch c {
	case CauseInitial:
		return "initial"
	case CauseObserved:
		return "observed"
	case CausePropagated:
		return "propagated"
	default:
		return fmt.Sprintf("Cause(%d)", uint8(c))
	}
}

// CollapseEvent is passed to the OnCollapse hook.
type CollapseEvent struct {
	Cell  lattice.CellID
	Point lattice.Point
	State string
	Cause Cause
}

// Assignment is the export view of one cell after (or during) a run.
// State is empty when Observed is false.
type Assignment struct {
	Cell     lattice.CellID
	Point    lattice.Point
	State    string
	Observed bool
}

// Stats counts the work done by a run.
type Stats struct {
	Cells            int // lattice size
	Observed         int // cells collapsed so far, all causes
	ForcedInitial    int // one-hot initial fields
	ForcedPropagated int // one-hot after a propagation update
	Sampled          int // successful Observe calls
	Updates          int // Combine calls during propagation
	Latent           int // distinct cells zeroed by propagation (deferred contradictions)
}
