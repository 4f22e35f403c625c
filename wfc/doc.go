// Package wfc collapses a voxel lattice into a fully determined map with a
// continuous-weight variant of Wave Function Collapse.
//
// What:
//
//   - Every cell starts with a normalized weight vector over the states of a
//     state.Table, built from each state's initial weight function.
//   - The run repeatedly picks the unobserved cell of lowest entropy, samples
//     one state proportionally to its weights, and spreads that decision to
//     cells within MaxDistance hops by multiplying their weights with each
//     state's update factor for the arriving Signal.
//   - A cell whose weights become one-hot is collapsed on the spot (forced)
//     and broadcasts its own state from distance 0.
//
// Lifecycle:
//
//	Uninitialized → Initializing → Running → Completed
//	                     │             └──→ Contradiction
//	                     └──→ ConfigurationError
//
// Errors:
//
//   - ErrConfiguration: a cell has no valid initial weight for any state.
//   - ErrContradiction: a cell's weights were driven to zero before it was
//     observed. With ContradictionDeferred (default) the run fails when that
//     cell is picked for observation; with ContradictionStrict it fails inside
//     the propagation step that zeroed it.
//   - Both arrive wrapped in a *CellError naming the cell. Neither is
//     recoverable: discard the engine and start over, usually with a new seed.
//
// Randomness:
//
//   - A single *rand.Rand, injected through WithRand or WithSeed, feeds both
//     the initial tie-breaking jitter and every observation. Equal inputs and
//     seed produce identical maps.
//
// Complexity:
//
//   - Selection: O(cells) per collapse, O(cells²) per run.
//   - Propagation: O(min(cells, 6^MaxDistance) × states) per collapse.
//
// An Engine is single-use and not safe for concurrent use.
package wfc
