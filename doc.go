// Package voxwfc generates voxel maps with a continuous-weight variant of
// wave function collapse.
//
// What is it?
//
//	A 3D lattice of cells, each holding a probability weight per state.
//	States are pairs of pure functions: an initial field over the lattice
//	and an update rule applied to nearby cells after every collapse.
//	The engine repeatedly observes the least certain cell, samples a state
//	and spreads multiplicative updates up to a bounded number of hops.
//
// Packages:
//
//	lattice/   — dimensions, points, cell ids, the 6-neighbour adjacency
//	state/     — state definitions, propagated signals, the ordered table
//	wavemath/  — normalize, entropy, combine, one-hot, shaping functions
//	wave/      — per-cell weights, entropy and observation storage
//	wfc/       — the collapse engine: initialize, select, observe, propagate
//	fields/    — analytic fields and named presets and sizes
//	export/    — MagicaVoxel mv_import lists and JSONL, optional zstd
//	config/    — YAML run files with an embedded JSON Schema
//	runindex/  — SQLite catalogue of finished runs
//	cmd/voxwfc — the generate, presets and runs commands
//
// Quick example:
//
//	┌─────────┐      simple preset: the bottom layer is forced
//	│ s  s  s │      to ground at initialization; the layers
//	│ s  g  s │      above are sampled, ground thinning out
//	│ g  g  g │      towards the sky.
//	└─────────┘
//
//	voxwfc generate --size small --preset simple --seed 42
package voxwfc
