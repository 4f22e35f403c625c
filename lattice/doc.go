// Package lattice treats a 3D box of voxel cells as a fixed graph, enabling
// wave-function-collapse style generators to address cells by a dense integer
// id and walk their axis-aligned neighbors.
//
// What:
//
//   - Dimensions fixes the extent (Width × Depth × Height).
//   - Points are enumerated z-major, then y, then x; the cell id of (x,y,z) is
//     x + y·Width + z·Width·Depth, and that linearization never changes.
//   - Every cell carries up to six Edges (Left, Right, Front, Back, Up, Down),
//     built once and immutable afterwards.
//
// Why:
//
//   - Voxel maps: procedural terrain, sky/ground layering, structure placement.
//   - Constraint propagation: bounded breadth-first walks over neighbors.
//
// Complexity:
//
//   - New:            O(W×D×H), Memory: O(W×D×H) (≤6 edges per cell).
//   - ID / Point:     O(1).
//   - Edges:          O(1) (returns the precomputed slice).
//
// Errors:
//
//   - ErrInvalidDimensions: any dimension is smaller than 1.
//   - ErrOutOfBounds: a point or id lies outside the lattice.
package lattice
