// SPDX-License-Identifier: MIT
// Package: voxwfc/lattice
//
// lattice.go — construction of the cell enumeration and adjacency lists.
//
// Contract:
//   • Points are emitted z ascending, then y ascending, then x ascending.
//   • Point index in that order equals its CellID (x + y·W + z·W·D).
//   • Edges per cell are emitted in the fixed order x−1, x+1, y−1, y+1, z−1, z+1,
//     skipping out-of-bounds neighbors; the lattice is immutable afterwards.
//
// Determinism:
//   • No maps, no randomness: two lattices with equal Dimensions are identical.

package lattice

import "fmt"

// neighborStep pairs an axis offset with the direction the neighbor sees it from.
type neighborStep struct {
	dx, dy, dz int
	dir        Direction
}

// neighborSteps is the fixed emission order of edges.
var neighborSteps = [...]neighborStep{
	{-1, 0, 0, Right},
	{+1, 0, 0, Left},
	{0, -1, 0, Back},
	{0, +1, 0, Front},
	{0, 0, -1, Up},
	{0, 0, +1, Down},
}

// Lattice is the immutable cell set and adjacency of a voxel box.
type Lattice struct {
	dims   Dimensions
	points []Point
	edges  [][]Edge
}

// New builds the lattice for d.
// Returns ErrInvalidDimensions if any component of d is smaller than 1.
// Complexity: O(W×D×H) time and memory.
func New(d Dimensions) (*Lattice, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	n := d.Len()
	l := &Lattice{
		dims:   d,
		points: make([]Point, 0, n),
		edges:  make([][]Edge, 0, n),
	}
	for z := 0; z < d.Height; z++ {
		for y := 0; y < d.Depth; y++ {
			for x := 0; x < d.Width; x++ {
				p := Point{X: x, Y: y, Z: z}
				l.points = append(l.points, p)
				l.edges = append(l.edges, l.neighbors(p))
			}
		}
	}

	return l, nil
}

// MustNew is like New but panics on invalid dimensions. Intended for tests
// and package-level fixtures.
func MustNew(d Dimensions) *Lattice {
	l, err := New(d)
	if err != nil {
		panic(err)
	}
	return l
}

// neighbors collects the in-bounds axis neighbors of p in emission order.
func (l *Lattice) neighbors(p Point) []Edge {
	out := make([]Edge, 0, len(neighborSteps))
	for _, s := range neighborSteps {
		q := Point{X: p.X + s.dx, Y: p.Y + s.dy, Z: p.Z + s.dz}
		if !l.InBounds(q) {
			continue
		}
		out = append(out, Edge{Neighbor: l.index(q), Direction: s.dir})
	}
	return out
}

// Dimensions returns the extent of the lattice.
func (l *Lattice) Dimensions() Dimensions {
	return l.dims
}

// Len returns the number of cells.
func (l *Lattice) Len() int {
	return len(l.points)
}

// InBounds reports whether p lies within the lattice.
// Complexity: O(1).
func (l *Lattice) InBounds(p Point) bool {
	return p.X >= 0 && p.X < l.dims.Width &&
		p.Y >= 0 && p.Y < l.dims.Depth &&
		p.Z >= 0 && p.Z < l.dims.Height
}

// index maps p to its linear id without bounds checks.
func (l *Lattice) index(p Point) CellID {
	return CellID(p.X + p.Y*l.dims.Width + p.Z*l.dims.Width*l.dims.Depth)
}

// ID maps p to its CellID. Returns ErrOutOfBounds for points outside the lattice.
// Complexity: O(1).
func (l *Lattice) ID(p Point) (CellID, error) {
	if !l.InBounds(p) {
		return 0, fmt.Errorf("%w: %s in %s", ErrOutOfBounds, p, l.dims)
	}
	return l.index(p), nil
}

// Point converts a CellID back to its coordinate.
// Returns ErrOutOfBounds if id is not a cell of this lattice.
// Complexity: O(1).
func (l *Lattice) Point(id CellID) (Point, error) {
	if id < 0 || int(id) >= len(l.points) {
		return Point{}, fmt.Errorf("%w: id %d of %d cells", ErrOutOfBounds, id, len(l.points))
	}
	return l.points[id], nil
}

// Points returns all points in enumeration (CellID) order. The slice is
// shared; callers must not modify it.
func (l *Lattice) Points() []Point {
	return l.points
}

// Edges returns the adjacency list of id, or nil for an unknown id. The slice
// is shared; callers must not modify it.
// Complexity: O(1).
func (l *Lattice) Edges(id CellID) []Edge {
	if id < 0 || int(id) >= len(l.edges) {
		return nil
	}
	return l.edges[id]
}

// EdgeCount returns the number of directed edges, i.e. twice the number of
// undirected neighbor pairs.
func (l *Lattice) EdgeCount() int {
	total := 0
	for _, es := range l.edges {
		total += len(es)
	}
	return total
}
