// SPDX-License-Identifier: MIT
// Package: voxwfc/lattice
//
// types.go — dimensions, points, directions, edges and sentinel errors.

package lattice

import (
	"errors"
	"fmt"
)

// Sentinel errors for lattice operations.
var (
	// ErrInvalidDimensions indicates a width, depth or height below 1.
	ErrInvalidDimensions = errors.New("lattice: every dimension must be at least 1")
	// ErrOutOfBounds indicates a point or cell id outside the lattice.
	ErrOutOfBounds = errors.New("lattice: point out of bounds")
)

// Dimensions is the extent of the lattice along x (Width), y (Depth) and z (Height).
type Dimensions struct {
	Width  int `json:"width" yaml:"width"`
	Depth  int `json:"depth" yaml:"depth"`
	Height int `json:"height" yaml:"height"`
}

// NewDimensions is a shorthand constructor for Dimensions.
func NewDimensions(width, depth, height int) Dimensions {
	return Dimensions{Width: width, Depth: depth, Height: height}
}

// Validate returns ErrInvalidDimensions unless every component is ≥ 1.
func (d Dimensions) Validate() error {
	if d.Width < 1 || d.Depth < 1 || d.Height < 1 {
		return fmt.Errorf("%w: got %s", ErrInvalidDimensions, d)
	}
	return nil
}

// Len returns the number of cells, Width·Depth·Height.
func (d Dimensions) Len() int {
	return d.Width * d.Depth * d.Height
}

// Max returns the largest of the three components.
func (d Dimensions) Max() int {
	return max(d.Width, d.Depth, d.Height)
}

// Diameter is the largest hop distance between two cells.
func (d Dimensions) Diameter() int {
	return d.Width + d.Depth + d.Height - 3
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Depth, d.Height)
}

// Point is a cell coordinate; z grows upwards.
type Point struct {
	X, Y, Z int
}

// NewPoint is a shorthand constructor for Point.
func NewPoint(x, y, z int) Point {
	return Point{X: x, Y: y, Z: z}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

// CellID is the dense linear identity of a cell: x + y·Width + z·Width·Depth.
type CellID int

// Direction names the side of a receiving cell from which a neighbor's
// influence arrives. The neighbor at x−1 sees its source on the Right,
// the neighbor at z−1 sees it Up, and so on.
type Direction uint8

const (
	// Left is the −x side.
	Left Direction = iota
	// Right is the +x side.
	Right
	// Front is the +y side.
	Front
	// Back is the −y side.
	Back
	// Up is the +z side.
	Up
	// Down is the −z side.
	Down
)

// Directions lists all six directions in declaration order.
var Directions = [...]Direction{Left, Right, Front, Back, Up, Down}

// Horizontal lists the four directions within a z layer.
var Horizontal = [...]Direction{Left, Right, Front, Back}

var directionNames = [...]string{"Left", "Right", "Front", "Back", "Up", "Down"}

// Opposite returns the direction on the other side of the same axis.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Front:
		return Back
	case Back:
		return Front
	case Up:
		return Down
	default:
		return Up
	}
}

// IsHorizontal reports whether d lies in the xy plane.
func (d Direction) IsHorizontal() bool {
	return d <= Back
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Edge links a cell to one axis neighbor. Direction is the side of the
// neighbor from which the owning cell is seen.
type Edge struct {
	Neighbor  CellID
	Direction Direction
}
