package spatialmath

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis aligned bounding box described by its minimal and maximal corners.
// Both corners are inclusive.
type AABB struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// NewAABB returns the smallest box that holds all of the given points.
func NewAABB(points ...r3.Vector) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.Extend(p)
	}
	return box
}

// String returns a human readable string that represents the box.
func (b AABB) String() string {
	return fmt.Sprintf("AABB | Min: X:%.3f, Y:%.3f, Z:%.3f | Max: X:%.3f, Y:%.3f, Z:%.3f",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

// Extend grows the box so that it holds p.
func (b AABB) Extend(p r3.Vector) AABB {
	return AABB{
		Min: r3.Vector{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vector{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Size returns the extent of the box along each axis.
func (b AABB) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b AABB) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Overlaps reports whether the two boxes share at least one point. Touching faces count as overlapping.
func (b AABB) Overlaps(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether other lies entirely inside b.
func (b AABB) Contains(other AABB) bool {
	return b.Min.X <= other.Min.X && b.Max.X >= other.Max.X &&
		b.Min.Y <= other.Min.Y && b.Max.Y >= other.Max.Y &&
		b.Min.Z <= other.Min.Z && b.Max.Z >= other.Max.Z
}

// ContainsPoint reports whether p lies inside the closed box.
func (b AABB) ContainsPoint(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Corners returns the 8 corners of the box, ordered with bit 0 selecting X, bit 1 Y and bit 2 Z.
func (b AABB) Corners() [8]r3.Vector {
	var corners [8]r3.Vector
	for i := range corners {
		corners[i] = r3.Vector{
			X: pick(i&1 != 0, b.Max.X, b.Min.X),
			Y: pick(i&2 != 0, b.Max.Y, b.Min.Y),
			Z: pick(i&4 != 0, b.Max.Z, b.Min.Z),
		}
	}
	return corners
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// boxEdgeIndices lists the 12 edges of a box as pairs of corner indices that differ in exactly one bit.
var boxEdgeIndices = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// DrawBox draws the 12 edges of a box given by its corners, ordered as returned by AABB.Corners.
func DrawBox(drawer LineDrawer, corners [8]r3.Vector, c color.Color) {
	for _, e := range boxEdgeIndices {
		drawer.DrawLine(corners[e[0]], corners[e[1]], c)
	}
}
