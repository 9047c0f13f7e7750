package mesher

import (
	"math"

	"github.com/golang/geo/r3"
)

// Vertex is a mesh vertex with a normal and texture coordinates.
type Vertex struct {
	Position r3.Vector
	Normal   r3.Vector
	U, V     float64
}

// NewVertex returns a vertex whose texture coordinates are its position projected onto the plane facing
// the dominant axis of the normal: yz for x, xz for y and xy for z.
func NewVertex(position, normal r3.Vector) Vertex {
	v := Vertex{Position: position, Normal: normal}
	switch dominantAxis(normal) {
	case 0:
		v.U, v.V = position.Y, position.Z
	case 1:
		v.U, v.V = position.X, position.Z
	default:
		v.U, v.V = position.X, position.Y
	}
	return v
}

// dominantAxis returns the axis with the largest absolute component, preferring the earlier axis on ties.
func dominantAxis(v r3.Vector) int {
	x, y, z := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case x >= y && x >= z:
		return 0
	case y >= z:
		return 1
	default:
		return 2
	}
}
