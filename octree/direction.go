package octree

import (
	"strings"

	"github.com/golang/geo/r3"
)

// Direction names one of the six faces of a node.
type Direction uint8

// The six face directions. Opposite directions differ only in the lowest bit.
const (
	XPos = Direction(iota)
	XNeg
	YPos
	YNeg
	ZPos
	ZNeg
)

// Directions lists all six directions in order.
var Directions = [6]Direction{XPos, XNeg, YPos, YNeg, ZPos, ZNeg}

var directionNames = [6]string{"x+", "x-", "y+", "y-", "z+", "z-"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// Opposite returns the direction pointing the other way along the same axis.
func (d Direction) Opposite() Direction {
	return d ^ 1
}

// Positive reports whether the direction points toward increasing coordinates.
func (d Direction) Positive() bool {
	return d&1 == 0
}

// Axis returns 0, 1 or 2 for the X, Y or Z axis.
func (d Direction) Axis() int {
	return int(d >> 1)
}

// Mask returns the edge mask holding only d.
func (d Direction) Mask() EdgeMask {
	return EdgeMask(1) << d
}

// Vector returns the outward unit normal of the face.
func (d Direction) Vector() r3.Vector {
	s := 1.
	if !d.Positive() {
		s = -1
	}
	switch d.Axis() {
	case 0:
		return r3.Vector{X: s}
	case 1:
		return r3.Vector{Y: s}
	default:
		return r3.Vector{Z: s}
	}
}

// octantBit is the bit of a child index selecting the upper half along the direction's axis.
func (d Direction) octantBit() int {
	return 1 << d.Axis()
}

// EdgeMask holds one bit per Direction.
type EdgeMask uint8

// AllEdges has every direction set.
const AllEdges = EdgeMask(0b111111)

// Has reports whether d is set.
func (m EdgeMask) Has(d Direction) bool {
	return m&d.Mask() != 0
}

func (m EdgeMask) String() string {
	var parts []string
	for _, d := range Directions {
		if m.Has(d) {
			parts = append(parts, d.String())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}
