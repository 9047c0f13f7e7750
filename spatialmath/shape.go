package spatialmath

import (
	"image/color"

	"github.com/golang/geo/r3"
)

// ShapeType names one of the supported convex shape variants.
type ShapeType string

// The known shape types.
const (
	BoxType      = ShapeType("box")
	SphereType   = ShapeType("sphere")
	CylinderType = ShapeType("cylinder")
	MeshType     = ShapeType("mesh")
)

// ConvexShape is a closed convex region placed in the world by a Frame.
// Implementations must be convex: GJK gives wrong answers for anything else.
type ConvexShape interface {
	Type() ShapeType
	Frame() Frame

	// Support returns the world space point of the shape that is furthest along the world space direction.
	Support(direction r3.Vector) r3.Vector

	// AABB returns the bounding box of the shape in the local coordinates of reference.
	AABB(reference Frame) AABB

	// Origin returns the world position of the shape's local origin.
	Origin() r3.Vector

	DrawDebug(drawer LineDrawer, c color.Color)
}

// aabbOfLocalPoints bounds local points after moving them from f into reference coordinates.
func aabbOfLocalPoints(f, reference Frame, points []r3.Vector) AABB {
	rel := f.RelativeTo(reference)
	transformed := make([]r3.Vector, 0, len(points))
	for _, p := range points {
		transformed = append(transformed, rel.TransformPoint(p))
	}
	return NewAABB(transformed...)
}

func halfSign(v float64) float64 {
	if v < 0 {
		return -0.5
	}
	return 0.5
}
