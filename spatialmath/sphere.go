package spatialmath

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
)

const debugRingSegments = 24

// sphere is the unit sphere around its frame's origin; a non uniformly scaled frame makes it an ellipsoid.
type sphere struct {
	frame Frame
}

// NewSphere instantiates a new sphere shape placed by frame.
func NewSphere(frame Frame) ConvexShape {
	return &sphere{frame: frame}
}

// String returns a human readable string that represents the sphere.
func (s *sphere) String() string {
	o := s.Origin()
	return fmt.Sprintf("Type: Sphere | Position: X:%.3f, Y:%.3f, Z:%.3f", o.X, o.Y, o.Z)
}

func (s *sphere) Type() ShapeType {
	return SphereType
}

func (s *sphere) Frame() Frame {
	return s.frame
}

func (s *sphere) Support(direction r3.Vector) r3.Vector {
	return s.frame.TransformPoint(s.frame.LocalDirection(direction).Normalize())
}

// AABB uses the closed form bound of an ellipsoid: each half extent is the length of a row of the linear part.
func (s *sphere) AABB(reference Frame) AABB {
	m := s.frame.RelativeTo(reference).Matrix()
	center := r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
	var half [3]float64
	for row := 0; row < 3; row++ {
		half[row] = math.Sqrt(m.At(row, 0)*m.At(row, 0) + m.At(row, 1)*m.At(row, 1) + m.At(row, 2)*m.At(row, 2))
	}
	ext := r3.Vector{X: half[0], Y: half[1], Z: half[2]}
	return AABB{Min: center.Sub(ext), Max: center.Add(ext)}
}

func (s *sphere) Origin() r3.Vector {
	return s.frame.Translation()
}

func (s *sphere) DrawDebug(drawer LineDrawer, c color.Color) {
	x, y, z := r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{Z: 1}
	drawRing(drawer, s.frame, r3.Vector{}, x, y, debugRingSegments, c)
	drawRing(drawer, s.frame, r3.Vector{}, y, z, debugRingSegments, c)
	drawRing(drawer, s.frame, r3.Vector{}, z, x, debugRingSegments, c)
}
