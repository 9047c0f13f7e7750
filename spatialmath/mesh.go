package spatialmath

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// mesh is the convex hull of a point set given in its frame's local coordinates.
// Only the vertices matter; faces are never needed for support mapping.
type mesh struct {
	frame    Frame
	vertices []r3.Vector
}

// NewMesh instantiates a convex point set shape. The vertices are copied.
func NewMesh(frame Frame, vertices []r3.Vector) (ConvexShape, error) {
	if len(vertices) == 0 {
		return nil, errors.New("mesh shape needs at least one vertex")
	}
	v := make([]r3.Vector, len(vertices))
	copy(v, vertices)
	return &mesh{frame: frame, vertices: v}, nil
}

// String returns a human readable string that represents the mesh.
func (m *mesh) String() string {
	o := m.Origin()
	return fmt.Sprintf("Type: Mesh | Position: X:%.3f, Y:%.3f, Z:%.3f | Vertices: %d", o.X, o.Y, o.Z, len(m.vertices))
}

func (m *mesh) Type() ShapeType {
	return MeshType
}

func (m *mesh) Frame() Frame {
	return m.frame
}

// Support scans every vertex.
func (m *mesh) Support(direction r3.Vector) r3.Vector {
	local := m.frame.LocalDirection(direction)
	best := m.vertices[0]
	bestDist := math.Inf(-1)
	for _, v := range m.vertices {
		if d := v.Dot(local); d > bestDist {
			bestDist = d
			best = v
		}
	}
	return m.frame.TransformPoint(best)
}

func (m *mesh) AABB(reference Frame) AABB {
	return aabbOfLocalPoints(m.frame, reference, m.vertices)
}

func (m *mesh) Origin() r3.Vector {
	return m.frame.Translation()
}

// DrawDebug marks every vertex with a small axis aligned cross.
func (m *mesh) DrawDebug(drawer LineDrawer, c color.Color) {
	world := m.AABB(IdentityFrame())
	arm := 0.02 * world.Size().Norm()
	if arm == 0 {
		arm = 0.01
	}
	for _, v := range m.vertices {
		p := m.frame.TransformPoint(v)
		for _, axis := range []r3.Vector{{X: arm}, {Y: arm}, {Z: arm}} {
			drawer.DrawLine(p.Sub(axis), p.Add(axis), c)
		}
	}
}
