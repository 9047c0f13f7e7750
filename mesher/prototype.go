package mesher

import (
	"go.viam.com/octmesh/spatialmath"
)

// A Sink receives generated geometry. AddVertex returns the index of the new vertex; faces refer to
// vertices by index, three per triangle.
type Sink interface {
	AddVertex(v Vertex) int
	AddFace(a, b, c int)
	AddFaces(indices []int)
}

// Prototype is an in memory triangle mesh.
type Prototype struct {
	Vertices []Vertex
	Faces    []int
}

// AddVertex appends a vertex and returns its index.
func (p *Prototype) AddVertex(v Vertex) int {
	p.Vertices = append(p.Vertices, v)
	return len(p.Vertices) - 1
}

// AddFace appends one triangle.
func (p *Prototype) AddFace(a, b, c int) {
	p.Faces = append(p.Faces, a, b, c)
}

// AddFaces appends triangles given as a flat list of indices.
func (p *Prototype) AddFaces(indices []int) {
	p.Faces = append(p.Faces, indices...)
}

// VertexOffset is the index the next vertex will get.
func (p *Prototype) VertexOffset() int {
	return len(p.Vertices)
}

// TriangleCount is the number of triangles in the mesh.
func (p *Prototype) TriangleCount() int {
	return len(p.Faces) / 3
}

// Transform returns a copy of the mesh moved into the world by frame. Normals are carried by the inverse
// transpose of the linear part and renormalized; texture coordinates are kept.
func (p *Prototype) Transform(frame spatialmath.Frame) *Prototype {
	inv := frame.Inverse()
	out := &Prototype{
		Vertices: make([]Vertex, len(p.Vertices)),
		Faces:    make([]int, len(p.Faces)),
	}
	for i, v := range p.Vertices {
		out.Vertices[i] = Vertex{
			Position: frame.TransformPoint(v.Position),
			Normal:   inv.LocalDirection(v.Normal).Normalize(),
			U:        v.U,
			V:        v.V,
		}
	}
	copy(out.Faces, p.Faces)
	return out
}
