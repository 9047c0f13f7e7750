package mesher

import (
	"math/bits"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/octmesh/octree"
	"go.viam.com/octmesh/spatialmath"
)

var unitScale = r3.Vector{X: 1, Y: 1, Z: 1}

func newUnitTree(t *testing.T) *octree.Tree {
	t.Helper()
	tree, err := octree.New(r3.Vector{}, unitScale, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	return tree
}

// newGridTree returns a unit tree fully expanded to depth 2, a 4x4x4 grid of leaves.
func newGridTree(t *testing.T) *octree.Tree {
	t.Helper()
	tree := newUnitTree(t)
	test.That(t, tree.Expand(tree.Root()), test.ShouldBeNil)
	for _, child := range tree.Children(tree.Root()) {
		test.That(t, tree.Expand(child), test.ShouldBeNil)
	}
	return tree
}

// gridLeaf returns the depth 2 leaf at grid coordinates (x, y, z).
func gridLeaf(t *testing.T, tree *octree.Tree, x, y, z int) octree.NodeID {
	t.Helper()
	id, err := tree.LeafAt(r3.Vector{X: (float64(x) + 0.5) / 4, Y: (float64(y) + 0.5) / 4, Z: (float64(z) + 0.5) / 4})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tree.Depth(id), test.ShouldEqual, 2)
	return id
}

// boundaryLeaf returns the grid leaf touching the outside of the tree on side face, one cell in from
// the boundary on the other two axes.
func boundaryLeaf(t *testing.T, tree *octree.Tree, face octree.Direction) octree.NodeID {
	t.Helper()
	coords := [3]int{1, 1, 1}
	if face.Positive() {
		coords[face.Axis()] = 3
	} else {
		coords[face.Axis()] = 0
	}
	return gridLeaf(t, tree, coords[0], coords[1], coords[2])
}

func triangleNormal(p *Prototype, i int) r3.Vector {
	a := p.Vertices[p.Faces[i]].Position
	b := p.Vertices[p.Faces[i+1]].Position
	c := p.Vertices[p.Faces[i+2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

func TestNewVertex(t *testing.T) {
	p := r3.Vector{X: 1, Y: 2, Z: 3}
	for _, tc := range []struct {
		normal r3.Vector
		u, v   float64
	}{
		{r3.Vector{X: 1}, 2, 3},
		{r3.Vector{X: -1}, 2, 3},
		{r3.Vector{Y: 1}, 1, 3},
		{r3.Vector{Z: -1}, 1, 2},
		{r3.Vector{X: 0.2, Y: -0.9, Z: 0.1}, 1, 3},
	} {
		v := NewVertex(p, tc.normal)
		test.That(t, v.Position, test.ShouldResemble, p)
		test.That(t, v.Normal, test.ShouldResemble, tc.normal)
		test.That(t, v.U, test.ShouldEqual, tc.u)
		test.That(t, v.V, test.ShouldEqual, tc.v)
	}
}

func TestEmitFace(t *testing.T) {
	t.Run("plain quad", func(t *testing.T) {
		p := &Prototype{}
		p.AddVertex(Vertex{})
		EmitFace(p, r3.Vector{}, unitScale, octree.XPos, 0, false, false)

		test.That(t, p.VertexOffset(), test.ShouldEqual, 5)
		positions := make([]r3.Vector, 0, 4)
		for _, v := range p.Vertices[1:] {
			positions = append(positions, v.Position)
			test.That(t, v.Normal, test.ShouldResemble, r3.Vector{X: 1})
		}
		test.That(t, positions, test.ShouldResemble, []r3.Vector{
			{X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0},
			{X: 1, Y: 0, Z: 1},
			{X: 1, Y: 1, Z: 1},
		})
		test.That(t, p.Faces, test.ShouldResemble, []int{1, 4, 2, 1, 3, 4})
		test.That(t, p.TriangleCount(), test.ShouldEqual, 2)
	})

	t.Run("full transition", func(t *testing.T) {
		p := &Prototype{}
		lower := r3.Vector{X: 2, Y: 4, Z: 6}
		dims := r3.Vector{X: 2, Y: 2, Z: 2}
		EmitFace(p, lower, dims, octree.XNeg, 0b1111, false, true)

		test.That(t, len(p.Vertices), test.ShouldEqual, 8)
		test.That(t, p.TriangleCount(), test.ShouldEqual, 8)
		test.That(t, p.Vertices[1].Position, test.ShouldResemble, r3.Vector{X: 2, Y: 5, Z: 6})
		test.That(t, p.Vertices[3].Position, test.ShouldResemble, r3.Vector{X: 2, Y: 4, Z: 7})
		test.That(t, p.Vertices[4].Position, test.ShouldResemble, r3.Vector{X: 2, Y: 6, Z: 7})
		test.That(t, p.Vertices[6].Position, test.ShouldResemble, r3.Vector{X: 2, Y: 5, Z: 8})
		for _, v := range p.Vertices {
			test.That(t, v.Normal, test.ShouldResemble, r3.Vector{X: 1})
		}
	})

	t.Run("every code tiles the face", func(t *testing.T) {
		lower := r3.Vector{X: -1, Y: 0.5, Z: 2}
		dims := r3.Vector{X: 0.5, Y: 1, Z: 2}
		for _, d := range octree.Directions {
			axes := planeAxes[d.Axis()]
			faceArea := spatialmath.Component(dims, axes[0]) * spatialmath.Component(dims, axes[1])
			for code := uint8(0); code < 16; code++ {
				for _, flipped := range []bool{false, true} {
					p := &Prototype{}
					EmitFace(p, lower, dims, d, code, flipped, false)
					test.That(t, len(p.Vertices), test.ShouldEqual, 4+bits.OnesCount8(code))

					used := map[int]bool{}
					area := 0.
					for i := 0; i < len(p.Faces); i += 3 {
						n := triangleNormal(p, i)
						test.That(t, n.Norm(), test.ShouldBeGreaterThan, 1e-9)
						area += n.Norm() / 2
						// winding follows the direction exactly when flipped matches the mirrored set
						agrees := n.Dot(d.Vector()) > 0
						test.That(t, agrees, test.ShouldEqual, flipped == FlipMask.Has(d))
						used[p.Faces[i]], used[p.Faces[i+1]], used[p.Faces[i+2]] = true, true, true
					}
					test.That(t, area, test.ShouldAlmostEqual, faceArea)
					test.That(t, len(used), test.ShouldEqual, len(p.Vertices))
				}
			}
		}
	})
}

func TestShapeCode(t *testing.T) {
	t.Run("lone marked root", func(t *testing.T) {
		tree := newUnitTree(t)
		tree.Mark(tree.Root())
		for _, d := range octree.Directions {
			test.That(t, ShapeCode(tree, tree.Root(), d), test.ShouldEqual, uint8(0))
		}
	})

	t.Run("all side neighbors finer", func(t *testing.T) {
		for _, face := range octree.Directions {
			t.Run(face.String(), func(t *testing.T) {
				tree := newGridTree(t)
				leaf := boundaryLeaf(t, tree, face)
				for _, n := range edgeBits[face] {
					test.That(t, tree.Expand(tree.Neighbor(leaf, n)), test.ShouldBeNil)
				}
				tree.Mark(leaf)
				test.That(t, tree.IsLeaf(leaf), test.ShouldBeTrue)
				test.That(t, tree.Edges(leaf).Has(face), test.ShouldBeTrue)
				test.That(t, ShapeCode(tree, leaf, face), test.ShouldEqual, uint8(15))
			})
		}
	})

	t.Run("one side neighbor finer", func(t *testing.T) {
		for _, face := range octree.Directions {
			for bit, n := range edgeBits[face] {
				tree := newGridTree(t)
				leaf := boundaryLeaf(t, tree, face)
				test.That(t, tree.Expand(tree.Neighbor(leaf, n)), test.ShouldBeNil)
				tree.Mark(leaf)
				test.That(t, ShapeCode(tree, leaf, face), test.ShouldEqual, uint8(1)<<bit)
			}
		}
	})

	t.Run("coplanar marked neighbor", func(t *testing.T) {
		tree := newGridTree(t)
		leaf := boundaryLeaf(t, tree, octree.ZPos)
		side := tree.Neighbor(leaf, octree.XPos)
		tree.Mark(side)
		tree.Mark(leaf)
		test.That(t, tree.Edges(leaf).Has(octree.XPos), test.ShouldBeFalse)
		test.That(t, tree.Edges(side).Has(octree.ZPos), test.ShouldBeTrue)
		test.That(t, isSubdivided(tree, leaf, octree.XPos, octree.ZPos), test.ShouldEqual, uint8(0))
		test.That(t, ShapeCode(tree, leaf, octree.ZPos), test.ShouldEqual, uint8(0))
	})
}

func TestGenerate(t *testing.T) {
	t.Run("marked root is a closed cube", func(t *testing.T) {
		tree := newUnitTree(t)
		tree.Mark(tree.Root())
		p := &Prototype{}
		stats := Generate(tree, p)
		test.That(t, stats, test.ShouldResemble, Stats{Leaves: 1, Faces: 6, Vertices: 24, Triangles: 12})
		test.That(t, len(p.Vertices), test.ShouldEqual, 24)
		test.That(t, p.TriangleCount(), test.ShouldEqual, 12)

		center := r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}
		for _, v := range p.Vertices {
			test.That(t, v.Normal.Dot(v.Position.Sub(center)), test.ShouldBeGreaterThan, 0)
		}
	})

	t.Run("leaves without edges emit nothing", func(t *testing.T) {
		tree := newGridTree(t)
		interior := gridLeaf(t, tree, 1, 1, 1)
		test.That(t, tree.Edges(interior), test.ShouldEqual, octree.EdgeMask(0))

		p := &Prototype{}
		stats := Generate(tree, p)
		// 56 of the 64 grid cells touch the outside; each outer face of the grid has 16 cells
		test.That(t, stats.Leaves, test.ShouldEqual, 56)
		test.That(t, stats.Faces, test.ShouldEqual, 96)
		test.That(t, stats.Triangles, test.ShouldEqual, 192)
	})

	t.Run("marked only", func(t *testing.T) {
		tree := newGridTree(t)
		leaf := gridLeaf(t, tree, 1, 1, 1)
		tree.Mark(leaf)

		all := Generate(tree, &Prototype{})
		test.That(t, all.Leaves, test.ShouldEqual, 57)
		test.That(t, all.Faces, test.ShouldEqual, 102)

		p := &Prototype{}
		stats := Generate(tree, p, MarkedOnly())
		test.That(t, stats.Leaves, test.ShouldEqual, 1)
		test.That(t, stats.Faces, test.ShouldEqual, 6)
		test.That(t, stats.Vertices, test.ShouldEqual, len(p.Vertices))
		lower, upper := tree.Lower(leaf), tree.Lower(leaf).Add(tree.Dimensions(leaf))
		for _, v := range p.Vertices {
			for axis := 0; axis < 3; axis++ {
				c := spatialmath.Component(v.Position, axis)
				test.That(t, c, test.ShouldBeBetweenOrEqual, spatialmath.Component(lower, axis), spatialmath.Component(upper, axis))
			}
		}
	})

	t.Run("windings agree with normals", func(t *testing.T) {
		tree := newGridTree(t)
		tree.Mark(gridLeaf(t, tree, 1, 1, 1))
		tree.Mark(gridLeaf(t, tree, 2, 1, 1))
		tree.Mark(gridLeaf(t, tree, 0, 3, 2))
		test.That(t, tree.Expand(gridLeaf(t, tree, 3, 3, 3)), test.ShouldBeNil)
		test.That(t, tree.Expand(gridLeaf(t, tree, 1, 2, 1)), test.ShouldBeNil)

		p := &Prototype{}
		stats := Generate(tree, p)
		test.That(t, stats.Vertices, test.ShouldEqual, len(p.Vertices))
		test.That(t, stats.Triangles, test.ShouldEqual, p.TriangleCount())
		for i := 0; i < len(p.Faces); i += 3 {
			n := triangleNormal(p, i)
			test.That(t, n.Dot(p.Vertices[p.Faces[i]].Normal), test.ShouldBeGreaterThan, 0)
		}
	})

	t.Run("midpoints meet finer corners", func(t *testing.T) {
		tree := newGridTree(t)
		leaf := boundaryLeaf(t, tree, octree.XPos)
		for _, n := range edgeBits[octree.XPos] {
			test.That(t, tree.Expand(tree.Neighbor(leaf, n)), test.ShouldBeNil)
		}
		tree.Mark(leaf)

		p := &Prototype{}
		Generate(tree, p)

		patch := &Prototype{}
		EmitFace(patch, tree.Lower(leaf), tree.Dimensions(leaf), octree.XPos, 15, true, false)
		midpoints := []r3.Vector{
			patch.Vertices[1].Position,
			patch.Vertices[3].Position,
			patch.Vertices[4].Position,
			patch.Vertices[6].Position,
		}
		for _, m := range midpoints {
			count := 0
			for _, v := range p.Vertices {
				if v.Position.Sub(m).Norm() < 1e-12 {
					count++
				}
			}
			// once on the coarse patch and at least twice on the finer patches beside it
			test.That(t, count, test.ShouldBeGreaterThanOrEqualTo, 3)
		}
	})
}

func TestPrototypeTransform(t *testing.T) {
	p := &Prototype{}
	EmitFace(p, r3.Vector{}, unitScale, octree.XPos, 0, true, false)

	frame, err := spatialmath.NewFrame(r3.Vector{X: 1, Y: 2, Z: 3}, spatialmath.NewAxisAngleRotation(r3.Vector{Z: 1}, 90), unitScale)
	test.That(t, err, test.ShouldBeNil)
	moved := p.Transform(frame)
	test.That(t, moved.Faces, test.ShouldResemble, p.Faces)
	test.That(t, len(moved.Vertices), test.ShouldEqual, len(p.Vertices))
	for i, v := range moved.Vertices {
		want := frame.TransformPoint(p.Vertices[i].Position)
		test.That(t, v.Position.Sub(want).Norm(), test.ShouldBeLessThan, 1e-9)
		test.That(t, v.Normal.Sub(r3.Vector{Y: 1}).Norm(), test.ShouldBeLessThan, 1e-9)
		test.That(t, v.U, test.ShouldEqual, p.Vertices[i].U)
	}
}
