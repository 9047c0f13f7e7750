package mesher

import (
	"github.com/golang/geo/r3"

	"go.viam.com/octmesh/octree"
	"go.viam.com/octmesh/spatialmath"
)

// planeAxes holds the (u, w) axes spanning the faces normal to each axis.
var planeAxes = [3][2]int{
	{1, 2},
	{0, 2},
	{0, 1},
}

// faceLayout is the order in which face vertices are emitted, as (u, w) fractions of the face. Midpoints
// are only emitted when their shape code bit is set; corners have no bit.
var faceLayout = [8]struct {
	u, w float64
	bit  uint8
}{
	{0, 0, 0},
	{0.5, 0, 0b0001},
	{1, 0, 0},
	{0, 0.5, 0b0100},
	{1, 0.5, 0b0010},
	{0, 1, 0},
	{0.5, 1, 0b1000},
	{1, 1, 0},
}

// FlipMask holds the directions whose outward facing winding is the mirrored triangle table.
const FlipMask = octree.EdgeMask(1<<octree.XPos | 1<<octree.YNeg | 1<<octree.ZPos)

// EmitFace adds the transition patch of one face of the box at lower with size dims to sink. The patch
// has the four corners plus one midpoint per set bit of code. flipped selects the mirrored winding and
// flipNormal points the normals against dir.
func EmitFace(sink Sink, lower, dims r3.Vector, dir octree.Direction, code uint8, flipped, flipNormal bool) {
	code &= 0xF
	axis := dir.Axis()
	uAxis, wAxis := planeAxes[axis][0], planeAxes[axis][1]
	plane := spatialmath.Component(lower, axis)
	if dir.Positive() {
		plane += spatialmath.Component(dims, axis)
	}
	normal := dir.Vector()
	if flipNormal {
		normal = normal.Mul(-1)
	}

	offset := -1
	for _, fv := range faceLayout {
		if fv.bit != 0 && code&fv.bit == 0 {
			continue
		}
		p := spatialmath.WithComponent(r3.Vector{}, axis, plane)
		p = spatialmath.WithComponent(p, uAxis, spatialmath.Component(lower, uAxis)+spatialmath.Component(dims, uAxis)*fv.u)
		p = spatialmath.WithComponent(p, wAxis, spatialmath.Component(lower, wAxis)+spatialmath.Component(dims, wAxis)*fv.w)
		i := sink.AddVertex(NewVertex(p, normal))
		if offset < 0 {
			offset = i
		}
	}

	table := faceTriangles[code]
	if flipped {
		table = flippedFaceTriangles[code]
	}
	indices := make([]int, len(table))
	for i, v := range table {
		indices[i] = offset + v
	}
	sink.AddFaces(indices)
}
