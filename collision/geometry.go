package collision

import (
	"image/color"

	"github.com/golang/geo/r3"

	"go.viam.com/octmesh/octree"
	"go.viam.com/octmesh/spatialmath"
	"go.viam.com/octmesh/utils"
)

// NodeBox is the box of an octree node placed in the world by the octree's frame. It is convex, so it can
// take part in GJK as one side of the Minkowski difference.
type NodeBox struct {
	Lower      r3.Vector
	Dimensions r3.Vector
	Frame      spatialmath.Frame
}

// NewNodeBox returns the box of a node of tree.
func NewNodeBox(tree *octree.Tree, id octree.NodeID, frame spatialmath.Frame) NodeBox {
	return NodeBox{Lower: tree.Lower(id), Dimensions: tree.Dimensions(id), Frame: frame}
}

// Support returns the world space corner of the box furthest along the world space direction.
func (b NodeBox) Support(direction r3.Vector) r3.Vector {
	local := b.Frame.LocalDirection(direction)
	corner := r3.Vector{
		X: b.Lower.X + b.Dimensions.X*utils.Step(local.X),
		Y: b.Lower.Y + b.Dimensions.Y*utils.Step(local.Y),
		Z: b.Lower.Z + b.Dimensions.Z*utils.Step(local.Z),
	}
	return b.Frame.TransformPoint(corner)
}

// AABB returns the box in the octree's own coordinates.
func (b NodeBox) AABB() spatialmath.AABB {
	return spatialmath.AABB{Min: b.Lower, Max: b.Lower.Add(b.Dimensions)}
}

// DrawDebug draws the twelve edges of the box in world coordinates.
func (b NodeBox) DrawDebug(drawer spatialmath.LineDrawer, c color.Color) {
	corners := b.AABB().Corners()
	for i, p := range corners {
		corners[i] = b.Frame.TransformPoint(p)
	}
	spatialmath.DrawBox(drawer, corners, c)
}

// intersects runs GJK between a shape and the box.
func intersects(shape spatialmath.ConvexShape, box NodeBox) bool {
	return spatialmath.GJKIntersects(spatialmath.MinkowskiSupport(shape.Support, box.Support))
}
