package octree

import (
	"image/color"

	"go.viam.com/octmesh/spatialmath"
)

// A DrawFilter picks the nodes to draw from their type and edges.
type DrawFilter func(kind NodeType, edges EdgeMask) bool

// Common draw filters.
var (
	DrawAll      DrawFilter = func(NodeType, EdgeMask) bool { return true }
	DrawLeaves   DrawFilter = func(kind NodeType, _ EdgeMask) bool { return kind != InternalNode }
	DrawMarked   DrawFilter = func(kind NodeType, _ EdgeMask) bool { return kind == LeafNodeMarked }
	DrawUnmarked DrawFilter = func(kind NodeType, _ EdgeMask) bool { return kind == LeafNodeUnmarked }
	DrawEdges    DrawFilter = func(kind NodeType, edges EdgeMask) bool { return kind != InternalNode && edges != 0 }
)

// DrawDebug draws the wire box of every node accepted by filter, placed in the world by frame.
func (t *Tree) DrawDebug(drawer spatialmath.LineDrawer, frame spatialmath.Frame, filter DrawFilter, c color.Color) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.walk(t.Root(), func(id NodeID) bool {
		n := t.nodes[id]
		kind := LeafNodeUnmarked
		switch {
		case !n.isLeaf():
			kind = InternalNode
		case n.marks.Load() != 0:
			kind = LeafNodeMarked
		}
		if !filter(kind, EdgeMask(n.edges.Load())) {
			return true
		}
		box := spatialmath.AABB{Min: n.lower, Max: n.lower.Add(n.dimensions)}
		corners := box.Corners()
		for i, p := range corners {
			corners[i] = frame.TransformPoint(p)
		}
		spatialmath.DrawBox(drawer, corners, c)
		return true
	})
}
