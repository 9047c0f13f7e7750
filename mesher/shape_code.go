package mesher

import (
	"go.viam.com/octmesh/octree"
)

// edgeBits lists, for each face direction, the neighbor direction whose shared edge controls bits 0
// through 3 of the face's shape code. Bit 0 is the low w edge, bit 1 the high u edge, bit 2 the low u
// edge and bit 3 the high w edge of the face's (u, w) plane.
var edgeBits = [6][4]octree.Direction{
	octree.XPos: {octree.ZNeg, octree.YPos, octree.YNeg, octree.ZPos},
	octree.XNeg: {octree.ZNeg, octree.YPos, octree.YNeg, octree.ZPos},
	octree.YPos: {octree.ZNeg, octree.XPos, octree.XNeg, octree.ZPos},
	octree.YNeg: {octree.ZNeg, octree.XPos, octree.XNeg, octree.ZPos},
	octree.ZPos: {octree.YNeg, octree.XPos, octree.XNeg, octree.YPos},
	octree.ZNeg: {octree.YNeg, octree.XPos, octree.XNeg, octree.YPos},
}

// ShapeCode returns the 4 bit transition code of the face of a leaf in direction face. A set bit means
// the matching edge of the face needs a midpoint vertex to meet a finer neighbor without a crack.
func ShapeCode(tree *octree.Tree, id octree.NodeID, face octree.Direction) uint8 {
	var code uint8
	for bit, n := range edgeBits[face] {
		code |= isSubdivided(tree, id, n, face) << bit
	}
	return code
}

// isSubdivided reports 1 when the edge the face shares with the neighbor side n is split by a finer
// surface on the other side, and 0 when a coarser or equal surface continues across it.
func isSubdivided(tree *octree.Tree, id octree.NodeID, n, face octree.Direction) uint8 {
	depth := tree.Depth(id)
	// the face turns the corner on this very cell
	if tree.Edges(id).Has(n) {
		return 0
	}
	coarse := func(other octree.NodeID, d octree.Direction) bool {
		return other != octree.NoNode && tree.Depth(other) <= depth && tree.Edges(other).Has(d)
	}

	nd := tree.Neighbor(id, n)
	// coplanar face on the neighbor
	if coarse(nd, face) {
		return 0
	}
	nfd := tree.Neighbor(id, face)
	if nd == octree.NoNode && coarse(nfd, n) {
		return 0
	}
	if nfd == octree.NoNode && coarse(nd, n.Opposite()) {
		return 0
	}
	if nd == octree.NoNode {
		return 1
	}
	// diagonal neighbor across the edge
	if coarse(tree.Neighbor(nd, face), n.Opposite()) {
		return 0
	}
	return 1
}
