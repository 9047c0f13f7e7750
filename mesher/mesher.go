// Package mesher turns the boundary faces of a marked octree into a crack free triangle mesh. Each
// boundary face becomes a transition patch whose edges carry an extra midpoint wherever the surface on
// the other side of the edge is finer, so adjacent patches of different sizes share every vertex.
package mesher

import (
	"math/bits"

	"go.viam.com/octmesh/octree"
)

// Stats counts the geometry produced by Generate.
type Stats struct {
	Leaves    int
	Faces     int
	Vertices  int
	Triangles int
}

// GenerateOption configures Generate.
type GenerateOption func(*generateOptions)

type generateOptions struct {
	markedOnly bool
}

// MarkedOnly restricts Generate to the boundary faces of marked leaves, leaving out the faces of
// unmarked leaves on the outside of the tree.
func MarkedOnly() GenerateOption {
	return func(o *generateOptions) {
		o.markedOnly = true
	}
}

// Generate emits a patch for every boundary face of every leaf of tree. Faces bordering the outside of
// the tree wind outward; faces bordering a neighbor wind and point toward the inside of the leaf. The
// tree must not be modified while Generate runs.
func Generate(tree *octree.Tree, sink Sink, opts ...GenerateOption) Stats {
	var options generateOptions
	for _, opt := range opts {
		opt(&options)
	}

	var stats Stats
	for _, id := range tree.Leaves() {
		edges := tree.Edges(id)
		if edges == 0 || (options.markedOnly && !tree.IsMarked(id)) {
			continue
		}
		stats.Leaves++
		lower, dims := tree.Lower(id), tree.Dimensions(id)
		for _, d := range octree.Directions {
			if !edges.Has(d) {
				continue
			}
			code := ShapeCode(tree, id, d)
			hasNeighbor := tree.Neighbor(id, d) != octree.NoNode
			flipped := hasNeighbor != FlipMask.Has(d)
			EmitFace(sink, lower, dims, d, code, flipped, hasNeighbor)

			stats.Faces++
			stats.Vertices += 4 + bits.OnesCount8(code)
			stats.Triangles += len(faceTriangles[code]) / 3
		}
	}
	return stats
}
