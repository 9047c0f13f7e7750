// Package octree implements an adaptive, 2:1 balanced octree whose leaves can be marked by shapes
// and whose faces carry boundary bits for meshing.
package octree

import (
	"sync"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/octmesh/spatialmath"
)

// Each node in the octree is either an internal node which links to its eight children, or a leaf
// that is either unmarked or marked.
const (
	InternalNode = NodeType(iota)
	LeafNodeUnmarked
	LeafNodeMarked
)

// NodeType represents the possible types of nodes in an octree.
type NodeType uint8

// NodeID addresses a node inside the arena of a Tree.
type NodeID int32

// NoNode is the id of a missing node: the parent of the root, or an absent neighbor.
const NoNode = NodeID(-1)

var (
	// ErrOutOfBounds is returned for positions outside of the queried node.
	ErrOutOfBounds = errors.New("position is outside of the octree")
	// ErrAlreadyExpanded is returned when expanding a node that already has children.
	ErrAlreadyExpanded = errors.New("node is already expanded")
)

// An EdgeListener is told about every change of a node's edge mask. It runs while the tree is locked
// for writing and must not call back into the tree.
type EdgeListener func(id NodeID, edges EdgeMask)

// Option configures a Tree.
type Option func(*Tree)

// WithEdgeListener installs a listener for edge mask changes.
func WithEdgeListener(l EdgeListener) Option {
	return func(t *Tree) {
		t.edgeListener = l
	}
}

type node struct {
	lower      r3.Vector
	dimensions r3.Vector
	depth      int
	parent     NodeID
	// children are allocated contiguously; child i is firstChild+i
	firstChild NodeID
	neighbors  [6]NodeID

	marks             atomic.Int32
	markedDescendants atomic.Int32
	edges             atomic.Uint32
}

func (n *node) isLeaf() bool {
	return n.firstChild == NoNode
}

func (n *node) child(i int) NodeID {
	return n.firstChild + NodeID(i)
}

// Tree is an arena of octree nodes addressed by NodeID. The root always has id 0.
//
// Structural changes, marking and edge updates are serialized by a single writer lock; structural
// queries take the read lock. Mark state and edge masks are stored atomically.
type Tree struct {
	mu           sync.RWMutex
	logger       golog.Logger
	nodes        []*node
	generation   atomic.Uint64
	edgeListener EdgeListener
}

// New creates a tree whose root spans the box between the two given corners. The corners are
// normalized per component, and every extent must be non zero.
func New(corner1, corner2 r3.Vector, logger golog.Logger, opts ...Option) (*Tree, error) {
	lower := r3.Vector{X: min(corner1.X, corner2.X), Y: min(corner1.Y, corner2.Y), Z: min(corner1.Z, corner2.Z)}
	upper := r3.Vector{X: max(corner1.X, corner2.X), Y: max(corner1.Y, corner2.Y), Z: max(corner1.Z, corner2.Z)}
	dims := upper.Sub(lower)
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, errors.Errorf("invalid octree dimensions (%.3f, %.3f, %.3f)", dims.X, dims.Y, dims.Z)
	}

	t := &Tree{logger: logger}
	for _, opt := range opts {
		opt(t)
	}
	t.newNode(lower, dims, 0, NoNode, AllEdges)
	logger.Debugw("created octree", "lower", lower, "dimensions", dims)
	return t, nil
}

func (t *Tree) newNode(lower, dims r3.Vector, depth int, parent NodeID, edges EdgeMask) NodeID {
	n := &node{
		lower:      lower,
		dimensions: dims,
		depth:      depth,
		parent:     parent,
		firstChild: NoNode,
		neighbors:  [6]NodeID{NoNode, NoNode, NoNode, NoNode, NoNode, NoNode},
	}
	n.edges.Store(uint32(edges))
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Generation is incremented whenever the tree's structure or any edge mask changes.
func (t *Tree) Generation() uint64 {
	return t.generation.Load()
}

func (t *Tree) get(id NodeID) *node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nodes[id]
}

// Lower returns the lower corner of a node.
func (t *Tree) Lower(id NodeID) r3.Vector {
	return t.get(id).lower
}

// Dimensions returns the extent of a node along each axis.
func (t *Tree) Dimensions(id NodeID) r3.Vector {
	return t.get(id).dimensions
}

// Upper returns the upper corner of a node.
func (t *Tree) Upper(id NodeID) r3.Vector {
	n := t.get(id)
	return n.lower.Add(n.dimensions)
}

// Center returns the midpoint of a node.
func (t *Tree) Center(id NodeID) r3.Vector {
	n := t.get(id)
	return n.lower.Add(n.dimensions.Mul(0.5))
}

// Bounds returns the box covered by a node in the tree's own coordinates.
func (t *Tree) Bounds(id NodeID) spatialmath.AABB {
	n := t.get(id)
	return spatialmath.AABB{Min: n.lower, Max: n.lower.Add(n.dimensions)}
}

// Depth returns the depth of a node; the root has depth 0.
func (t *Tree) Depth(id NodeID) int {
	return t.get(id).depth
}

// Parent returns the parent of a node, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID {
	return t.get(id).parent
}

// IsLeaf reports whether a node has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.get(id).isLeaf()
}

// NodeType classifies a node.
func (t *Tree) NodeType(id NodeID) NodeType {
	n := t.get(id)
	switch {
	case !n.isLeaf():
		return InternalNode
	case n.marks.Load() != 0:
		return LeafNodeMarked
	default:
		return LeafNodeUnmarked
	}
}

// Neighbor returns the neighbor of a node in direction d. Neighbors are never deeper than the node
// itself; NoNode means the node touches the outside of the tree on that side.
func (t *Tree) Neighbor(id NodeID, d Direction) NodeID {
	return t.get(id).neighbors[d]
}

// Walk visits nodes depth first, parents before children. Returning false from fn skips the
// children of the visited node. The tree is read locked during the walk, so fn must not modify it.
func (t *Tree) Walk(fn func(id NodeID) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.walk(t.Root(), fn)
}

func (t *Tree) walk(id NodeID, fn func(id NodeID) bool) {
	if !fn(id) {
		return
	}
	n := t.nodes[id]
	if n.isLeaf() {
		return
	}
	for i := 0; i < 8; i++ {
		t.walk(n.child(i), fn)
	}
}

// Leaves returns the ids of all leaves in depth first order.
func (t *Tree) Leaves() []NodeID {
	var leaves []NodeID
	t.Walk(func(id NodeID) bool {
		if t.nodes[id].isLeaf() {
			leaves = append(leaves, id)
		}
		return true
	})
	return leaves
}
