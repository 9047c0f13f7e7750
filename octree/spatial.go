package octree

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// split allocates the eight children of a leaf. Child index bit 0 selects the upper X half,
// bit 1 the upper Y half and bit 2 the upper Z half.
func (t *Tree) split(id NodeID) error {
	n := t.nodes[id]
	if !n.isLeaf() {
		return errors.Wrapf(ErrAlreadyExpanded, "node %d", id)
	}
	half := n.dimensions.Mul(0.5)
	first := NodeID(len(t.nodes))
	for i := 0; i < 8; i++ {
		offset := r3.Vector{}
		if i&1 != 0 {
			offset.X = half.X
		}
		if i&2 != 0 {
			offset.Y = half.Y
		}
		if i&4 != 0 {
			offset.Z = half.Z
		}
		t.newNode(n.lower.Add(offset), half, n.depth+1, id, 0)
	}
	n.firstChild = first
	t.generation.Inc()
	return nil
}

func (t *Tree) childAt(id NodeID, pos r3.Vector) NodeID {
	n := t.nodes[id]
	if n.isLeaf() {
		return id
	}
	rel := pos.Sub(n.lower)
	half := n.dimensions.Mul(0.5)
	i := 0
	if rel.X > half.X {
		i |= 1
	}
	if rel.Y > half.Y {
		i |= 2
	}
	if rel.Z > half.Z {
		i |= 4
	}
	return n.child(i)
}

func (t *Tree) contains(id NodeID, pos r3.Vector) bool {
	n := t.nodes[id]
	upper := n.lower.Add(n.dimensions)
	return pos.X >= n.lower.X && pos.X <= upper.X &&
		pos.Y >= n.lower.Y && pos.Y <= upper.Y &&
		pos.Z >= n.lower.Z && pos.Z <= upper.Z
}

// Child returns the child of a node in octant i, or the node itself if it is a leaf.
func (t *Tree) Child(id NodeID, i int) NodeID {
	n := t.get(id)
	if n.isLeaf() {
		return id
	}
	return n.child(i)
}

// Children returns the eight children of a node, or nil for a leaf.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.get(id)
	if n.isLeaf() {
		return nil
	}
	children := make([]NodeID, 8)
	for i := range children {
		children[i] = n.child(i)
	}
	return children
}

// ChildAt returns the child of a node whose octant holds pos, or the node itself if it is a leaf.
// Positions on a midplane belong to the lower octant.
func (t *Tree) ChildAt(id NodeID, pos r3.Vector) NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.childAt(id, pos)
}

// Expand gives a leaf its eight children, first expanding any shallower neighbors so that
// face adjacent leaves never differ by more than one level.
func (t *Tree) Expand(id NodeID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expand(id)
}

// NodeAt returns the node holding pos at the given depth, expanding leaves on the way down.
// Positions outside of the root's closed box are rejected with ErrOutOfBounds.
func (t *Tree) NodeAt(pos r3.Vector, depth int) (NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.Root()
	if !t.contains(id, pos) {
		return NoNode, errors.Wrapf(ErrOutOfBounds, "(%.3f, %.3f, %.3f)", pos.X, pos.Y, pos.Z)
	}
	for t.nodes[id].depth < depth {
		if t.nodes[id].isLeaf() {
			if err := t.expand(id); err != nil {
				return NoNode, err
			}
		}
		id = t.childAt(id, pos)
	}
	return id, nil
}

// LeafAt returns the leaf holding pos without modifying the tree.
func (t *Tree) LeafAt(pos r3.Vector) (NodeID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id := t.Root()
	if !t.contains(id, pos) {
		return NoNode, errors.Wrapf(ErrOutOfBounds, "(%.3f, %.3f, %.3f)", pos.X, pos.Y, pos.Z)
	}
	for !t.nodes[id].isLeaf() {
		id = t.childAt(id, pos)
	}
	return id, nil
}
