package octree

import "go.viam.com/octmesh/spatialmath"

// expand splits a leaf while keeping the tree 2:1 balanced and the neighbor links of the new
// children current.
func (t *Tree) expand(id NodeID) error {
	if err := t.split(id); err != nil {
		return err
	}
	if err := t.updateNeighbors(id); err != nil {
		return err
	}
	t.linkSiblings(id)
	t.linkExternal(id)
	t.onExpanded(id)
	return nil
}

// updateNeighbors expands every shallower leaf neighbor and then moves each neighbor link down to the
// node of the same depth.
func (t *Tree) updateNeighbors(id NodeID) error {
	n := t.nodes[id]
	for _, d := range Directions {
		nb := n.neighbors[d]
		if nb == NoNode || t.nodes[nb].depth >= n.depth {
			continue
		}
		if t.nodes[nb].isLeaf() {
			if err := t.expand(nb); err != nil {
				return err
			}
		}
		n.neighbors[d] = t.findNeighbor(id, d)
	}
	return nil
}

// findNeighbor resolves the neighbor link in direction d to the child of the current neighbor
// holding the center of the same sized cell next to id.
func (t *Tree) findNeighbor(id NodeID, d Direction) NodeID {
	n := t.nodes[id]
	nb := n.neighbors[d]
	if nb == NoNode || t.nodes[nb].depth == n.depth {
		return nb
	}
	sample := n.lower.Add(n.dimensions.Mul(0.5))
	axis := d.Axis()
	offset := -0.5
	if d.Positive() {
		offset = 1.5
	}
	sample = spatialmath.WithComponent(sample, axis, spatialmath.Component(n.lower, axis)+offset*spatialmath.Component(n.dimensions, axis))
	return t.childAt(nb, sample)
}

// linkSiblings connects the children of id across the 12 faces they share.
func (t *Tree) linkSiblings(id NodeID) {
	n := t.nodes[id]
	for axis := 0; axis < 3; axis++ {
		pos, neg := Direction(2*axis), Direction(2*axis+1)
		bit := 1 << axis
		for i := 0; i < 8; i++ {
			if i&bit != 0 {
				continue
			}
			lo, hi := n.child(i), n.child(i|bit)
			t.nodes[lo].neighbors[pos] = hi
			t.nodes[hi].neighbors[neg] = lo
		}
	}
}

// linkExternal connects the four children on each face of id to whatever lies across that face:
// the neighbor itself if it is a leaf, or the touching child of the neighbor, in both directions.
func (t *Tree) linkExternal(id NodeID) {
	n := t.nodes[id]
	for _, d := range Directions {
		nb := n.neighbors[d]
		if nb == NoNode {
			continue
		}
		other := t.nodes[nb]
		bit := d.octantBit()
		for i := 0; i < 8; i++ {
			if (i&bit != 0) != d.Positive() {
				continue
			}
			own := n.child(i)
			if other.isLeaf() {
				t.nodes[own].neighbors[d] = nb
				continue
			}
			across := other.child(i ^ bit)
			t.nodes[own].neighbors[d] = across
			t.nodes[across].neighbors[d.Opposite()] = own
		}
	}
}
