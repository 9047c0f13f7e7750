package octree

// onExpanded gives each new child an edge bit for every side that faces the outside of the tree and
// clears the edges of id, which is no longer a leaf. The children of a marked leaf inherit its mark.
func (t *Tree) onExpanded(id NodeID) {
	n := t.nodes[id]
	for i := 0; i < 8; i++ {
		child := n.child(i)
		c := t.nodes[child]
		var exterior EdgeMask
		for _, d := range Directions {
			if c.neighbors[d] == NoNode {
				exterior |= d.Mask()
			}
		}
		if exterior != 0 {
			t.setEdges(child, EdgeMask(c.edges.Load())|exterior)
		}
	}
	t.setEdges(id, 0)

	if n.marks.Load() != 0 {
		for i := 0; i < 8; i++ {
			t.mark(n.child(i))
		}
	}
}

// Mark marks a node. Marking is idempotent. Once all eight children of a node are marked the node
// itself becomes marked. Marking a leaf recomputes its edges: a side stays an edge only if it faces
// the outside of the tree or an unmarked leaf; every other side is cleared here and on the neighbor.
func (t *Tree) Mark(id NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mark(id)
}

func (t *Tree) mark(id NodeID) {
	n := t.nodes[id]
	if n.marks.Load() != 0 {
		return
	}
	n.marks.Store(1)
	t.generation.Inc()
	if n.parent != NoNode {
		t.onDescendantMarked(n.parent)
	}
	if !n.isLeaf() {
		return
	}

	var edges EdgeMask
	for _, d := range Directions {
		nb := n.neighbors[d]
		if nb == NoNode {
			edges |= d.Mask()
			continue
		}
		other := t.nodes[nb]
		if other.marks.Load() == 0 && other.isLeaf() {
			edges |= d.Mask()
			continue
		}
		t.unmarkEdge(nb, d.Opposite())
	}
	t.setEdges(id, edges)
}

func (t *Tree) onDescendantMarked(id NodeID) {
	n := t.nodes[id]
	if n.markedDescendants.Inc() == 8 {
		t.mark(id)
	}
}

// IsMarked reports whether a node has been marked, directly or by all of its children.
func (t *Tree) IsMarked(id NodeID) bool {
	return t.get(id).marks.Load() != 0
}

// MarkedDescendants returns how many direct children of a node are marked.
func (t *Tree) MarkedDescendants(id NodeID) int {
	return int(t.get(id).markedDescendants.Load())
}

// Edges returns the boundary sides of a node. Internal nodes have none.
func (t *Tree) Edges(id NodeID) EdgeMask {
	return EdgeMask(t.get(id).edges.Load())
}

// MarkEdge sets the edge bit of side d. It does nothing on an unmarked node.
func (t *Tree) MarkEdge(id NodeID, d Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.markEdge(id, d)
}

// UnmarkEdge clears the edge bit of side d. It does nothing on an unmarked node.
func (t *Tree) UnmarkEdge(id NodeID, d Direction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unmarkEdge(id, d)
}

func (t *Tree) markEdge(id NodeID, d Direction) {
	n := t.nodes[id]
	if n.marks.Load() == 0 {
		return
	}
	t.setEdges(id, EdgeMask(n.edges.Load())|d.Mask())
}

func (t *Tree) unmarkEdge(id NodeID, d Direction) {
	n := t.nodes[id]
	if n.marks.Load() == 0 {
		return
	}
	t.setEdges(id, EdgeMask(n.edges.Load())&^d.Mask())
}

func (t *Tree) setEdges(id NodeID, edges EdgeMask) {
	if EdgeMask(t.nodes[id].edges.Swap(uint32(edges))) == edges {
		return
	}
	t.generation.Inc()
	if t.edgeListener != nil {
		t.edgeListener(id, edges)
	}
}
