// Package collision marks the leaves of an octree that intersect convex shapes. A broad phase culls
// nodes by bounding box and a narrow phase confirms each candidate with GJK, refining the tree only
// along the surface of the shape.
package collision

import (
	"image/color"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/octmesh/octree"
	"go.viam.com/octmesh/spatialmath"
)

// DefaultHitColor is the color used to draw marked nodes.
var DefaultHitColor color.Color = color.NRGBA{G: 255, A: 255}

// Stats counts the work done by a marking pass.
type Stats struct {
	// Candidates is the number of nodes the broad phase handed to the narrow phase.
	Candidates int
	// Tests is the number of GJK queries run.
	Tests int
	// Hits is the number of nodes marked.
	Hits int
}

// Add returns the sum of two stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Candidates: s.Candidates + other.Candidates,
		Tests:      s.Tests + other.Tests,
		Hits:       s.Hits + other.Hits,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithDrawer draws every marked node with drawer.
func WithDrawer(drawer spatialmath.LineDrawer) Option {
	return func(e *Engine) {
		e.drawer = drawer
	}
}

// WithHitColor sets the color marked nodes are drawn with.
func WithHitColor(c color.Color) Option {
	return func(e *Engine) {
		e.hitColor = c
	}
}

// Engine marks the nodes of a tree that intersect one shape.
type Engine struct {
	tree     *octree.Tree
	frame    spatialmath.Frame
	shape    spatialmath.ConvexShape
	maxDepth int
	logger   golog.Logger
	drawer   spatialmath.LineDrawer
	hitColor color.Color
}

// NewEngine returns an engine for a tree placed in the world by frame. Nodes are refined down to
// maxDepth and only nodes at that depth are marked.
func NewEngine(
	tree *octree.Tree,
	frame spatialmath.Frame,
	shape spatialmath.ConvexShape,
	maxDepth int,
	logger golog.Logger,
	opts ...Option,
) *Engine {
	e := &Engine{
		tree:     tree,
		frame:    frame,
		shape:    shape,
		maxDepth: maxDepth,
		logger:   logger,
		drawer:   spatialmath.NoopDrawer{},
		hitColor: DefaultHitColor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MarkNodes runs both phases and marks every node at the maximum depth that intersects the shape.
func (e *Engine) MarkNodes() (Stats, error) {
	candidates, err := e.BroadPhase()
	if err != nil {
		return Stats{Candidates: len(candidates)}, err
	}
	stats, err := e.NarrowPhase(candidates)
	stats.Candidates = len(candidates)
	e.logger.Debugw("marked nodes",
		"shape", string(e.shape.Type()),
		"candidates", stats.Candidates,
		"tests", stats.Tests,
		"hits", stats.Hits,
	)
	return stats, err
}

// BroadPhase returns the nodes whose boxes touch the bounding box of the shape, expanding the tree down
// to the maximum depth on the way.
func (e *Engine) BroadPhase() ([]octree.NodeID, error) {
	bounds := e.shape.AABB(e.frame)
	var candidates []octree.NodeID
	if err := e.broadPhase(e.tree.Root(), bounds, &candidates); err != nil {
		return candidates, err
	}
	return candidates, nil
}

func (e *Engine) broadPhase(id octree.NodeID, bounds spatialmath.AABB, candidates *[]octree.NodeID) error {
	box := e.tree.Bounds(id)
	if bounds.Contains(box) {
		return e.fringe(id, candidates)
	}
	if !bounds.Overlaps(box) {
		return nil
	}
	if e.tree.Depth(id) >= e.maxDepth {
		return e.fringe(id, candidates)
	}
	if err := e.expandLeaf(id); err != nil {
		return err
	}
	for _, child := range e.tree.Children(id) {
		if err := e.broadPhase(child, bounds, candidates); err != nil {
			return err
		}
	}
	return nil
}

// fringe adds the leaves below id, expanding leaves that are shallower than the maximum depth.
func (e *Engine) fringe(id octree.NodeID, candidates *[]octree.NodeID) error {
	if e.tree.IsLeaf(id) {
		if e.tree.Depth(id) >= e.maxDepth {
			*candidates = append(*candidates, id)
			return nil
		}
		if err := e.tree.Expand(id); err != nil {
			return err
		}
	}
	for _, child := range e.tree.Children(id) {
		if err := e.fringe(child, candidates); err != nil {
			return err
		}
	}
	return nil
}

// NarrowPhase tests each unmarked candidate against the shape. A hit at the maximum depth is marked;
// a hit above it is expanded and its children are tested in turn.
func (e *Engine) NarrowPhase(candidates []octree.NodeID) (Stats, error) {
	var stats Stats
	for _, id := range candidates {
		if err := e.check(id, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (e *Engine) check(id octree.NodeID, stats *Stats) error {
	if e.tree.IsMarked(id) {
		return nil
	}
	stats.Tests++
	if !e.Intersects(id) {
		return nil
	}
	if e.tree.IsLeaf(id) && e.tree.Depth(id) >= e.maxDepth {
		e.tree.Mark(id)
		stats.Hits++
		NewNodeBox(e.tree, id, e.frame).DrawDebug(e.drawer, e.hitColor)
		return nil
	}
	if err := e.expandLeaf(id); err != nil {
		return err
	}
	for _, child := range e.tree.Children(id) {
		if err := e.check(child, stats); err != nil {
			return err
		}
	}
	return nil
}

// Intersects reports whether the box of a node intersects the shape.
func (e *Engine) Intersects(id octree.NodeID) bool {
	return intersects(e.shape, NewNodeBox(e.tree, id, e.frame))
}

func (e *Engine) expandLeaf(id octree.NodeID) error {
	if !e.tree.IsLeaf(id) {
		return nil
	}
	return errors.Wrapf(e.tree.Expand(id), "expanding node %d", id)
}

// MarkAll marks the nodes intersecting each shape in turn. A failing shape does not stop the others;
// every error is returned.
func MarkAll(
	tree *octree.Tree,
	frame spatialmath.Frame,
	shapes []spatialmath.ConvexShape,
	maxDepth int,
	logger golog.Logger,
	opts ...Option,
) (Stats, error) {
	var total Stats
	var errs error
	for i, shape := range shapes {
		stats, err := NewEngine(tree, frame, shape, maxDepth, logger, opts...).MarkNodes()
		total = total.Add(stats)
		if err != nil {
			errs = multierr.Combine(errs, errors.Wrapf(err, "shape %d (%s)", i, shape.Type()))
		}
	}
	return total, errs
}
