package mesher

import (
	"sync"

	"github.com/edaniels/golog"

	"go.viam.com/octmesh/octree"
)

// Cache holds the mesh of a tree and regenerates it only after the tree changed.
type Cache struct {
	tree   *octree.Tree
	logger golog.Logger
	opts   []GenerateOption

	mu         sync.Mutex
	generation uint64
	mesh       *Prototype
	stats      Stats
}

// NewCache returns an empty cache for tree. The options are passed to every Generate call.
func NewCache(tree *octree.Tree, logger golog.Logger, opts ...GenerateOption) *Cache {
	return &Cache{tree: tree, logger: logger, opts: opts}
}

// Mesh returns the current mesh of the tree and whether it had to be regenerated. The returned
// prototype is shared and must not be modified.
func (c *Cache) Mesh() (*Prototype, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	generation := c.tree.Generation()
	if c.mesh != nil && generation == c.generation {
		return c.mesh, false
	}
	mesh := &Prototype{}
	c.stats = Generate(c.tree, mesh, c.opts...)
	c.mesh = mesh
	c.generation = generation
	c.logger.Debugw("regenerated mesh",
		"generation", generation,
		"faces", c.stats.Faces,
		"triangles", c.stats.Triangles,
	)
	return mesh, true
}

// Stats returns the stats of the last generated mesh.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Invalidate drops the cached mesh.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mesh = nil
}
