package cli

import (
	"os"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/octmesh/collision"
	"go.viam.com/octmesh/config"
	"go.viam.com/octmesh/mesher"
	"go.viam.com/octmesh/octree"
	"go.viam.com/octmesh/spatialmath"
)

// markedScene is a scene whose shapes have been marked into a fresh tree.
type markedScene struct {
	scene *config.Scene
	tree  *octree.Tree
	frame spatialmath.Frame
	stats collision.Stats
}

func loadScene(c *cli.Context) (*config.Scene, error) {
	path := c.String(flagConfig)
	if path == "" {
		return nil, errors.New("a scene file is required, pass it with --config")
	}
	scene, err := config.Read(path, loggerFromContext(c))
	if err != nil {
		return nil, err
	}
	if c.IsSet(flagMaxDepth) {
		depth := c.Int(flagMaxDepth)
		scene.MaxDepth = &depth
		if err := scene.Validate("scene"); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

func markScene(scene *config.Scene, logger golog.Logger) (*markedScene, error) {
	frame, err := scene.OctreeFrame()
	if err != nil {
		return nil, err
	}
	shapes, err := scene.BuildShapes()
	if err != nil {
		return nil, err
	}
	tree, err := octree.New(scene.Bounds.Min, scene.Bounds.Max, logger)
	if err != nil {
		return nil, err
	}
	stats, err := collision.MarkAll(tree, frame, shapes, scene.Depth(), logger)
	if err != nil {
		return nil, err
	}
	return &markedScene{scene: scene, tree: tree, frame: frame, stats: stats}, nil
}

// MarkAction marks every shape of the scene and writes the boundary mesh.
func MarkAction(c *cli.Context) (err error) {
	logger := loggerFromContext(c)
	scene, err := loadScene(c)
	if err != nil {
		return err
	}

	output := config.Output{}
	if scene.Output != nil {
		output = *scene.Output
	}
	if c.IsSet(flagOutput) {
		output.Path = c.Path(flagOutput)
		output.Format = ""
	}
	if c.IsSet(flagFormat) {
		output.Format = c.String(flagFormat)
	}
	if err := output.Validate("output"); err != nil {
		return err
	}

	marked, err := markScene(scene, logger)
	if err != nil {
		return err
	}

	var opts []mesher.GenerateOption
	if c.Bool(flagMarked) {
		opts = append(opts, mesher.MarkedOnly())
	}
	mesh := &mesher.Prototype{}
	meshStats := mesher.Generate(marked.tree, mesh, opts...)
	if !c.Bool(flagLocal) {
		mesh = mesh.Transform(marked.frame)
	}

	//nolint:gosec
	f, err := os.Create(output.Path)
	if err != nil {
		return errors.Wrap(err, "could not create mesh file")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	if err := mesher.Write(f, mesh, output.MeshFormat()); err != nil {
		return err
	}

	printf(c.App.Writer, "marked %d nodes with %d shapes", marked.stats.Hits, len(scene.Shapes))
	printf(c.App.Writer, "wrote %d vertices and %d triangles to %s", meshStats.Vertices, meshStats.Triangles, output.Path)
	return nil
}

// StatsAction marks every shape of the scene and prints statistics about the resulting tree.
func StatsAction(c *cli.Context) error {
	scene, err := loadScene(c)
	if err != nil {
		return err
	}
	marked, err := markScene(scene, loggerFromContext(c))
	if err != nil {
		return err
	}

	tree := marked.tree
	leaves := tree.Leaves()
	markedLeaves := lo.CountBy(leaves, tree.IsMarked)
	boundary := lo.CountBy(leaves, func(id octree.NodeID) bool { return tree.Edges(id) != 0 })
	depths := lo.CountValues(lo.Map(leaves, func(id octree.NodeID, _ int) int { return tree.Depth(id) }))

	printf(c.App.Writer, "shapes: %v", scene.ShapeLabels())
	printf(c.App.Writer, "nodes: %d", tree.Len())
	printf(c.App.Writer, "leaves: %d", len(leaves))
	printf(c.App.Writer, "marked leaves: %d", markedLeaves)
	printf(c.App.Writer, "boundary leaves: %d", boundary)
	for depth := 0; depth <= scene.Depth(); depth++ {
		if n, ok := depths[depth]; ok {
			printf(c.App.Writer, "\tdepth %d: %d leaves", depth, n)
		}
	}
	printf(c.App.Writer, "candidates: %d, gjk tests: %d, hits: %d",
		marked.stats.Candidates, marked.stats.Tests, marked.stats.Hits)
	if tree.IsMarked(tree.Root()) {
		infof(c.App.Writer, "the shapes cover the whole tree")
	}
	return nil
}

// SchemaAction prints the JSON schema of scene files.
func SchemaAction(c *cli.Context) error {
	b, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", b)
	return nil
}
