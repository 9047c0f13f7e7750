// Package cli contains the octmesh command line tool.
package cli

import (
	"io"

	"github.com/edaniels/golog"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	// Flags.
	flagConfig   = "config"
	flagDebug    = "debug"
	flagOutput   = "output"
	flagFormat   = "format"
	flagMaxDepth = "max-depth"
	flagLocal    = "local"
	flagMarked   = "marked-only"

	loggerKey = "logger"
)

// NewApp returns the octmesh application writing its normal output to out and its errors to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "octmesh",
		Usage:           "mark convex shapes in an adaptive octree and mesh the result",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load the scene from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var logger golog.Logger
			if c.Bool(flagDebug) {
				logger = golog.NewDebugLogger("octmesh")
			} else {
				logger = zap.NewNop().Sugar()
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata[loggerKey] = logger
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "mark",
				Usage:     "mark the scene's shapes and write the boundary mesh",
				UsageText: "octmesh -c <scene.json> mark [--output <file>] [--format obj|ply] [--marked-only]",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the mesh to `FILE` instead of the scene's output path",
					},
					&cli.StringFlag{
						Name:  flagFormat,
						Usage: "mesh format, obj or ply; defaults to the output file extension",
					},
					&cli.IntFlag{
						Name:  flagMaxDepth,
						Usage: "override the scene's max_depth",
					},
					&cli.BoolFlag{
						Name:  flagLocal,
						Usage: "keep the mesh in octree coordinates instead of moving it into the world",
					},
					&cli.BoolFlag{
						Name:  flagMarked,
						Usage: "only mesh marked leaves, leaving out the outer faces of the tree",
					},
				},
				Action: MarkAction,
			},
			{
				Name:  "stats",
				Usage: "mark the scene's shapes and print tree statistics",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagMaxDepth,
						Usage: "override the scene's max_depth",
					},
				},
				Action: StatsAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of scene files",
				Action: SchemaAction,
			},
		},
	}
}

func loggerFromContext(c *cli.Context) golog.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(golog.Logger); ok {
		return logger
	}
	return zap.NewNop().Sugar()
}
