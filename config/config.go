// Package config describes a scene to voxelize: the box covered by the octree, how finely to refine it,
// the shapes to mark and where to write the resulting mesh.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"

	"go.viam.com/octmesh/mesher"
	"go.viam.com/octmesh/spatialmath"
	"go.viam.com/octmesh/utils"
)

const (
	// DefaultMaxDepth is used when a scene does not set max_depth.
	DefaultMaxDepth = 6
	// MaxDepthLimit bounds max_depth. Every extra level can multiply the node count by eight.
	MaxDepthLimit = 12
)

var knownShapeTypes = []spatialmath.ShapeType{
	spatialmath.BoxType,
	spatialmath.SphereType,
	spatialmath.CylinderType,
	spatialmath.MeshType,
}

// Bounds is the box covered by the root of the octree, in the octree's own coordinates.
type Bounds struct {
	Min r3.Vector `json:"min"`
	Max r3.Vector `json:"max"`
}

// Validate ensures the box has volume.
func (b Bounds) Validate(path string) error {
	size := b.Max.Sub(b.Min)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return utils.NewConfigValidationError(path,
			errors.Errorf("max (%v) must be greater than min (%v) on every axis", b.Max, b.Min))
	}
	return nil
}

// Output says where to write the mesh. An empty format is taken from the file extension.
type Output struct {
	Path   string `json:"path"`
	Format string `json:"format,omitempty"`
}

// MeshFormat returns the format to write.
func (o Output) MeshFormat() mesher.Format {
	if o.Format != "" {
		return mesher.Format(strings.ToLower(o.Format))
	}
	return mesher.Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(o.Path)), "."))
}

// Validate ensures the output has a path and a supported format.
func (o Output) Validate(path string) error {
	if o.Path == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "path")
	}
	if format := o.MeshFormat(); format != mesher.FormatOBJ && format != mesher.FormatPLY {
		return utils.NewConfigValidationError(path, errors.Errorf("unsupported mesh format %q", format))
	}
	return nil
}

// Scene is the top level configuration.
type Scene struct {
	ConfigFilePath string `json:"-"`

	Bounds   Bounds                    `json:"bounds"`
	MaxDepth *int                      `json:"max_depth,omitempty"`
	Frame    spatialmath.FrameConfig   `json:"frame"`
	Shapes   []spatialmath.ShapeConfig `json:"shapes"`
	Output   *Output                   `json:"output,omitempty"`
}

// Depth returns the configured max depth or DefaultMaxDepth.
func (s *Scene) Depth() int {
	return lo.FromPtrOr(s.MaxDepth, DefaultMaxDepth)
}

// Validate checks the whole scene and returns every problem found.
func (s *Scene) Validate(path string) error {
	var errs error
	errs = multierr.Append(errs, s.Bounds.Validate(fmt.Sprintf("%s.bounds", path)))

	if depth := s.Depth(); depth < 0 || depth > MaxDepthLimit {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path,
			errors.Errorf("max_depth must be between 0 and %d, got %d", MaxDepthLimit, depth)))
	}
	if _, err := s.Frame.Frame(); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(fmt.Sprintf("%s.frame", path), err))
	}

	if len(s.Shapes) == 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "shapes"))
	}
	for idx, shape := range s.Shapes {
		shapePath := fmt.Sprintf("%s.shapes.%d", path, idx)
		if shape.Type == "" {
			errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(shapePath, "type"))
			continue
		}
		if !lo.Contains(knownShapeTypes, shape.Type) {
			errs = multierr.Append(errs, utils.NewConfigValidationError(shapePath,
				errors.Errorf("unknown shape type %q", shape.Type)))
			continue
		}
		if _, err := spatialmath.NewShapeFromConfig(shape); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(shapePath, err))
		}
	}

	if s.Output != nil {
		errs = multierr.Append(errs, s.Output.Validate(fmt.Sprintf("%s.output", path)))
	}
	return errs
}

// OctreeFrame returns the frame placing the octree in the world.
func (s *Scene) OctreeFrame() (spatialmath.Frame, error) {
	return s.Frame.Frame()
}

// BuildShapes instantiates every shape of the scene.
func (s *Scene) BuildShapes() ([]spatialmath.ConvexShape, error) {
	shapes := make([]spatialmath.ConvexShape, 0, len(s.Shapes))
	for idx, sc := range s.Shapes {
		shape, err := spatialmath.NewShapeFromConfig(sc)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d", idx)
		}
		shapes = append(shapes, shape)
	}
	return shapes, nil
}

// ShapeLabels returns the label of every shape, falling back to its type and index.
func (s *Scene) ShapeLabels() []string {
	return lo.Map(s.Shapes, func(sc spatialmath.ShapeConfig, idx int) string {
		if sc.Label != "" {
			return sc.Label
		}
		return fmt.Sprintf("%s-%d", sc.Type, idx)
	})
}
