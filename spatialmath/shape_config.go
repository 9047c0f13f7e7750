package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// AxisAngleConfig describes a rotation of Degrees around Axis.
type AxisAngleConfig struct {
	Axis    r3.Vector `json:"axis"`
	Degrees float64   `json:"degrees"`
}

// FrameConfig describes a Frame. A missing scale means unit scale.
type FrameConfig struct {
	Translation r3.Vector        `json:"translation"`
	Orientation *AxisAngleConfig `json:"orientation,omitempty"`
	Scale       *r3.Vector       `json:"scale,omitempty"`
}

// Frame builds the described frame.
func (fc FrameConfig) Frame() (Frame, error) {
	rotation := quat.Number{Real: 1}
	if fc.Orientation != nil {
		if fc.Orientation.Axis.Norm2() == 0 {
			return Frame{}, errors.New("orientation axis must not be zero")
		}
		rotation = NewAxisAngleRotation(fc.Orientation.Axis, fc.Orientation.Degrees)
	}
	scale := r3.Vector{X: 1, Y: 1, Z: 1}
	if fc.Scale != nil {
		scale = *fc.Scale
	}
	return NewFrame(fc.Translation, rotation, scale)
}

// ShapeConfig describes a convex shape. Attributes depend on the type:
//
//	box:      dims (r3.Vector, default 1,1,1)
//	sphere:   radius (default 1)
//	cylinder: radius (default 1), height (default 1)
//	mesh:     vertices ([]r3.Vector, required)
type ShapeConfig struct {
	Type       ShapeType              `json:"type"`
	Label      string                 `json:"label,omitempty"`
	Frame      FrameConfig            `json:"frame"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

type boxAttributes struct {
	Dims *r3.Vector `json:"dims"`
}

type sphereAttributes struct {
	Radius float64 `json:"radius"`
}

type cylinderAttributes struct {
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
}

type meshAttributes struct {
	Vertices []r3.Vector `json:"vertices"`
}

// NewShapeFromConfig builds the shape described by config.
func NewShapeFromConfig(config ShapeConfig) (ConvexShape, error) {
	frame, err := config.Frame.Frame()
	if err != nil {
		return nil, errors.Wrap(err, "invalid frame")
	}

	switch config.Type {
	case BoxType:
		var attrs boxAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, err
		}
		if attrs.Dims == nil {
			return NewBox(frame), nil
		}
		scaled, err := scaleFrame(frame, *attrs.Dims)
		if err != nil {
			return nil, err
		}
		return NewBox(scaled), nil
	case SphereType:
		var attrs sphereAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, err
		}
		r := orDefault(attrs.Radius, 1)
		scaled, err := scaleFrame(frame, r3.Vector{X: r, Y: r, Z: r})
		if err != nil {
			return nil, err
		}
		return NewSphere(scaled), nil
	case CylinderType:
		var attrs cylinderAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, err
		}
		r, h := orDefault(attrs.Radius, 1), orDefault(attrs.Height, 1)
		scaled, err := scaleFrame(frame, r3.Vector{X: r, Y: h, Z: r})
		if err != nil {
			return nil, err
		}
		return NewCylinder(scaled), nil
	case MeshType:
		var attrs meshAttributes
		if err := decodeAttributes(config.Attributes, &attrs); err != nil {
			return nil, err
		}
		return NewMesh(frame, attrs.Vertices)
	default:
		return nil, errors.Errorf("unknown shape type %q", config.Type)
	}
}

func decodeAttributes(attributes map[string]interface{}, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      result,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(decoder.Decode(attributes), "invalid shape attributes")
}

func scaleFrame(frame Frame, scale r3.Vector) (Frame, error) {
	if scale.X <= 0 || scale.Y <= 0 || scale.Z <= 0 {
		return Frame{}, errors.Errorf("shape dimensions must be positive, got (%.3f, %.3f, %.3f)", scale.X, scale.Y, scale.Z)
	}
	s, err := NewTranslationFrame(r3.Vector{}, scale)
	if err != nil {
		return Frame{}, err
	}
	return frame.Compose(s), nil
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
