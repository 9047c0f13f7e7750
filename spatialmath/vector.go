package spatialmath

import "github.com/golang/geo/r3"

// Component returns the coordinate of v along axis 0, 1 or 2.
func Component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns v with its coordinate along axis replaced by value.
func WithComponent(v r3.Vector, axis int, value float64) r3.Vector {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
