package spatialmath

import (
	"fmt"
	"image/color"
	"math"

	"github.com/golang/geo/r3"
)

const cylinderRadialEpsilon = 1e-12

// cylinderExtremes are the local corners bounding the cylinder.
var cylinderExtremes = [8]r3.Vector{
	{X: 1, Y: 0.5, Z: 1},
	{X: 1, Y: 0.5, Z: -1},
	{X: 1, Y: -0.5, Z: 1},
	{X: 1, Y: -0.5, Z: -1},
	{X: -1, Y: 0.5, Z: 1},
	{X: -1, Y: 0.5, Z: -1},
	{X: -1, Y: -0.5, Z: 1},
	{X: -1, Y: -0.5, Z: -1},
}

// cylinder has radius 1 and height 1 in its frame, with its axis along local Y and centered on the origin.
type cylinder struct {
	frame Frame
}

// NewCylinder instantiates a new capped cylinder shape placed by frame.
func NewCylinder(frame Frame) ConvexShape {
	return &cylinder{frame: frame}
}

// String returns a human readable string that represents the cylinder.
func (c *cylinder) String() string {
	o := c.Origin()
	return fmt.Sprintf("Type: Cylinder | Position: X:%.3f, Y:%.3f, Z:%.3f", o.X, o.Y, o.Z)
}

func (c *cylinder) Type() ShapeType {
	return CylinderType
}

func (c *cylinder) Frame() Frame {
	return c.frame
}

func (c *cylinder) Support(direction r3.Vector) r3.Vector {
	local := c.frame.LocalDirection(direction)
	p := r3.Vector{Y: halfSign(local.Y)}
	// a direction parallel to the axis is maximized by the whole cap; the cap center is as good as any point
	if s := math.Hypot(local.X, local.Z); s > cylinderRadialEpsilon {
		p.X = local.X / s
		p.Z = local.Z / s
	}
	return c.frame.TransformPoint(p)
}

func (c *cylinder) AABB(reference Frame) AABB {
	return aabbOfLocalPoints(c.frame, reference, cylinderExtremes[:])
}

func (c *cylinder) Origin() r3.Vector {
	return c.frame.Translation()
}

func (c *cylinder) DrawDebug(drawer LineDrawer, col color.Color) {
	x, z := r3.Vector{X: 1}, r3.Vector{Z: 1}
	top, bottom := r3.Vector{Y: 0.5}, r3.Vector{Y: -0.5}
	drawRing(drawer, c.frame, top, x, z, debugRingSegments, col)
	drawRing(drawer, c.frame, bottom, x, z, debugRingSegments, col)
	for _, side := range []r3.Vector{x, z, x.Mul(-1), z.Mul(-1)} {
		drawer.DrawLine(c.frame.TransformPoint(top.Add(side)), c.frame.TransformPoint(bottom.Add(side)), col)
	}
}
