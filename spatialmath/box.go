package spatialmath

import (
	"fmt"
	"image/color"

	"github.com/golang/geo/r3"
)

// unitBox is the local box of side 1 centered on the origin.
var unitBox = AABB{Min: r3.Vector{X: -0.5, Y: -0.5, Z: -0.5}, Max: r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}}

// box is a unit cube centered on its frame's origin; scale the frame to get other sizes.
type box struct {
	frame Frame
}

// NewBox instantiates a new box shape placed by frame.
func NewBox(frame Frame) ConvexShape {
	return &box{frame: frame}
}

// String returns a human readable string that represents the box.
func (b *box) String() string {
	o := b.Origin()
	return fmt.Sprintf("Type: Box | Position: X:%.3f, Y:%.3f, Z:%.3f", o.X, o.Y, o.Z)
}

func (b *box) Type() ShapeType {
	return BoxType
}

func (b *box) Frame() Frame {
	return b.frame
}

// Support picks the corner whose local coordinates share the signs of the local direction.
func (b *box) Support(direction r3.Vector) r3.Vector {
	local := b.frame.LocalDirection(direction)
	return b.frame.TransformPoint(r3.Vector{X: halfSign(local.X), Y: halfSign(local.Y), Z: halfSign(local.Z)})
}

func (b *box) AABB(reference Frame) AABB {
	corners := unitBox.Corners()
	return aabbOfLocalPoints(b.frame, reference, corners[:])
}

func (b *box) Origin() r3.Vector {
	return b.frame.Translation()
}

func (b *box) DrawDebug(drawer LineDrawer, c color.Color) {
	corners := unitBox.Corners()
	for i, p := range corners {
		corners[i] = b.frame.TransformPoint(p)
	}
	DrawBox(drawer, corners, c)
}
