package spatialmath

import (
	"image/color"
	"math"
	"sync"

	"github.com/golang/geo/r3"
)

// A LineDrawer receives debug line segments in world coordinates. Drawing never affects any computation.
type LineDrawer interface {
	DrawLine(p0, p1 r3.Vector, c color.Color)
}

// NoopDrawer discards every line.
type NoopDrawer struct{}

// DrawLine does nothing.
func (NoopDrawer) DrawLine(p0, p1 r3.Vector, c color.Color) {}

// Segment is a recorded debug line.
type Segment struct {
	P0, P1 r3.Vector
	Color  color.Color
}

// LineRecorder keeps every line it is asked to draw.
type LineRecorder struct {
	mu       sync.Mutex
	segments []Segment
}

// DrawLine records the line.
func (r *LineRecorder) DrawLine(p0, p1 r3.Vector, c color.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments = append(r.segments, Segment{P0: p0, P1: p1, Color: c})
}

// Segments returns a copy of the recorded lines.
func (r *LineRecorder) Segments() []Segment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Segment, len(r.segments))
	copy(out, r.segments)
	return out
}

// drawRing draws a closed polygon approximating the unit circle spanned by u and v around center,
// transformed into world coordinates by f.
func drawRing(drawer LineDrawer, f Frame, center, u, v r3.Vector, segments int, c color.Color) {
	prev := f.TransformPoint(center.Add(u))
	for i := 1; i <= segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		next := f.TransformPoint(center.Add(u.Mul(math.Cos(theta))).Add(v.Mul(math.Sin(theta))))
		drawer.DrawLine(prev, next, c)
		prev = next
	}
}
