package spatialmath

import (
	"github.com/golang/geo/r3"
)

const (
	gjkMaxIterations = 64
	// gjkEpsilon is a relative tolerance: squared lengths are compared against it times the square of a
	// reference length taken from the same configuration, so the answer does not depend on units.
	gjkEpsilon = 1e-12
)

// SupportFunc maps a search direction to the extreme point of a convex set along it.
type SupportFunc func(direction r3.Vector) r3.Vector

// MinkowskiSupport returns the support function of the Minkowski difference a - b.
func MinkowskiSupport(a, b SupportFunc) SupportFunc {
	return func(d r3.Vector) r3.Vector {
		return a(d).Sub(b(d.Mul(-1)))
	}
}

// gjkSimplex holds up to 4 support points, the newest last.
type gjkSimplex struct {
	pts   [4]r3.Vector
	count int
	// tolerance is the squared distance under which the origin counts as touching the simplex
	tolerance float64
}

func (s *gjkSimplex) set(pts ...r3.Vector) {
	s.count = copy(s.pts[:], pts)
}

func (s *gjkSimplex) push(p r3.Vector) {
	if s.count == len(s.pts) {
		copy(s.pts[:], s.pts[1:])
		s.count--
	}
	s.pts[s.count] = p
	s.count++
}

// GJKIntersects reports whether the convex set described by the Minkowski difference support function
// contains the origin, i.e. whether the two underlying shapes intersect. Shapes closer than a tiny
// fraction of the size of the Minkowski difference count as touching, and touching shapes intersect.
// The search gives up, reporting no intersection, after a fixed number of iterations.
func GJKIntersects(support SupportFunc) bool {
	first := support(r3.Vector{X: 1})
	extent := minkowskiExtent(support)
	if extent == 0 {
		// both shapes are points
		return first.Norm2() == 0
	}
	simplex := gjkSimplex{tolerance: gjkEpsilon * extent}
	simplex.set(first)
	dir := first.Mul(-1)
	if dir.Norm2() <= simplex.tolerance {
		return true
	}

	for i := 0; i < gjkMaxIterations; i++ {
		p := support(dir)
		if p.Dot(dir) < 0 {
			return false
		}
		if p.Norm2() <= simplex.tolerance {
			return true
		}
		simplex.push(p)
		var enclosed bool
		dir, enclosed = gjkNextSimplex(&simplex, dir)
		if enclosed {
			return true
		}
	}
	return false
}

// minkowskiExtent returns the squared diagonal of the bounding box of the set.
func minkowskiExtent(support SupportFunc) float64 {
	size := r3.Vector{
		X: support(r3.Vector{X: 1}).X - support(r3.Vector{X: -1}).X,
		Y: support(r3.Vector{Y: 1}).Y - support(r3.Vector{Y: -1}).Y,
		Z: support(r3.Vector{Z: 1}).Z - support(r3.Vector{Z: -1}).Z,
	}
	return size.Norm2()
}

// gjkNextSimplex reduces the simplex to the feature closest to the origin and returns the next search
// direction, or reports that the origin is enclosed.
func gjkNextSimplex(s *gjkSimplex, dir r3.Vector) (r3.Vector, bool) {
	switch s.count {
	case 2:
		return gjkLine(s)
	case 3:
		return gjkTriangle(s)
	case 4:
		return gjkTetrahedron(s)
	}
	return dir, false
}

func gjkLine(s *gjkSimplex) (r3.Vector, bool) {
	b, a := s.pts[0], s.pts[1]
	ab := b.Sub(a)
	ao := a.Mul(-1)

	if ao.Norm2() <= s.tolerance {
		return ao, true
	}
	ab2 := ab.Norm2()
	if ab2 <= s.tolerance || ab.Dot(ao) <= 0 {
		s.set(a)
		return ao, false
	}
	// |perp| is |ab|^2 times the distance from the origin to the line
	perp := ab.Cross(ao).Cross(ab)
	if perp.Norm2() <= s.tolerance*ab2*ab2 {
		return perp, true
	}
	return perp, false
}

func gjkTriangle(s *gjkSimplex) (r3.Vector, bool) {
	c, b, a := s.pts[0], s.pts[1], s.pts[2]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ao := a.Mul(-1)
	abc := ab.Cross(ac)

	// collinear points, compared by the sine of the angle at a
	if abc.Norm2() <= gjkEpsilon*ab.Norm2()*ac.Norm2() {
		s.set(b, a)
		return gjkLine(s)
	}
	if ab.Cross(abc).Dot(ao) > 0 {
		s.set(b, a)
		return gjkLine(s)
	}
	if abc.Cross(ac).Dot(ao) > 0 {
		s.set(c, a)
		return gjkLine(s)
	}

	// side/|abc| is the distance from the origin to the plane of the triangle
	side := abc.Dot(ao)
	switch {
	case side*side <= s.tolerance*abc.Norm2():
		return abc, true
	case side > 0:
		return abc, false
	default:
		s.set(b, c, a)
		return abc.Mul(-1), false
	}
}

func gjkTetrahedron(s *gjkSimplex) (r3.Vector, bool) {
	d, c, b, a := s.pts[0], s.pts[1], s.pts[2], s.pts[3]
	ab := b.Sub(a)
	ac := c.Sub(a)
	ad := d.Sub(a)
	ao := a.Mul(-1)

	abc := ab.Cross(ac)
	volume := abc.Dot(ad)
	// flat tetrahedron, compared by the sine of the angle between ad and the base
	if volume*volume <= gjkEpsilon*abc.Norm2()*ad.Norm2() {
		s.set(c, b, a)
		return gjkTriangle(s)
	}

	// face normals point away from the fourth vertex
	if volume > 0 {
		abc = abc.Mul(-1)
	}
	acd := ac.Cross(ad)
	if acd.Dot(ab) > 0 {
		acd = acd.Mul(-1)
	}
	adb := ad.Cross(ab)
	if adb.Dot(ac) > 0 {
		adb = adb.Mul(-1)
	}

	if abc.Dot(ao) > 0 {
		s.set(c, b, a)
		return gjkTriangle(s)
	}
	if acd.Dot(ao) > 0 {
		s.set(d, c, a)
		return gjkTriangle(s)
	}
	if adb.Dot(ao) > 0 {
		s.set(b, d, a)
		return gjkTriangle(s)
	}
	return r3.Vector{}, true
}
