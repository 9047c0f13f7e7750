package spatialmath

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestGJKIntersects(t *testing.T) {
	half := r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}
	cases := []struct {
		name     string
		a, b     func(t *testing.T) ConvexShape
		expected bool
	}{
		{
			"overlapping boxes",
			func(t *testing.T) ConvexShape { return NewBox(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewBox(makeFrame(t, r3.Vector{X: 0.9}, unitScale)) },
			true,
		},
		{
			"separated boxes",
			func(t *testing.T) ConvexShape { return NewBox(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewBox(makeFrame(t, r3.Vector{X: 1.1}, unitScale)) },
			false,
		},
		{
			"overlapping spheres",
			func(t *testing.T) ConvexShape { return NewSphere(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewSphere(makeFrame(t, r3.Vector{X: 1.2, Y: 1.2}, unitScale)) },
			true,
		},
		{
			"separated spheres",
			func(t *testing.T) ConvexShape { return NewSphere(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewSphere(makeFrame(t, r3.Vector{X: 1.5, Y: 1.5}, unitScale)) },
			false,
		},
		{
			"sphere near a box corner",
			func(t *testing.T) ConvexShape { return NewBox(IdentityFrame()) },
			func(t *testing.T) ConvexShape {
				return NewSphere(makeFrame(t, r3.Vector{X: 0.8, Y: 0.8, Z: 0.8}, half))
			},
			false,
		},
		{
			"sphere touching a box corner region",
			func(t *testing.T) ConvexShape { return NewBox(IdentityFrame()) },
			func(t *testing.T) ConvexShape {
				return NewSphere(makeFrame(t, r3.Vector{X: 0.75, Y: 0.75, Z: 0.75}, half))
			},
			true,
		},
		{
			"sphere inside a box",
			func(t *testing.T) ConvexShape { return NewBox(makeFrame(t, r3.Vector{}, r3.Vector{X: 10, Y: 10, Z: 10})) },
			func(t *testing.T) ConvexShape { return NewSphere(makeFrame(t, r3.Vector{X: 1, Y: -2, Z: 3}, unitScale)) },
			true,
		},
		{
			"cylinder cap under a box",
			func(t *testing.T) ConvexShape { return NewCylinder(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewBox(makeFrame(t, r3.Vector{Y: 0.9}, unitScale)) },
			true,
		},
		{
			"cylinder cap clear of a box",
			func(t *testing.T) ConvexShape { return NewCylinder(IdentityFrame()) },
			func(t *testing.T) ConvexShape { return NewBox(makeFrame(t, r3.Vector{Y: 1.1}, unitScale)) },
			false,
		},
		{
			"tetrahedron mesh against a sphere",
			func(t *testing.T) ConvexShape {
				m, err := NewMesh(IdentityFrame(), []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}})
				test.That(t, err, test.ShouldBeNil)
				return m
			},
			func(t *testing.T) ConvexShape { return NewSphere(makeFrame(t, r3.Vector{X: 1, Y: 1, Z: 1}, half)) },
			false,
		},
		{
			"tetrahedron mesh around a small sphere",
			func(t *testing.T) ConvexShape {
				m, err := NewMesh(IdentityFrame(), []r3.Vector{{}, {X: 1}, {Y: 1}, {Z: 1}})
				test.That(t, err, test.ShouldBeNil)
				return m
			},
			func(t *testing.T) ConvexShape {
				return NewSphere(makeFrame(t, r3.Vector{X: 0.2, Y: 0.2, Z: 0.2}, r3.Vector{X: 0.05, Y: 0.05, Z: 0.05}))
			},
			true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := c.a(t), c.b(t)
			test.That(t, GJKIntersects(MinkowskiSupport(a.Support, b.Support)), test.ShouldEqual, c.expected)
			test.That(t, GJKIntersects(MinkowskiSupport(b.Support, a.Support)), test.ShouldEqual, c.expected)
		})
	}
}

func TestGJKSimplexPush(t *testing.T) {
	var s gjkSimplex
	for i := 1; i <= 5; i++ {
		s.push(r3.Vector{X: float64(i)})
	}
	test.That(t, s.count, test.ShouldEqual, 4)
	test.That(t, s.pts[0].X, test.ShouldEqual, 2.)
	test.That(t, s.pts[3].X, test.ShouldEqual, 5.)
}

var gjkScales = []float64{1, 1. / 16, 1. / 256, 1. / 1024}

// boxDistance returns the distance from p to the axis aligned box with the given center and size.
func boxDistance(p, center, size r3.Vector) float64 {
	d := p.Sub(center)
	return r3.Vector{
		X: math.Max(math.Abs(d.X)-size.X/2, 0),
		Y: math.Max(math.Abs(d.Y)-size.Y/2, 0),
		Z: math.Max(math.Abs(d.Z)-size.Z/2, 0),
	}.Norm()
}

func gjkBothOrders(a, b ConvexShape) (bool, bool) {
	return GJKIntersects(MinkowskiSupport(a.Support, b.Support)), GJKIntersects(MinkowskiSupport(b.Support, a.Support))
}

func TestGJKSmallScenes(t *testing.T) {
	cases := []struct {
		name     string
		center   r3.Vector
		radius   float64
		expected bool
	}{
		{"clear of a face", r3.Vector{X: 1.1}, 0.5, false},
		{"into a face", r3.Vector{X: 0.9}, 0.5, true},
		{"clear of an edge", r3.Vector{X: 0.9, Y: 0.9}, 0.5, false},
		{"into an edge", r3.Vector{X: 0.8, Y: 0.8}, 0.5, true},
		{"clear of a corner", r3.Vector{X: 0.82, Y: 0.82, Z: 0.82}, 0.5, false},
		{"into a corner", r3.Vector{X: 0.7, Y: 0.7, Z: 0.7}, 0.5, true},
		{"small sphere clear of a face", r3.Vector{Y: -0.56}, 0.05, false},
		{"small sphere into a face", r3.Vector{Y: -0.54}, 0.05, true},
	}
	for _, scale := range gjkScales {
		for _, c := range cases {
			t.Run(fmt.Sprintf("%s at %v", c.name, scale), func(t *testing.T) {
				uniform := r3.Vector{X: scale, Y: scale, Z: scale}
				box := NewBox(makeFrame(t, r3.Vector{}, uniform))
				sphere := NewSphere(makeFrame(t, c.center.Mul(scale), uniform.Mul(c.radius)))
				ab, ba := gjkBothOrders(box, sphere)
				test.That(t, ab, test.ShouldEqual, c.expected)
				test.That(t, ba, test.ShouldEqual, c.expected)
			})
		}
	}
}

func TestGJKSphereBoxDistance(t *testing.T) {
	for _, scale := range gjkScales {
		t.Run(fmt.Sprint(scale), func(t *testing.T) {
			rng := rand.New(rand.NewSource(7))
			uniform := r3.Vector{X: scale, Y: scale, Z: scale}
			box := NewBox(makeFrame(t, r3.Vector{}, uniform))
			for checked := 0; checked < 400; {
				radius := 0.05 + 0.45*rng.Float64()
				center := r3.Vector{X: 3*rng.Float64() - 1.5, Y: 3*rng.Float64() - 1.5, Z: 3*rng.Float64() - 1.5}
				dist := boxDistance(center, r3.Vector{}, unitScale)
				// too close to touching to call either way
				if math.Abs(dist-radius) < 0.1*radius {
					continue
				}
				checked++
				sphere := NewSphere(makeFrame(t, center.Mul(scale), uniform.Mul(radius)))
				ab, ba := gjkBothOrders(box, sphere)
				test.That(t, ab, test.ShouldEqual, dist < radius)
				test.That(t, ba, test.ShouldEqual, dist < radius)
			}
		})
	}
}

func TestGJKBoxBoxSeparation(t *testing.T) {
	for _, scale := range gjkScales {
		t.Run(fmt.Sprint(scale), func(t *testing.T) {
			rng := rand.New(rand.NewSource(11))
			randomSize := func() r3.Vector {
				return r3.Vector{X: 0.2 + rng.Float64(), Y: 0.2 + rng.Float64(), Z: 0.2 + rng.Float64()}
			}
			for checked := 0; checked < 400; {
				sizeA, sizeB := randomSize(), randomSize()
				center := r3.Vector{X: 3*rng.Float64() - 1.5, Y: 3*rng.Float64() - 1.5, Z: 3*rng.Float64() - 1.5}
				gap := math.Max(
					math.Abs(center.X)-(sizeA.X+sizeB.X)/2,
					math.Max(math.Abs(center.Y)-(sizeA.Y+sizeB.Y)/2, math.Abs(center.Z)-(sizeA.Z+sizeB.Z)/2),
				)
				smallest := math.Min(math.Min(sizeA.X, sizeA.Y), math.Min(math.Min(sizeA.Z, sizeB.X), math.Min(sizeB.Y, sizeB.Z)))
				if math.Abs(gap) < 0.1*smallest {
					continue
				}
				checked++
				a := NewBox(makeFrame(t, r3.Vector{}, sizeA.Mul(scale)))
				b := NewBox(makeFrame(t, center.Mul(scale), sizeB.Mul(scale)))
				ab, ba := gjkBothOrders(a, b)
				test.That(t, ab, test.ShouldEqual, gap < 0)
				test.That(t, ba, test.ShouldEqual, gap < 0)
			}
		})
	}
}
