package spatialmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

const singularFrameEpsilon = 1e-12

// Frame is an affine reference frame, stored as a local to world matrix with its cached inverse.
type Frame struct {
	m   mgl64.Mat4
	inv mgl64.Mat4
}

// IdentityFrame returns the frame whose local coordinates equal world coordinates.
func IdentityFrame() Frame {
	return Frame{m: mgl64.Ident4(), inv: mgl64.Ident4()}
}

// NewFrame builds a frame that scales, then rotates, then translates local coordinates into world coordinates.
func NewFrame(translation r3.Vector, rotation quat.Number, scale r3.Vector) (Frame, error) {
	norm := quat.Abs(rotation)
	if norm == 0 {
		return Frame{}, errors.New("cannot build a frame from a zero rotation quaternion")
	}
	rotation = quat.Scale(1/norm, rotation)
	q := mgl64.Quat{W: rotation.Real, V: mgl64.Vec3{rotation.Imag, rotation.Jmag, rotation.Kmag}}
	m := mgl64.Translate3D(translation.X, translation.Y, translation.Z).
		Mul4(q.Mat4()).
		Mul4(mgl64.Scale3D(scale.X, scale.Y, scale.Z))
	return NewFrameFromMatrix(m)
}

// NewTranslationFrame is shorthand for an unrotated frame with the given translation and scale.
func NewTranslationFrame(translation, scale r3.Vector) (Frame, error) {
	return NewFrame(translation, quat.Number{Real: 1}, scale)
}

// NewFrameFromMatrix wraps an affine local to world matrix. Matrices whose linear part is singular
// relative to the length of its columns are rejected, whatever the overall scale.
func NewFrameFromMatrix(m mgl64.Mat4) (Frame, error) {
	if m.At(3, 0) != 0 || m.At(3, 1) != 0 || m.At(3, 2) != 0 || m.At(3, 3) != 1 {
		return Frame{}, errors.New("frame matrix is not affine")
	}
	c0 := r3.Vector{X: m.At(0, 0), Y: m.At(1, 0), Z: m.At(2, 0)}
	c1 := r3.Vector{X: m.At(0, 1), Y: m.At(1, 1), Z: m.At(2, 1)}
	c2 := r3.Vector{X: m.At(0, 2), Y: m.At(1, 2), Z: m.At(2, 2)}
	det := c0.Dot(c1.Cross(c2))
	if math.Abs(det) <= singularFrameEpsilon*c0.Norm()*c1.Norm()*c2.Norm() {
		return Frame{}, errors.Errorf("frame matrix is singular (det %.3g)", det)
	}

	// the rows of the inverse linear part are the cross products of the columns over the determinant
	r0 := c1.Cross(c2).Mul(1 / det)
	r1 := c2.Cross(c0).Mul(1 / det)
	r2 := c0.Cross(c1).Mul(1 / det)
	t := r3.Vector{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)}
	inv := mgl64.Mat4FromRows(
		mgl64.Vec4{r0.X, r0.Y, r0.Z, -r0.Dot(t)},
		mgl64.Vec4{r1.X, r1.Y, r1.Z, -r1.Dot(t)},
		mgl64.Vec4{r2.X, r2.Y, r2.Z, -r2.Dot(t)},
		mgl64.Vec4{0, 0, 0, 1},
	)
	return Frame{m: m, inv: inv}, nil
}

// NewAxisAngleRotation returns the unit quaternion rotating by degrees around axis.
func NewAxisAngleRotation(axis r3.Vector, degrees float64) quat.Number {
	axis = axis.Normalize()
	half := degrees * math.Pi / 360
	s := math.Sin(half)
	return quat.Number{Real: math.Cos(half), Imag: axis.X * s, Jmag: axis.Y * s, Kmag: axis.Z * s}
}

// Matrix returns the local to world matrix.
func (f Frame) Matrix() mgl64.Mat4 {
	return f.m
}

// Translation returns the world position of the local origin.
func (f Frame) Translation() r3.Vector {
	return r3.Vector{X: f.m.At(0, 3), Y: f.m.At(1, 3), Z: f.m.At(2, 3)}
}

// Inverse returns the world to local frame.
func (f Frame) Inverse() Frame {
	return Frame{m: f.inv, inv: f.m}
}

// Compose returns the frame that first applies inner and then f.
func (f Frame) Compose(inner Frame) Frame {
	return Frame{m: f.m.Mul4(inner.m), inv: inner.inv.Mul4(f.inv)}
}

// RelativeTo expresses f in the local coordinates of reference.
func (f Frame) RelativeTo(reference Frame) Frame {
	return reference.Inverse().Compose(f)
}

// TransformPoint maps a local point into world coordinates.
func (f Frame) TransformPoint(p r3.Vector) r3.Vector {
	return fromVec3(mgl64.TransformCoordinate(toVec3(p), f.m))
}

// InverseTransformPoint maps a world point into local coordinates.
func (f Frame) InverseTransformPoint(p r3.Vector) r3.Vector {
	return fromVec3(mgl64.TransformCoordinate(toVec3(p), f.inv))
}

// TransformDirection applies the linear part of the frame to a local direction.
func (f Frame) TransformDirection(d r3.Vector) r3.Vector {
	return fromVec3(f.m.Mat3().Mul3x1(toVec3(d)))
}

// LocalDirection pulls a world direction back into local space through the transposed linear part.
// For a support mapping this is the correct direction to maximize against in local space, even under
// non uniform scale, since dot(d, M*p) == dot(transpose(M)*d, p).
func (f Frame) LocalDirection(d r3.Vector) r3.Vector {
	return fromVec3(f.m.Mat3().Transpose().Mul3x1(toVec3(d)))
}

// ApproxEqual reports whether every entry of the local to world matrices of both frames is within
// epsilon of the other.
func (f Frame) ApproxEqual(other Frame, epsilon float64) bool {
	for i := range f.m {
		if math.Abs(f.m[i]-other.m[i]) > epsilon {
			return false
		}
	}
	return true
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromVec3(v mgl64.Vec3) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
