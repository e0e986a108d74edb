package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a 4x4 affine transform. The zero value is not the identity;
// use Identity.
type Transform mgl64.Mat4

// Identity returns the identity transform
func Identity() Transform {
	return Transform(mgl64.Ident4())
}

// Translation moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Transform {
	return Transform(mgl64.Translate3D(x, y, z))
}

// Scaling scales along each axis
func Scaling(x, y, z float64) Transform {
	return Transform(mgl64.Scale3D(x, y, z))
}

// RotationX rotates radians around the x axis
func RotationX(radians float64) Transform {
	return Transform(mgl64.HomogRotate3DX(radians))
}

// RotationY rotates radians around the y axis
func RotationY(radians float64) Transform {
	return Transform(mgl64.HomogRotate3DY(radians))
}

// RotationZ rotates radians around the z axis
func RotationZ(radians float64) Transform {
	return Transform(mgl64.HomogRotate3DZ(radians))
}

// Shearing moves each component in proportion to the other two:
// xy is "x moved in proportion to y" and so on.
func Shearing(xy, xz, yx, yz, zx, zy float64) Transform {
	return Transform(mgl64.Mat4FromRows(
		mgl64.Vec4{1, xy, xz, 0},
		mgl64.Vec4{yx, 1, yz, 0},
		mgl64.Vec4{zx, zy, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	))
}

// ViewTransform orients the world relative to an eye at from looking at to.
// up only needs to be roughly upward.
func ViewTransform(from, to, up Tuple) Transform {
	forward := to.Sub(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)
	orientation := Transform(mgl64.Mat4FromRows(
		mgl64.Vec4{left.X(), left.Y(), left.Z(), 0},
		mgl64.Vec4{trueUp.X(), trueUp.Y(), trueUp.Z(), 0},
		mgl64.Vec4{-forward.X(), -forward.Y(), -forward.Z(), 0},
		mgl64.Vec4{0, 0, 0, 1},
	))
	return orientation.Mul(Translation(-from.X(), -from.Y(), -from.Z()))
}

// Chain composes transforms in the order they should be applied:
// Chain(a, b, c) applies a first and c last, i.e. c * b * a.
func Chain(ts ...Transform) Transform {
	result := Identity()
	for _, t := range ts {
		result = t.Mul(result)
	}
	return result
}

// Mul returns t * o (o is applied first)
func (t Transform) Mul(o Transform) Transform {
	return Transform(mgl64.Mat4(t).Mul4(mgl64.Mat4(o)))
}

// Apply transforms a point or vector. The w tag is carried through unchanged
// for affine transforms.
func (t Transform) Apply(v Tuple) Tuple {
	return Tuple(mgl64.Mat4(t).Mul4x1(mgl64.Vec4(v)))
}

// Determinant returns the determinant of the matrix
func (t Transform) Determinant() float64 {
	return mgl64.Mat4(t).Det()
}

// singularDeterminant is the largest |det| treated as zero. The determinant
// is cubic in scale, so it must sit far below Epsilon.
const singularDeterminant = 1e-12

// Inverse returns the inverse, or ErrSingularMatrix when the determinant is
// zero or NaN.
func (t Transform) Inverse() (Transform, error) {
	det := t.Determinant()
	if math.Abs(det) <= singularDeterminant || math.IsNaN(det) {
		return Transform{}, ErrSingularMatrix
	}
	return Transform(mgl64.Mat4(t).Inv()), nil
}

// IsInvertible reports whether Inverse would succeed
func (t Transform) IsInvertible() bool {
	_, err := t.Inverse()
	return err == nil
}

// Transpose swaps rows and columns
func (t Transform) Transpose() Transform {
	return Transform(mgl64.Mat4(t).Transpose())
}

// At returns the element at row, col
func (t Transform) At(row, col int) (float64, error) {
	if row < 0 || row > 3 || col < 0 || col > 3 {
		return 0, fmt.Errorf("transform element (%d, %d): %w", row, col, ErrIndexOutOfRange)
	}
	return mgl64.Mat4(t).At(row, col), nil
}

// Equal reports exact element-wise equality
func (t Transform) Equal(o Transform) bool {
	return t == o
}

// ApproxEqual compares every element within Epsilon
func (t Transform) ApproxEqual(o Transform) bool {
	return mgl64.Mat4(t).ApproxEqualThreshold(mgl64.Mat4(o), Epsilon)
}

// IsIdentity reports whether t is (approximately) the identity
func (t Transform) IsIdentity() bool {
	return t.ApproxEqual(Identity())
}

func (t Transform) String() string {
	m := mgl64.Mat4(t)
	return fmt.Sprintf("[%v %v %v %v]", m.Row(0), m.Row(1), m.Row(2), m.Row(3))
}
