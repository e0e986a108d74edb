package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Tuple is a homogeneous 4-component coordinate. The last component tags the
// tuple as a point (1) or a vector (0).
type Tuple mgl64.Vec4

// Point creates a point tuple (w = 1)
func Point(x, y, z float64) Tuple {
	return Tuple{x, y, z, 1}
}

// Vector creates a vector tuple (w = 0)
func Vector(x, y, z float64) Tuple {
	return Tuple{x, y, z, 0}
}

// Origin is the point (0, 0, 0).
var Origin = Point(0, 0, 0)

func (t Tuple) X() float64 { return t[0] }
func (t Tuple) Y() float64 { return t[1] }
func (t Tuple) Z() float64 { return t[2] }
func (t Tuple) W() float64 { return t[3] }

// IsPoint reports whether the tuple is tagged as a point
func (t Tuple) IsPoint() bool {
	return t[3] == 1
}

// IsVector reports whether the tuple is tagged as a vector
func (t Tuple) IsVector() bool {
	return t[3] == 0
}

// Component returns the i-th component (0..3)
func (t Tuple) Component(i int) (float64, error) {
	if i < 0 || i > 3 {
		return 0, fmt.Errorf("tuple component %d: %w", i, ErrIndexOutOfRange)
	}
	return t[i], nil
}

// Add returns t + o. Point + vector yields a point, vector + vector a vector.
func (t Tuple) Add(o Tuple) Tuple {
	return Tuple(mgl64.Vec4(t).Add(mgl64.Vec4(o)))
}

// Sub returns t - o. Point - point yields a vector.
func (t Tuple) Sub(o Tuple) Tuple {
	return Tuple(mgl64.Vec4(t).Sub(mgl64.Vec4(o)))
}

// Negate flips the x, y and z components and keeps the tag.
func (t Tuple) Negate() Tuple {
	return Tuple{-t[0], -t[1], -t[2], t[3]}
}

// Scale multiplies x, y and z by s and keeps the tag.
func (t Tuple) Scale(s float64) Tuple {
	return Tuple{t[0] * s, t[1] * s, t[2] * s, t[3]}
}

// Dot returns the dot product over x, y and z
func (t Tuple) Dot(o Tuple) float64 {
	return t.vec3().Dot(o.vec3())
}

// Cross returns the cross product of two vectors
func (t Tuple) Cross(o Tuple) Tuple {
	return Tuple(t.vec3().Cross(o.vec3()).Vec4(0))
}

// Magnitude returns the length of the x, y, z part
func (t Tuple) Magnitude() float64 {
	return t.vec3().Len()
}

// Normalize returns a unit-length vector in the same direction.
// The result is always tagged as a vector; a zero vector stays zero.
func (t Tuple) Normalize() Tuple {
	v := t.vec3()
	if v.Len() == 0 {
		return Vector(0, 0, 0)
	}
	return Tuple(v.Normalize().Vec4(0))
}

// Reflect reflects the vector around normal
func (t Tuple) Reflect(normal Tuple) Tuple {
	return t.Sub(normal.Scale(2 * t.Dot(normal)))
}

// ApproxEqual compares all four components within Epsilon
func (t Tuple) ApproxEqual(o Tuple) bool {
	return mgl64.Vec4(t).ApproxEqualThreshold(mgl64.Vec4(o), Epsilon)
}

func (t Tuple) String() string {
	if t.IsPoint() {
		return fmt.Sprintf("point(%.5g, %.5g, %.5g)", t[0], t[1], t[2])
	}
	if t.IsVector() {
		return fmt.Sprintf("vector(%.5g, %.5g, %.5g)", t[0], t[1], t[2])
	}
	return fmt.Sprintf("tuple(%.5g, %.5g, %.5g, %.5g)", t[0], t[1], t[2], t[3])
}

func (t Tuple) vec3() mgl64.Vec3 {
	return mgl64.Vec3{t[0], t[1], t[2]}
}
