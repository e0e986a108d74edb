package core

import "fmt"

// Ray represents a ray with an origin point and a direction vector
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

// NewRay creates a ray, checking that origin is a point and direction a vector
func NewRay(origin, direction Tuple) (Ray, error) {
	if !origin.IsPoint() {
		return Ray{}, fmt.Errorf("ray origin %v: %w", origin, ErrNotPoint)
	}
	if !direction.IsVector() {
		return Ray{}, fmt.Errorf("ray direction %v: %w", direction, ErrNotVector)
	}
	return Ray{Origin: origin, Direction: direction}, nil
}

// MustRay is NewRay for literal rays known to be well formed
func MustRay(origin, direction Tuple) Ray {
	r, err := NewRay(origin, direction)
	if err != nil {
		panic(err)
	}
	return r
}

// PositionAlong returns the point at distance t along the ray
func (r Ray) PositionAlong(t float64) Tuple {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform returns a new ray with m applied to origin and direction
func (r Ray) Transform(m Transform) Ray {
	return Ray{Origin: m.Apply(r.Origin), Direction: m.Apply(r.Direction)}
}
