package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Sphere is a unit sphere centred on the local origin
type Sphere struct {
	shapeBase
}

// NewSphere creates a unit sphere with identity transform and default material
func NewSphere() *Sphere {
	return &Sphere{shapeBase: newShapeBase()}
}

// NewSphereWith creates a sphere with the given transform and material
func NewSphereWith(t core.Transform, m material.Material) (*Sphere, error) {
	s := NewSphere()
	if err := s.SetTransform(t); err != nil {
		return nil, err
	}
	s.SetMaterial(m)
	return s, nil
}

func (s *Sphere) Kind() Kind { return KindSphere }

func (s *Sphere) MaxIntersections() int { return 2 }

// LocalIntersect solves |origin + t*dir|^2 = 1. A miss yields two sentinel
// entries rather than an empty list.
func (s *Sphere) LocalIntersect(localRay core.Ray) Intersections {
	oc := localRay.Origin.Sub(core.Origin)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := localRay.Direction.Dot(localRay.Direction)
	b := 2 * localRay.Direction.Dot(oc)
	c := oc.Dot(oc) - 1

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return Intersections{Miss(), Miss()}
	}
	return Intersections{
		NewIntersection(t0, s),
		NewIntersection(t1, s),
	}
}

// LocalNormalAt returns the vector from the centre to the point
func (s *Sphere) LocalNormalAt(localPoint core.Tuple) core.Tuple {
	return localPoint.Sub(core.Origin)
}

func (s *Sphere) IntersectWith(worldRay core.Ray) Intersections {
	return intersectWith(s, worldRay)
}

func (s *Sphere) WorldNormalAt(worldPoint core.Tuple) core.Tuple {
	return worldNormalAt(s, worldPoint)
}

// solveQuadratic returns the real roots in ascending order. A discriminant
// within epsilon of zero is treated as a double root.
func solveQuadratic(a, b, c float64) (float64, float64, bool) {
	disc := b*b - 4*a*c
	if math.Abs(disc) < core.Epsilon {
		t := -b / (2 * a)
		return t, t, true
	}
	if disc < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(disc)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}
