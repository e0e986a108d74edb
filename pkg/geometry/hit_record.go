package geometry

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// HitRecord holds the shading inputs derived from one intersection
type HitRecord struct {
	T           float64    // Parameter t along the ray
	Shape       Shape      // Shape that was hit
	Point       core.Tuple // Point of intersection
	EyeVector   core.Tuple // Towards the ray origin
	Normal      core.Tuple // Surface normal, flipped to face the eye
	Inside      bool       // Whether the ray started inside the shape
	BiasedPoint core.Tuple // Point nudged along the normal for shadow and colour lookups
}

// PrepareComputation derives a HitRecord from a visible intersection and the
// ray that produced it. i must not be a miss.
func PrepareComputation(i Intersection, ray core.Ray) HitRecord {
	point := ray.PositionAlong(i.T)
	eye := ray.Direction.Negate()
	normal := i.Shape.WorldNormalAt(point)

	inside := false
	if normal.Dot(eye) < 0 {
		inside = true
		normal = normal.Negate()
	}

	return HitRecord{
		T:           i.T,
		Shape:       i.Shape,
		Point:       point,
		EyeVector:   eye,
		Normal:      normal,
		Inside:      inside,
		BiasedPoint: point.Add(normal.Scale(core.Epsilon)),
	}
}
