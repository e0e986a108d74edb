package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Kind identifies a shape variant
type Kind string

const (
	KindSphere Kind = "sphere"
	KindPlane  Kind = "plane"
)

// Shape is a primitive that can be intersected by rays. Local methods work in
// object space; IntersectWith and WorldNormalAt take world-space input.
// Shapes are mutated only while a scene is built, never during a render.
type Shape interface {
	Kind() Kind

	Transform() core.Transform
	InverseTransform() core.Transform
	SetTransform(t core.Transform) error

	Material() material.Material
	SetMaterial(m material.Material)

	// MaxIntersections is the number of entries LocalIntersect always returns
	MaxIntersections() int
	LocalIntersect(localRay core.Ray) Intersections
	LocalNormalAt(localPoint core.Tuple) core.Tuple

	IntersectWith(worldRay core.Ray) Intersections
	WorldNormalAt(worldPoint core.Tuple) core.Tuple
}

// shapeBase holds the object-to-world transform, its cached inverse and the material
type shapeBase struct {
	transform core.Transform
	inverse   core.Transform
	material  material.Material
}

func newShapeBase() shapeBase {
	return shapeBase{
		transform: core.Identity(),
		inverse:   core.Identity(),
		material:  material.DefaultMaterial(),
	}
}

func (s *shapeBase) Transform() core.Transform        { return s.transform }
func (s *shapeBase) InverseTransform() core.Transform { return s.inverse }
func (s *shapeBase) Material() material.Material      { return s.material }
func (s *shapeBase) SetMaterial(m material.Material)  { s.material = m }

// SetTransform sets the object-to-world transform. A non-invertible
// transform is rejected and the shape keeps its previous transform.
func (s *shapeBase) SetTransform(t core.Transform) error {
	inv, err := t.Inverse()
	if err != nil {
		return fmt.Errorf("shape transform: %w", err)
	}
	s.transform = t
	s.inverse = inv
	return nil
}

// intersectWith takes a world ray into object space and delegates to the shape
func intersectWith(s Shape, worldRay core.Ray) Intersections {
	return s.LocalIntersect(worldRay.Transform(s.InverseTransform()))
}

// worldNormalAt converts a world point to object space, asks the shape for its
// local normal and brings that back with the inverse transpose.
func worldNormalAt(s Shape, worldPoint core.Tuple) core.Tuple {
	inv := s.InverseTransform()
	localNormal := s.LocalNormalAt(inv.Apply(worldPoint))
	n := inv.Transpose().Apply(localNormal)
	return core.Vector(n.X(), n.Y(), n.Z()).Normalize()
}

// Equal reports whether two shapes have the same kind, transform and material
func Equal(a, b Shape) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() &&
		a.Transform().Equal(b.Transform()) &&
		a.Material().Equal(b.Material())
}
