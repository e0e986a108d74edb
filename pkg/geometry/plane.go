package geometry

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Plane is the infinite x-z plane through the local origin
type Plane struct {
	shapeBase
}

// NewPlane creates a plane with identity transform and default material
func NewPlane() *Plane {
	return &Plane{shapeBase: newShapeBase()}
}

// NewPlaneWith creates a plane with the given transform and material
func NewPlaneWith(t core.Transform, m material.Material) (*Plane, error) {
	p := NewPlane()
	if err := p.SetTransform(t); err != nil {
		return nil, err
	}
	p.SetMaterial(m)
	return p, nil
}

func (p *Plane) Kind() Kind { return KindPlane }

func (p *Plane) MaxIntersections() int { return 1 }

// LocalIntersect returns one entry. A ray parallel to the plane yields the
// miss sentinel.
func (p *Plane) LocalIntersect(localRay core.Ray) Intersections {
	if math.Abs(localRay.Direction.Y()) < core.Epsilon {
		return Intersections{Miss()}
	}
	t := -localRay.Origin.Y() / localRay.Direction.Y()
	return Intersections{NewIntersection(t, p)}
}

// LocalNormalAt is constant: the plane faces +y everywhere
func (p *Plane) LocalNormalAt(localPoint core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}

func (p *Plane) IntersectWith(worldRay core.Ray) Intersections {
	return intersectWith(p, worldRay)
}

func (p *Plane) WorldNormalAt(worldPoint core.Tuple) core.Tuple {
	return worldNormalAt(p, worldPoint)
}
