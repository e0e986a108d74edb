package world

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// World is an ordered collection of shapes and point lights. It is built
// once and then only read while rendering, so concurrent ColorAt calls are safe.
type World struct {
	shapes           []geometry.Shape
	lights           []lights.PointLight
	maxIntersections int
}

// NewWorld creates a world from the given shapes and lights
func NewWorld(shapes []geometry.Shape, pointLights []lights.PointLight) *World {
	w := &World{}
	for _, s := range shapes {
		w.AddShape(s)
	}
	for _, l := range pointLights {
		w.AddLight(l)
	}
	return w
}

// AddShape appends a shape and grows the intersection capacity to match
func (w *World) AddShape(s geometry.Shape) {
	w.shapes = append(w.shapes, s)
	w.maxIntersections += s.MaxIntersections()
}

// AddLight appends a point light
func (w *World) AddLight(l lights.PointLight) {
	w.lights = append(w.lights, l)
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []geometry.Shape {
	return w.shapes
}

// Lights returns the lights in insertion order
func (w *World) Lights() []lights.PointLight {
	return w.lights
}

// ContainsShape reports whether an equal shape is in the world
func (w *World) ContainsShape(s geometry.Shape) bool {
	for _, candidate := range w.shapes {
		if geometry.Equal(candidate, s) {
			return true
		}
	}
	return false
}

// MaxIntersections is the sum of every shape's maximum intersection count
func (w *World) MaxIntersections() int {
	return w.maxIntersections
}

// IntersectWithRay collects the intersections of every shape with ray, sorted
// so that the visible hit (if any) comes first.
func (w *World) IntersectWithRay(ray core.Ray) geometry.Intersections {
	xs := make(geometry.Intersections, 0, w.maxIntersections)
	for _, s := range w.shapes {
		xs = append(xs, s.IntersectWith(ray)...)
	}
	geometry.SortIntersections(xs)
	return xs
}

// IsShadowed reports whether something lies between point and the light
func (w *World) IsShadowed(point core.Tuple, light lights.PointLight) bool {
	toLight := light.Position.Sub(point)
	distance := toLight.Magnitude()
	shadowRay := core.Ray{Origin: point, Direction: toLight.Normalize()}

	hit, ok := geometry.VisibleHit(w.IntersectWithRay(shadowRay))
	return ok && hit.T < distance
}

// ShadeHit sums the contribution of every light at the hit. Shadow tests and
// colour lookups use the biased point.
func (w *World) ShadeHit(comps geometry.HitRecord) core.Colour {
	result := core.Black
	m := comps.Shape.Material()
	for _, light := range w.lights {
		shadowed := w.IsShadowed(comps.BiasedPoint, light)
		result = result.Add(material.Lighting(m, comps.Shape, light,
			comps.BiasedPoint, comps.EyeVector, comps.Normal, shadowed))
	}
	return result
}

// ColorAt traces ray into the world and returns the shaded colour, or black
// when nothing is hit.
func (w *World) ColorAt(ray core.Ray) core.Colour {
	hit, ok := geometry.VisibleHit(w.IntersectWithRay(ray))
	if !ok {
		return core.Black
	}
	return w.ShadeHit(geometry.PrepareComputation(hit, ray))
}

// DefaultWorld returns the two concentric spheres lit from the upper left
func DefaultWorld() (*World, error) {
	light := lights.PointLight{Position: core.Point(-10, 10, -10), Intensity: core.White}

	outer := geometry.NewSphere()
	m := material.DefaultMaterial()
	m.Colour = core.NewColour(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	outer.SetMaterial(m)

	inner, err := geometry.NewSphereWith(core.Scaling(0.5, 0.5, 0.5), material.DefaultMaterial())
	if err != nil {
		return nil, fmt.Errorf("default world: %w", err)
	}

	return NewWorld([]geometry.Shape{outer, inner}, []lights.PointLight{light}), nil
}
