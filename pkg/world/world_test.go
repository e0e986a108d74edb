package world

import (
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

func defaultWorld(t *testing.T) *World {
	t.Helper()
	w, err := DefaultWorld()
	if err != nil {
		t.Fatalf("DefaultWorld: %v", err)
	}
	return w
}

func TestDefaultWorld(t *testing.T) {
	w, err := DefaultWorld()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(w.Lights()) != 1 || !w.Lights()[0].Equal(lights.PointLight{Position: core.Point(-10, 10, -10), Intensity: core.White}) {
		t.Errorf("Unexpected lights: %+v", w.Lights())
	}

	s1 := geometry.NewSphere()
	m := material.DefaultMaterial()
	m.Colour = core.NewColour(0.8, 1.0, 0.6)
	m.Diffuse = 0.7
	m.Specular = 0.2
	s1.SetMaterial(m)
	s2, err := geometry.NewSphereWith(core.Scaling(0.5, 0.5, 0.5), material.DefaultMaterial())
	if err != nil {
		t.Fatal(err)
	}

	if !w.ContainsShape(s1) || !w.ContainsShape(s2) {
		t.Error("Default world is missing one of its spheres")
	}
	if w.ContainsShape(geometry.NewPlane()) {
		t.Error("Default world must not contain a plane")
	}
}

func TestWorld_MaxIntersections(t *testing.T) {
	w := NewWorld(nil, nil)
	if w.MaxIntersections() != 0 {
		t.Errorf("Expected 0 for an empty world, got %d", w.MaxIntersections())
	}
	w.AddShape(geometry.NewSphere())
	w.AddShape(geometry.NewPlane())
	w.AddShape(geometry.NewSphere())
	if w.MaxIntersections() != 5 {
		t.Errorf("Expected 2+1+2 = 5, got %d", w.MaxIntersections())
	}
}

func TestWorld_IntersectWithRay(t *testing.T) {
	w := defaultWorld(t)
	xs := w.IntersectWithRay(core.MustRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)))

	expected := []float64{4, 4.5, 5.5, 6}
	if len(xs) != len(expected) {
		t.Fatalf("Expected %d intersections, got %d", len(expected), len(xs))
	}
	for i, want := range expected {
		if !core.ApproxEqual(xs[i].T, want) {
			t.Errorf("xs[%d]: expected %v, got %v", i, want, xs[i].T)
		}
	}
}

func TestWorld_IntersectWithRayNeverTruncates(t *testing.T) {
	w := NewWorld(nil, nil)
	for i := 0; i < 20; i++ {
		s := geometry.NewSphere()
		_ = s.SetTransform(core.Translation(0, 0, float64(i*3)))
		w.AddShape(s)
		w.AddShape(geometry.NewPlane())
	}
	xs := w.IntersectWithRay(core.MustRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)))
	if len(xs) != w.MaxIntersections() {
		t.Fatalf("Expected %d entries, got %d", w.MaxIntersections(), len(xs))
	}
	hit, ok := geometry.VisibleHit(xs)
	if !ok || !core.ApproxEqual(hit.T, 4) {
		t.Errorf("Expected nearest hit at 4, got %v", hit)
	}
}

func TestWorld_ShadeHit(t *testing.T) {
	w := defaultWorld(t)
	r := core.MustRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	comps := geometry.PrepareComputation(geometry.NewIntersection(4, w.Shapes()[0]), r)

	got := w.ShadeHit(comps)
	if !got.ApproxEqual(core.NewColour(0.38066, 0.47583, 0.2855)) {
		t.Errorf("Expected colour(0.38066, 0.47583, 0.2855), got %v", got)
	}
}

func TestWorld_ShadeHitInShadow(t *testing.T) {
	s1 := geometry.NewSphere()
	s2 := geometry.NewSphere()
	_ = s2.SetTransform(core.Translation(0, 0, 10))
	w := NewWorld([]geometry.Shape{s1, s2}, []lights.PointLight{
		{Position: core.Point(0, 0, -10), Intensity: core.White},
	})

	r := core.MustRay(core.Point(0, 0, 5), core.Vector(0, 0, 1))
	comps := geometry.PrepareComputation(geometry.NewIntersection(4, s2), r)
	if got := w.ShadeHit(comps); !got.ApproxEqual(core.NewColour(0.1, 0.1, 0.1)) {
		t.Errorf("Expected ambient only, got %v", got)
	}
}

func TestWorld_ShadeHitSumsLights(t *testing.T) {
	w := defaultWorld(t)
	r := core.MustRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	comps := geometry.PrepareComputation(geometry.NewIntersection(4, w.Shapes()[0]), r)
	single := w.ShadeHit(comps)

	w.AddLight(w.Lights()[0])
	double := w.ShadeHit(comps)
	if !double.ApproxEqual(single.Scale(2)) {
		t.Errorf("Expected two identical lights to double the colour: %v vs %v", single, double)
	}
}

func TestWorld_ColorAt(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected core.Colour
	}{
		{"ray misses", core.MustRay(core.Point(0, 0, -5), core.Vector(0, 1, 0)), core.Black},
		{"ray hits", core.MustRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)), core.NewColour(0.38066, 0.47583, 0.2855)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultWorld(t).ColorAt(tt.ray); !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWorld_ColorAtBehindRay(t *testing.T) {
	w := defaultWorld(t)
	outer := w.Shapes()[0]
	m := outer.Material()
	m.Ambient = 1
	outer.SetMaterial(m)
	inner := w.Shapes()[1]
	im := inner.Material()
	im.Ambient = 1
	inner.SetMaterial(im)

	// starting between the spheres the nearest visible hit is the inner one
	got := w.ColorAt(core.MustRay(core.Point(0, 0, 0.75), core.Vector(0, 0, -1)))
	if !got.ApproxEqual(im.Colour) {
		t.Errorf("Expected the inner ambient colour %v, got %v", im.Colour, got)
	}
}

func TestWorld_IsShadowed(t *testing.T) {
	tests := []struct {
		name     string
		point    core.Tuple
		expected bool
	}{
		{"nothing collinear", core.Point(0, 10, 0), false},
		{"object between point and light", core.Point(10, -10, 10), true},
		{"object behind light", core.Point(-20, 20, -20), false},
		{"object behind point", core.Point(-2, 2, -2), false},
		{"clear line of sight", core.Point(20, 20, -20), false},
	}

	w := defaultWorld(t)
	light := w.Lights()[0]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.IsShadowed(tt.point, light); got != tt.expected {
				t.Errorf("Expected shadowed=%v, got %v", tt.expected, got)
			}
		})
	}
}

func TestWorld_PlaneFloorShading(t *testing.T) {
	floor := geometry.NewPlane()
	w := NewWorld([]geometry.Shape{floor}, []lights.PointLight{
		{Position: core.Point(0, 10, 0), Intensity: core.White},
	})
	r := core.MustRay(core.Point(0, 1, 0), core.Vector(0, -1, 0))
	got := w.ColorAt(r)

	// light straight above: ambient + full diffuse + full specular
	want := 0.1 + 0.9 + 0.9
	if !core.ApproxEqual(got.R, want) || math.Abs(got.G-got.B) > core.Epsilon {
		t.Errorf("Expected grey %v, got %v", want, got)
	}
}
