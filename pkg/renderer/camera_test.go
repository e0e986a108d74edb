package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

func mustCamera(t *testing.T, hsize, vsize int, fov float64, transform core.Transform) *Camera {
	t.Helper()
	c, err := NewCamera(hsize, vsize, fov, transform)
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return c
}

func defaultWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.DefaultWorld()
	if err != nil {
		t.Fatalf("DefaultWorld: %v", err)
	}
	return w
}

func mustRender(t *testing.T, c *Camera, w *world.World) *canvas.Canvas {
	t.Helper()
	img, err := c.Render(w)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return img
}

func TestNewCamera(t *testing.T) {
	c := mustCamera(t, 160, 120, math.Pi/2, core.Identity())
	if c.HSize() != 160 || c.VSize() != 120 || c.FieldOfView() != math.Pi/2 {
		t.Errorf("Unexpected camera fields: %d %d %v", c.HSize(), c.VSize(), c.FieldOfView())
	}
	if !c.Transform().IsIdentity() {
		t.Errorf("Expected identity transform, got %v", c.Transform())
	}
}

func TestNewCamera_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		hsize     int
		vsize     int
		fov       float64
		transform core.Transform
		target    error
	}{
		{"zero width", 0, 10, math.Pi / 2, core.Identity(), ErrInvalidCamera},
		{"negative height", 10, -1, math.Pi / 2, core.Identity(), ErrInvalidCamera},
		{"zero fov", 10, 10, 0, core.Identity(), ErrInvalidCamera},
		{"straight fov", 10, 10, math.Pi, core.Identity(), ErrInvalidCamera},
		{"singular transform", 10, 10, math.Pi / 2, core.Scaling(0, 1, 1), core.ErrSingularMatrix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(tt.hsize, tt.vsize, tt.fov, tt.transform)
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestCamera_PixelSize(t *testing.T) {
	tests := []struct {
		name  string
		hsize int
		vsize int
	}{
		{"horizontal canvas", 200, 125},
		{"vertical canvas", 125, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCamera(t, tt.hsize, tt.vsize, math.Pi/2, core.Identity())
			if !core.ApproxEqual(c.PixelSize(), 0.01) {
				t.Errorf("Expected pixel size 0.01, got %v", c.PixelSize())
			}
		})
	}
}

func TestCamera_RayForPixel(t *testing.T) {
	s2 := math.Sqrt2 / 2

	tests := []struct {
		name      string
		transform core.Transform
		px, py    int
		origin    core.Tuple
		direction core.Tuple
	}{
		{"centre of canvas", core.Identity(), 100, 50, core.Point(0, 0, 0), core.Vector(0, 0, -1)},
		{"corner of canvas", core.Identity(), 0, 0, core.Point(0, 0, 0), core.Vector(0.66519, 0.33259, -0.66851)},
		{
			name:      "transformed camera",
			transform: core.RotationY(math.Pi / 4).Mul(core.Translation(0, -2, 5)),
			px:        100,
			py:        50,
			origin:    core.Point(0, 2, -5),
			direction: core.Vector(s2, 0, -s2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCamera(t, 201, 101, math.Pi/2, tt.transform)
			r := c.RayForPixel(tt.px, tt.py)
			if !r.Origin.ApproxEqual(tt.origin) {
				t.Errorf("Expected origin %v, got %v", tt.origin, r.Origin)
			}
			if !r.Direction.ApproxEqual(tt.direction) {
				t.Errorf("Expected direction %v, got %v", tt.direction, r.Direction)
			}
		})
	}
}

func TestCamera_Render(t *testing.T) {
	w := defaultWorld(t)
	view := core.ViewTransform(core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))
	c := mustCamera(t, 11, 11, math.Pi/2, view)

	img := mustRender(t, c, w)
	got, err := img.At(5, 5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if !got.ApproxEqual(core.NewColour(0.38066, 0.47583, 0.2855)) {
		t.Errorf("Expected colour(0.38066, 0.47583, 0.2855), got %v", got)
	}
}

func TestCamera_RenderIsIdempotent(t *testing.T) {
	w := defaultWorld(t)
	view := core.ViewTransform(core.Point(1, 2, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))
	c := mustCamera(t, 24, 16, math.Pi/3, view)

	if !mustRender(t, c, w).Equal(mustRender(t, c, w)) {
		t.Error("Expected two renders of the same world to be bit-identical")
	}
}

func TestCamera_RenderStoresRowY(t *testing.T) {
	w := defaultWorld(t)
	view := core.ViewTransform(core.Point(1, 2, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0))
	c := mustCamera(t, 7, 3, math.Pi/2, view)

	img := mustRender(t, c, w)
	if img.Width() != 7 || img.Height() != 3 {
		t.Fatalf("Expected 7x3 canvas, got %dx%d", img.Width(), img.Height())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 7; x++ {
			expected := w.ColorAt(c.RayForPixel(x, y))
			if got, _ := img.At(y, x); got != expected {
				t.Errorf("Pixel (%d, %d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}
