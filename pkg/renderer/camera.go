package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/canvas"
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// ErrInvalidCamera is returned for non-positive image sizes or a field of
// view outside (0, pi)
var ErrInvalidCamera = errors.New("invalid camera")

// Camera maps pixels to rays. The canvas sits one unit in front of the eye
// at z = -1 in camera space; transform orients the world relative to it.
type Camera struct {
	hsize, vsize int
	fieldOfView  float64
	transform    core.Transform
	inverse      core.Transform

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera and derives its canvas geometry
func NewCamera(hsize, vsize int, fieldOfView float64, transform core.Transform) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidCamera, hsize, vsize)
	}
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("%w: field of view %v", ErrInvalidCamera, fieldOfView)
	}
	inv, err := transform.Inverse()
	if err != nil {
		return nil, fmt.Errorf("camera transform: %w", err)
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   transform,
		inverse:     inv,
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

func (c *Camera) HSize() int                { return c.hsize }
func (c *Camera) VSize() int                { return c.vsize }
func (c *Camera) FieldOfView() float64      { return c.fieldOfView }
func (c *Camera) PixelSize() float64        { return c.pixelSize }
func (c *Camera) Transform() core.Transform { return c.transform }

// RayForPixel returns the world-space ray through the centre of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// +x is to the camera's left because it looks down -z
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.Apply(core.Point(worldX, worldY, -1))
	origin := c.inverse.Apply(core.Origin)
	return core.Ray{Origin: origin, Direction: pixel.Sub(origin).Normalize()}
}

// Render traces every pixel in order on the calling goroutine
func (c *Camera) Render(w *world.World) (*canvas.Canvas, error) {
	img, err := canvas.New(c.hsize, c.vsize)
	if err != nil {
		return nil, err
	}
	img.Fill(func(row, col int) core.Colour {
		return w.ColorAt(c.RayForPixel(col, row))
	})
	return img, nil
}
