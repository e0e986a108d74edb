package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/world"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *world.World
	Camera *renderer.Camera
}

// CameraConfig describes a look-at camera
type CameraConfig struct {
	Width       int
	Height      int
	FieldOfView float64 // radians
	From        core.Tuple
	To          core.Tuple
	Up          core.Tuple
}

// NewCamera builds the camera described by cfg
func (cfg CameraConfig) NewCamera() (*renderer.Camera, error) {
	return renderer.NewCamera(cfg.Width, cfg.Height, cfg.FieldOfView,
		core.ViewTransform(cfg.From, cfg.To, cfg.Up))
}

// builder accumulates shapes and lights for the built-in scenes and keeps
// the first error, so scene constructors read as a flat list of parts.
type builder struct {
	shapes []geometry.Shape
	lights []lights.PointLight
	err    error
}

func (b *builder) sphere(t core.Transform, m material.Material) {
	if b.err != nil {
		return
	}
	s, err := geometry.NewSphereWith(t, m)
	if err != nil {
		b.err = fmt.Errorf("sphere: %w", err)
		return
	}
	b.shapes = append(b.shapes, s)
}

func (b *builder) plane(t core.Transform, m material.Material) {
	if b.err != nil {
		return
	}
	p, err := geometry.NewPlaneWith(t, m)
	if err != nil {
		b.err = fmt.Errorf("plane: %w", err)
		return
	}
	b.shapes = append(b.shapes, p)
}

func (b *builder) light(position core.Tuple, intensity core.Colour) {
	if b.err != nil {
		return
	}
	l, err := lights.NewPointLight(position, intensity)
	if err != nil {
		b.err = fmt.Errorf("light: %w", err)
		return
	}
	b.lights = append(b.lights, l)
}

// pattern creates a pattern with a transform, recording any error
func (b *builder) pattern(kind material.PatternKind, a, c core.Colour, t core.Transform) material.Pattern {
	p, err := material.NewPattern(kind, a, c)
	if err != nil {
		b.err = err
		return nil
	}
	if err := p.SetTransform(t); err != nil && b.err == nil {
		b.err = fmt.Errorf("pattern: %w", err)
	}
	return p
}

func (b *builder) build(name string, cfg CameraConfig) (*Scene, error) {
	if b.err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, b.err)
	}
	camera, err := cfg.NewCamera()
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return &Scene{
		Name:   name,
		World:  world.NewWorld(b.shapes, b.lights),
		Camera: camera,
	}, nil
}

// phong returns the default material with colour, diffuse and specular set
func phong(colour core.Colour, diffuse, specular float64) material.Material {
	m := material.DefaultMaterial()
	m.Colour = colour
	m.Diffuse = diffuse
	m.Specular = specular
	return m
}

// matte is the flat off-white used for floors and walls
func matte() material.Material {
	m := material.DefaultMaterial()
	m.Colour = core.NewColour(1, 0.9, 0.9)
	m.Specular = 0
	return m
}

// flat shows colour at full strength regardless of light direction
func flat(colour core.Colour) material.Material {
	m := material.DefaultMaterial()
	m.Colour = colour
	m.Ambient = 1
	m.Diffuse = 0
	m.Specular = 0
	return m
}

// wallTransform flattens a unit sphere into a wall five units back,
// turned by yaw around the vertical axis.
func wallTransform(yaw float64) core.Transform {
	return core.Chain(
		core.Scaling(10, 0.01, 10),
		core.RotationX(math.Pi/2),
		core.RotationY(yaw),
		core.Translation(0, 0, 5),
	)
}

// standardCamera is the look-at camera shared by the room scenes
func standardCamera(width, height int) CameraConfig {
	return CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
}
