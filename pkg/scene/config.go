package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// Image size used when a config leaves width or height out
const (
	DefaultWidth  = 400
	DefaultHeight = 225
)

// Vec3 is a JSON triple used for points, vectors and colours
type Vec3 [3]float64

func (v Vec3) point() core.Tuple   { return core.Point(v[0], v[1], v[2]) }
func (v Vec3) vector() core.Tuple  { return core.Vector(v[0], v[1], v[2]) }
func (v Vec3) colour() core.Colour { return core.NewColour(v[0], v[1], v[2]) }

// Config describes a render: which scene, how big and where it goes.
// A scene comes from, in order of precedence, Script, inline Shapes, or
// the built-in named by Scene.
type Config struct {
	Scene    string `json:"scene,omitempty"`
	Script   string `json:"script,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Output   string `json:"output,omitempty"`
	Workers  int    `json:"workers,omitempty"`
	TileSize int    `json:"tileSize,omitempty"`

	Camera *CameraCfg `json:"camera,omitempty"`
	Lights []LightCfg `json:"lights,omitempty"`
	Shapes []ShapeCfg `json:"shapes,omitempty"`
}

// CameraCfg is a look-at camera; the field of view is in degrees
type CameraCfg struct {
	FovDeg float64 `json:"fovDeg"`
	From   Vec3    `json:"from"`
	To     Vec3    `json:"to"`
	Up     Vec3    `json:"up"`
}

type LightCfg struct {
	Position  Vec3  `json:"position"`
	Intensity *Vec3 `json:"intensity,omitempty"` // defaults to white
}

// TransformCfg is applied as scale, then rotations about x, y and z, then
// translation.
type TransformCfg struct {
	Scale     *Vec3 `json:"scale,omitempty"` // defaults 1 on each axis
	RotDeg    Vec3  `json:"rotDeg"`
	Translate Vec3  `json:"translate"`
}

type ShapeCfg struct {
	Kind string `json:"kind"` // "sphere" or "plane"
	TransformCfg
	Material MaterialCfg `json:"material"`
}

// MaterialCfg overrides fields of the default material
type MaterialCfg struct {
	Colour    *Vec3       `json:"colour,omitempty"`
	Ambient   *float64    `json:"ambient,omitempty"`
	Diffuse   *float64    `json:"diffuse,omitempty"`
	Specular  *float64    `json:"specular,omitempty"`
	Shininess *float64    `json:"shininess,omitempty"`
	Pattern   *PatternCfg `json:"pattern,omitempty"`
}

type PatternCfg struct {
	Kind string `json:"kind"`
	A    Vec3   `json:"a"`
	B    Vec3   `json:"b"`
	TransformCfg
}

// LoadConfig reads a JSON config. Width and height default only when the
// file leaves them out; explicit values are kept for the camera to validate.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Config{Width: DefaultWidth, Height: DefaultHeight}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.defaultScene()
	return &cfg, nil
}

func (cfg *Config) defaultScene() {
	if cfg.Scene == "" && cfg.Script == "" && len(cfg.Shapes) == 0 {
		cfg.Scene = "default"
	}
}

// RenderConfig returns the renderer settings, falling back to the
// renderer's defaults for anything unset.
func (cfg *Config) RenderConfig() renderer.RenderConfig {
	rc := renderer.DefaultRenderConfig()
	if cfg.TileSize > 0 {
		rc.TileSize = cfg.TileSize
	}
	if cfg.Workers > 0 {
		rc.NumWorkers = cfg.Workers
	}
	return rc
}

// Build creates the scene the config describes
func (cfg *Config) Build(logger core.Logger) (*Scene, error) {
	cfg.defaultScene()

	switch {
	case cfg.Script != "":
		return LoadScriptFile(cfg.Script, cfg.Width, cfg.Height, logger)
	case len(cfg.Shapes) > 0:
		return cfg.buildInline()
	default:
		return Load(cfg.Scene, cfg.Width, cfg.Height, logger)
	}
}

func (cfg *Config) buildInline() (*Scene, error) {
	b := &builder{}

	for i, sc := range cfg.Shapes {
		m, err := sc.Material.build(b)
		if err != nil {
			return nil, fmt.Errorf("shapes[%d]: %w", i, err)
		}
		t := sc.TransformCfg.build()
		switch sc.Kind {
		case "sphere":
			b.sphere(t, m)
		case "plane":
			b.plane(t, m)
		default:
			return nil, fmt.Errorf("shapes[%d]: unknown kind %q", i, sc.Kind)
		}
	}

	for _, lc := range cfg.Lights {
		intensity := core.White
		if lc.Intensity != nil {
			intensity = lc.Intensity.colour()
		}
		b.light(lc.Position.point(), intensity)
	}

	camera := standardCamera(cfg.Width, cfg.Height)
	if c := cfg.Camera; c != nil {
		camera.FieldOfView = c.FovDeg * math.Pi / 180
		camera.From = c.From.point()
		camera.To = c.To.point()
		camera.Up = c.Up.vector()
	}

	name := cfg.Scene
	if name == "" {
		name = "config"
	}
	return b.build(name, camera)
}

func (tc TransformCfg) build() core.Transform {
	scale := Vec3{1, 1, 1}
	if tc.Scale != nil {
		scale = *tc.Scale
	}
	deg := math.Pi / 180
	return core.Chain(
		core.Scaling(scale[0], scale[1], scale[2]),
		core.RotationX(tc.RotDeg[0]*deg),
		core.RotationY(tc.RotDeg[1]*deg),
		core.RotationZ(tc.RotDeg[2]*deg),
		core.Translation(tc.Translate[0], tc.Translate[1], tc.Translate[2]),
	)
}

func (mc MaterialCfg) build(b *builder) (material.Material, error) {
	m := material.DefaultMaterial()
	if mc.Colour != nil {
		m.Colour = mc.Colour.colour()
	}
	for _, f := range []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"ambient", mc.Ambient, &m.Ambient},
		{"diffuse", mc.Diffuse, &m.Diffuse},
		{"specular", mc.Specular, &m.Specular},
		{"shininess", mc.Shininess, &m.Shininess},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return m, fmt.Errorf("material %s must be non-negative, got %v", f.name, *f.src)
		}
		*f.dst = *f.src
	}
	if pc := mc.Pattern; pc != nil {
		m.Pattern = b.pattern(material.PatternKind(pc.Kind), pc.A.colour(), pc.B.colour(), pc.TransformCfg.build())
		if b.err != nil {
			return m, b.err
		}
	}
	return m, nil
}
