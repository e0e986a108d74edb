package loaders

import (
	"fmt"
	"math"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing scene values between builtins
// ---------------------------------------------------------------------------

type sexpTuple struct{ t core.Tuple }

func (s *sexpTuple) SexpString(ps *zygo.PrintState) string { return s.t.String() }
func (s *sexpTuple) Type() *zygo.RegisteredType          { return nil }

type sexpColour struct{ c core.Colour }

func (s *sexpColour) SexpString(ps *zygo.PrintState) string { return s.c.String() }
func (s *sexpColour) Type() *zygo.RegisteredType          { return nil }

type sexpTransform struct{ t core.Transform }

func (s *sexpTransform) SexpString(ps *zygo.PrintState) string { return s.t.String() }
func (s *sexpTransform) Type() *zygo.RegisteredType          { return nil }

type sexpPattern struct{ p material.Pattern }

func (s *sexpPattern) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(pattern :kind :%s)", s.p.Kind())
}
func (s *sexpPattern) Type() *zygo.RegisteredType { return nil }

type sexpMaterial struct{ m material.Material }

func (s *sexpMaterial) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(material :colour %s)", s.m.Colour)
}
func (s *sexpMaterial) Type() *zygo.RegisteredType { return nil }

type sexpShape struct{ s geometry.Shape }

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s)", s.s.Kind())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

type sexpLight struct{ l lights.PointLight }

func (s *sexpLight) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(light :position %s)", s.l.Position)
}
func (s *sexpLight) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds a mixed positional and keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

// lookup returns the first keyword present among names, so :colour and
// :color are interchangeable.
func (a kwArgs) lookup(names ...string) (zygo.Sexp, bool) {
	for _, n := range names {
		if v, ok := a.kw[n]; ok {
			return v, true
		}
	}
	return nil, false
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func describe(s zygo.Sexp) string {
	return fmt.Sprintf("%T (%s)", s, s.SexpString(nil))
}

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", describe(s))
}

func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
	}
	return 0, fmt.Errorf("expected integer, got %s", describe(s))
}

// toKeywordString accepts both a keyword (:stripe) and a plain string ("stripe").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", describe(s))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toFloats(name string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s: expected %d numbers, got %d arguments", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

func toTuple(s zygo.Sexp) (core.Tuple, error) {
	if v, ok := s.(*sexpTuple); ok {
		return v.t, nil
	}
	return core.Tuple{}, fmt.Errorf("expected point or vector, got %s", describe(s))
}

func toPoint(s zygo.Sexp) (core.Tuple, error) {
	t, err := toTuple(s)
	if err != nil {
		return t, err
	}
	if !t.IsPoint() {
		return t, fmt.Errorf("%w: %s", core.ErrNotPoint, t)
	}
	return t, nil
}

func toVector(s zygo.Sexp) (core.Tuple, error) {
	t, err := toTuple(s)
	if err != nil {
		return t, err
	}
	if !t.IsVector() {
		return t, fmt.Errorf("%w: %s", core.ErrNotVector, t)
	}
	return t, nil
}

func toColour(s zygo.Sexp) (core.Colour, error) {
	if v, ok := s.(*sexpColour); ok {
		return v.c, nil
	}
	return core.Colour{}, fmt.Errorf("expected colour, got %s", describe(s))
}

func toTransform(s zygo.Sexp) (core.Transform, error) {
	if v, ok := s.(*sexpTransform); ok {
		return v.t, nil
	}
	return core.Transform{}, fmt.Errorf("expected transform, got %s", describe(s))
}

func toPattern(s zygo.Sexp) (material.Pattern, error) {
	if v, ok := s.(*sexpPattern); ok {
		return v.p, nil
	}
	return nil, fmt.Errorf("expected pattern, got %s", describe(s))
}

func toMaterial(s zygo.Sexp) (material.Material, error) {
	if v, ok := s.(*sexpMaterial); ok {
		return v.m, nil
	}
	return material.Material{}, fmt.Errorf("expected material, got %s", describe(s))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registrar installs one builtin
type registrar func(name string, fn builtinFunc)

// registerBuiltins installs the scene DSL into env. Shapes, lights and the
// camera are recorded on b as they are evaluated.
//
// Source must go through preprocessSource first so :keyword tokens arrive
// as recognizable string literals. Every builtin fails with errHalted once
// halted reports true.
func registerBuiltins(env *zygo.Zlisp, b *sceneBuilder, halted func() bool) {
	add := func(name string, fn builtinFunc) {
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if halted() {
				return zygo.SexpNull, errHalted
			}
			return fn(env, name, args)
		})
	}
	registerValueBuiltins(add)
	registerTransformBuiltins(add)
	registerSurfaceBuiltins(add)
	registerSceneBuiltins(add, b)
}

func registerValueBuiltins(add registrar) {
	// (pi)
	add("pi", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpFloat{Val: math.Pi}, nil
	})

	// (radians 90)
	add("radians", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats(name, args, 1)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpFloat{Val: v[0] * math.Pi / 180}, nil
	})

	// (point 0 1 -5)
	add("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTuple{t: core.Point(v[0], v[1], v[2])}, nil
	})

	// (vector 0 1 0)
	add("vector", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTuple{t: core.Vector(v[0], v[1], v[2])}, nil
	})

	// (colour 1 0.9 0.9), also spelled (color ...)
	colour := func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats(name, args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpColour{c: core.NewColour(v[0], v[1], v[2])}, nil
	}
	add("colour", colour)
	add("color", colour)
}

func registerTransformBuiltins(add registrar) {
	xyz := func(build func(x, y, z float64) core.Transform) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			v, err := toFloats(name, args, 3)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpTransform{t: build(v[0], v[1], v[2])}, nil
		}
	}
	angle := func(build func(r float64) core.Transform) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			v, err := toFloats(name, args, 1)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpTransform{t: build(v[0])}, nil
		}
	}

	add("translate", xyz(core.Translation))
	add("scale", xyz(core.Scaling))
	add("rotate_x", angle(core.RotationX))
	add("rotate_y", angle(core.RotationY))
	add("rotate_z", angle(core.RotationZ))

	// (identity)
	add("identity", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &sexpTransform{t: core.Identity()}, nil
	})

	// (shear xy xz yx yz zx zy)
	add("shear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		v, err := toFloats(name, args, 6)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpTransform{t: core.Shearing(v[0], v[1], v[2], v[3], v[4], v[5])}, nil
	})

	// (chain (scale 2 2 2) (translate 0 1 0)) applies left to right
	add("chain", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ts := make([]core.Transform, 0, len(args))
		for i, a := range args {
			t, err := toTransform(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("chain: argument %d: %w", i+1, err)
			}
			ts = append(ts, t)
		}
		return &sexpTransform{t: core.Chain(ts...)}, nil
	})

	// (view-transform from to up)
	add("view_transform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("view-transform: expected from, to and up, got %d arguments", len(args))
		}
		from, to, up, err := viewArgs(args[0], args[1], args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("view-transform: %w", err)
		}
		return &sexpTransform{t: core.ViewTransform(from, to, up)}, nil
	})
}

func viewArgs(fromS, toS, upS zygo.Sexp) (from, to, up core.Tuple, err error) {
	if from, err = toPoint(fromS); err != nil {
		return from, to, up, fmt.Errorf("from: %w", err)
	}
	if to, err = toPoint(toS); err != nil {
		return from, to, up, fmt.Errorf("to: %w", err)
	}
	if up, err = toVector(upS); err != nil {
		return from, to, up, fmt.Errorf("up: %w", err)
	}
	return from, to, up, nil
}

func registerSurfaceBuiltins(add registrar) {
	// (pattern :kind :stripe :a (colour 1 1 1) :b (colour 0 0 0) :transform (scale 0.5 1 1))
	add("pattern", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		kindSexp, ok := pa.kw["kind"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("pattern: :kind is required")
		}
		kind, err := toKeywordString(kindSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pattern: kind: %w", err)
		}

		a, b := core.White, core.Black
		if v, ok := pa.kw["a"]; ok {
			if a, err = toColour(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: a: %w", err)
			}
		}
		if v, ok := pa.kw["b"]; ok {
			if b, err = toColour(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: b: %w", err)
			}
		}

		p, err := material.NewPattern(material.PatternKind(kind), a, b)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pattern: %w", err)
		}
		if v, ok := pa.kw["transform"]; ok {
			t, err := toTransform(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: transform: %w", err)
			}
			if err := p.SetTransform(t); err != nil {
				return zygo.SexpNull, fmt.Errorf("pattern: %w", err)
			}
		}
		return &sexpPattern{p: p}, nil
	})

	// (material :colour (colour 1 0.2 1) :diffuse 0.7 :specular 0.3 :pattern p)
	add("material", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		m := material.DefaultMaterial()

		if v, ok := pa.lookup("colour", "color"); ok {
			c, err := toColour(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: colour: %w", err)
			}
			m.Colour = c
		}
		for _, field := range []struct {
			key string
			dst *float64
		}{
			{"ambient", &m.Ambient},
			{"diffuse", &m.Diffuse},
			{"specular", &m.Specular},
			{"shininess", &m.Shininess},
		} {
			v, ok := pa.kw[field.key]
			if !ok {
				continue
			}
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: %s: %w", field.key, err)
			}
			if f < 0 {
				return zygo.SexpNull, fmt.Errorf("material: %s must be non-negative, got %v", field.key, f)
			}
			*field.dst = f
		}
		if v, ok := pa.kw["pattern"]; ok {
			p, err := toPattern(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("material: pattern: %w", err)
			}
			m.Pattern = p
		}
		return &sexpMaterial{m: m}, nil
	})
}

func registerSceneBuiltins(add registrar, b *sceneBuilder) {
	shape := func(create func(t core.Transform, m material.Material) (geometry.Shape, error)) builtinFunc {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			t := core.Identity()
			m := material.DefaultMaterial()

			if v, ok := pa.kw["transform"]; ok {
				var err error
				if t, err = toTransform(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: transform: %w", name, err)
				}
			}
			if v, ok := pa.kw["material"]; ok {
				var err error
				if m, err = toMaterial(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("%s: material: %w", name, err)
				}
			}

			s, err := create(t, m)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			b.shapes = append(b.shapes, s)
			return &sexpShape{s: s}, nil
		}
	}

	// (sphere :transform t :material m)
	add("sphere", shape(func(t core.Transform, m material.Material) (geometry.Shape, error) {
		return geometry.NewSphereWith(t, m)
	}))

	// (plane :transform t :material m)
	add("plane", shape(func(t core.Transform, m material.Material) (geometry.Shape, error) {
		return geometry.NewPlaneWith(t, m)
	}))

	// (light :position (point -10 10 -10) :intensity (colour 1 1 1))
	add("light", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		posSexp, ok := pa.kw["position"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("light: :position is required")
		}
		pos, err := toTuple(posSexp)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("light: position: %w", err)
		}
		intensity := core.White
		if v, ok := pa.kw["intensity"]; ok {
			if intensity, err = toColour(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("light: intensity: %w", err)
			}
		}

		l, err := lights.NewPointLight(pos, intensity)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("light: %w", err)
		}
		b.lights = append(b.lights, l)
		return &sexpLight{l: l}, nil
	})

	// (camera :width 200 :height 100 :fov (/ (pi) 3) :from p :to p :up v)
	// (camera :transform (view-transform ...))
	add("camera", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := &cameraSpec{
			width:       b.width,
			height:      b.height,
			fieldOfView: DefaultFieldOfView,
		}

		var err error
		if v, ok := pa.kw["width"]; ok {
			if spec.width, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: width: %w", err)
			}
		}
		if v, ok := pa.kw["height"]; ok {
			if spec.height, err = toInt(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: height: %w", err)
			}
		}
		if v, ok := pa.kw["fov"]; ok {
			if spec.fieldOfView, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: fov: %w", err)
			}
		}

		if v, ok := pa.kw["transform"]; ok {
			if spec.transform, err = toTransform(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("camera: transform: %w", err)
			}
		} else {
			from, to, up := defaultFrom, defaultTo, defaultUp
			if v, ok := pa.kw["from"]; ok {
				if from, err = toPoint(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("camera: from: %w", err)
				}
			}
			if v, ok := pa.kw["to"]; ok {
				if to, err = toPoint(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("camera: to: %w", err)
				}
			}
			if v, ok := pa.kw["up"]; ok {
				if up, err = toVector(v); err != nil {
					return zygo.SexpNull, fmt.Errorf("camera: up: %w", err)
				}
			}
			spec.transform = core.ViewTransform(from, to, up)
		}

		// Validate now so the error carries the script line.
		if _, err := b.withCamera(spec).buildCamera(); err != nil {
			return zygo.SexpNull, fmt.Errorf("camera: %w", err)
		}
		b.camera = spec
		return zygo.SexpNull, nil
	})
}

func (b *sceneBuilder) withCamera(spec *cameraSpec) *sceneBuilder {
	c := *b
	c.camera = spec
	return &c
}
