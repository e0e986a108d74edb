package material

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// patternBase holds the transform and two colours shared by every variant
type patternBase struct {
	transform core.Transform
	inverse   core.Transform
	a, b      core.Colour
}

func newPatternBase(a, b core.Colour) patternBase {
	return patternBase{
		transform: core.Identity(),
		inverse:   core.Identity(),
		a:         a,
		b:         b,
	}
}

func (p *patternBase) Transform() core.Transform        { return p.transform }
func (p *patternBase) InverseTransform() core.Transform { return p.inverse }
func (p *patternBase) ColourA() core.Colour             { return p.a }
func (p *patternBase) ColourB() core.Colour             { return p.b }

// SetTransform sets the pattern-to-object transform. Non-invertible
// transforms are rejected and leave the pattern unchanged.
func (p *patternBase) SetTransform(t core.Transform) error {
	inv, err := t.Inverse()
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	p.transform = t
	p.inverse = inv
	return nil
}

func isEven(v float64) bool {
	return math.Mod(v, 2) == 0
}

func lerp(a, b core.Colour, t float64) core.Colour {
	return a.Add(b.Sub(a).Scale(t))
}

// Stripe alternates A and B along x with unit-width bands
type Stripe struct{ patternBase }

// NewStripe creates a stripe pattern
func NewStripe(a, b core.Colour) *Stripe {
	return &Stripe{newPatternBase(a, b)}
}

func (p *Stripe) Kind() PatternKind { return PatternStripe }

func (p *Stripe) ColourAt(point core.Tuple) core.Colour {
	if isEven(math.Floor(point.X())) {
		return p.a
	}
	return p.b
}

// Gradient blends from A to B over each unit interval of x
type Gradient struct{ patternBase }

// NewGradient creates a gradient pattern
func NewGradient(a, b core.Colour) *Gradient {
	return &Gradient{newPatternBase(a, b)}
}

func (p *Gradient) Kind() PatternKind { return PatternGradient }

func (p *Gradient) ColourAt(point core.Tuple) core.Colour {
	x := point.X()
	return lerp(p.a, p.b, x-math.Floor(x))
}

// Ring draws concentric unit-width rings around the y axis
type Ring struct{ patternBase }

// NewRing creates a ring pattern
func NewRing(a, b core.Colour) *Ring {
	return &Ring{newPatternBase(a, b)}
}

func (p *Ring) Kind() PatternKind { return PatternRing }

func (p *Ring) ColourAt(point core.Tuple) core.Colour {
	if isEven(math.Floor(math.Hypot(point.X(), point.Z()))) {
		return p.a
	}
	return p.b
}

// Checker alternates A and B in unit cubes
type Checker struct{ patternBase }

// NewChecker creates a 3D checker pattern
func NewChecker(a, b core.Colour) *Checker {
	return &Checker{newPatternBase(a, b)}
}

func (p *Checker) Kind() PatternKind { return PatternChecker }

func (p *Checker) ColourAt(point core.Tuple) core.Colour {
	sum := math.Floor(point.X()) + math.Floor(point.Y()) + math.Floor(point.Z())
	if isEven(sum) {
		return p.a
	}
	return p.b
}

// Solid is a constant colour A
type Solid struct{ patternBase }

// NewSolid creates a solid pattern. B is unused.
func NewSolid(a core.Colour) *Solid {
	return &Solid{newPatternBase(a, core.Black)}
}

func (p *Solid) Kind() PatternKind { return PatternSolid }

func (p *Solid) ColourAt(point core.Tuple) core.Colour {
	return p.a
}

// RadialGradient blends from A to B by distance from the y axis
type RadialGradient struct{ patternBase }

// NewRadialGradient creates a radial gradient pattern
func NewRadialGradient(a, b core.Colour) *RadialGradient {
	return &RadialGradient{newPatternBase(a, b)}
}

func (p *RadialGradient) Kind() PatternKind { return PatternRadialGradient }

// ColourAt does not wrap: beyond distance 1 the result overflows and is clamped.
func (p *RadialGradient) ColourAt(point core.Tuple) core.Colour {
	c := lerp(p.a, p.b, math.Hypot(point.X(), point.Z()))
	if !c.IsValid() {
		return c.Clamp()
	}
	return c
}

// Blended is the midpoint of A and B everywhere
type Blended struct{ patternBase }

// NewBlended creates a blended pattern
func NewBlended(a, b core.Colour) *Blended {
	return &Blended{newPatternBase(a, b)}
}

func (p *Blended) Kind() PatternKind { return PatternBlended }

func (p *Blended) ColourAt(point core.Tuple) core.Colour {
	return p.a.Add(p.b).Scale(0.5)
}

// TestPattern returns the pattern-space point as a colour. A material
// carrying it is treated as having no pattern.
type TestPattern struct{ patternBase }

// NewTestPattern creates a debug pattern
func NewTestPattern() *TestPattern {
	return &TestPattern{newPatternBase(core.White, core.Black)}
}

func (p *TestPattern) Kind() PatternKind { return PatternTest }

func (p *TestPattern) ColourAt(point core.Tuple) core.Colour {
	return core.NewColour(point.X(), point.Y(), point.Z())
}

// NewPattern creates a pattern by kind
func NewPattern(kind PatternKind, a, b core.Colour) (Pattern, error) {
	switch kind {
	case PatternStripe:
		return NewStripe(a, b), nil
	case PatternGradient:
		return NewGradient(a, b), nil
	case PatternRing:
		return NewRing(a, b), nil
	case PatternChecker:
		return NewChecker(a, b), nil
	case PatternSolid:
		return NewSolid(a), nil
	case PatternRadialGradient:
		return NewRadialGradient(a, b), nil
	case PatternBlended:
		return NewBlended(a, b), nil
	case PatternTest:
		return NewTestPattern(), nil
	}
	return nil, fmt.Errorf("unknown pattern kind %q", kind)
}

// DefaultPattern creates a white/black pattern of the given kind
func DefaultPattern(kind PatternKind) (Pattern, error) {
	return NewPattern(kind, core.White, core.Black)
}

// StrideAtObject evaluates p at a world-space point on obj. The point is
// taken into object space first, then into pattern space.
func StrideAtObject(p Pattern, obj Object, worldPoint core.Tuple) core.Colour {
	objectPoint := obj.InverseTransform().Apply(worldPoint)
	patternPoint := p.InverseTransform().Apply(objectPoint)
	return p.ColourAt(patternPoint)
}

// PatternsEqual compares kind, colours and transform. Two nil patterns are equal.
func PatternsEqual(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() &&
		a.ColourA().ApproxEqual(b.ColourA()) &&
		a.ColourB().ApproxEqual(b.ColourB()) &&
		a.Transform().ApproxEqual(b.Transform())
}
