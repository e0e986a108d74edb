package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// PatternKind identifies a pattern variant
type PatternKind string

const (
	PatternStripe         PatternKind = "stripe"
	PatternGradient       PatternKind = "gradient"
	PatternRing           PatternKind = "ring"
	PatternChecker        PatternKind = "checker"
	PatternSolid          PatternKind = "solid"
	PatternRadialGradient PatternKind = "radial-gradient"
	PatternBlended        PatternKind = "blended"
	PatternTest           PatternKind = "test"
)

// PatternKinds lists every pattern variant in a stable order
var PatternKinds = []PatternKind{
	PatternStripe, PatternGradient, PatternRing, PatternChecker,
	PatternSolid, PatternRadialGradient, PatternBlended, PatternTest,
}

// Pattern provides a spatially-varying colour for a material.
// ColourAt receives a point already in pattern space.
type Pattern interface {
	Kind() PatternKind
	ColourAt(point core.Tuple) core.Colour

	Transform() core.Transform
	InverseTransform() core.Transform
	SetTransform(t core.Transform) error

	ColourA() core.Colour
	ColourB() core.Colour
}

// Object is the part of a shape that pattern evaluation needs
type Object interface {
	InverseTransform() core.Transform
}
