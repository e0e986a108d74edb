package material

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Material holds the Phong surface parameters
type Material struct {
	Colour    core.Colour
	Ambient   float64
	Diffuse   float64
	Specular  float64
	Shininess float64
	Pattern   Pattern // nil means the flat Colour is used
}

// DefaultMaterial returns a white material with standard Phong weights
func DefaultMaterial() Material {
	return Material{
		Colour:    core.White,
		Ambient:   0.1,
		Diffuse:   0.9,
		Specular:  0.9,
		Shininess: 200,
	}
}

// HasPattern reports whether a real pattern is attached. The debug test
// pattern does not count.
func (m Material) HasPattern() bool {
	return m.Pattern != nil && m.Pattern.Kind() != PatternTest
}

// Equal compares all parameters within epsilon, including the pattern
func (m Material) Equal(other Material) bool {
	return m.Colour.ApproxEqual(other.Colour) &&
		core.ApproxEqual(m.Ambient, other.Ambient) &&
		core.ApproxEqual(m.Diffuse, other.Diffuse) &&
		core.ApproxEqual(m.Specular, other.Specular) &&
		core.ApproxEqual(m.Shininess, other.Shininess) &&
		PatternsEqual(m.Pattern, other.Pattern)
}
