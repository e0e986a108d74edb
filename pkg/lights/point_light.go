package lights

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// PointLight is an infinitesimal light source with no falloff
type PointLight struct {
	Position  core.Tuple  // Must be a point
	Intensity core.Colour // Colour and brightness
}

// NewPointLight creates a point light, rejecting a position that is not a point
func NewPointLight(position core.Tuple, intensity core.Colour) (PointLight, error) {
	if !position.IsPoint() {
		return PointLight{}, fmt.Errorf("light position %v: %w", position, core.ErrNotPoint)
	}
	return PointLight{Position: position, Intensity: intensity}, nil
}

func (l PointLight) Type() LightType {
	return LightTypePoint
}

// Equal compares position and intensity within epsilon
func (l PointLight) Equal(other PointLight) bool {
	return l.Position.ApproxEqual(other.Position) && l.Intensity.ApproxEqual(other.Intensity)
}
