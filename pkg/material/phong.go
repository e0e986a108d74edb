package material

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Lighting shades a point with the Phong model for a single light.
// point should be the biased surface point. The result is not clamped.
func Lighting(m Material, obj Object, light lights.PointLight, point, eye, normal core.Tuple, inShadow bool) core.Colour {
	base := m.Colour
	if m.HasPattern() {
		base = StrideAtObject(m.Pattern, obj, point)
	}

	effective := base.Hadamard(light.Intensity)
	ambient := effective.Scale(m.Ambient)
	if inShadow {
		return ambient
	}

	lightDir := light.Position.Sub(point).Normalize()
	lightDotNormal := lightDir.Dot(normal)

	diffuse := core.Black
	specular := core.Black
	if lightDotNormal >= 0 {
		diffuse = effective.Scale(m.Diffuse * lightDotNormal)

		reflectDotEye := lightDir.Negate().Reflect(normal).Dot(eye)
		if reflectDotEye > 0 {
			specular = light.Intensity.Scale(m.Specular * math.Pow(reflectDotEye, m.Shininess))
		}
	}

	return ambient.Add(diffuse).Add(specular)
}
