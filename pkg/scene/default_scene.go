package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewDefaultScene creates the room scene: a floor and two walls made of
// flattened spheres, with three spheres in front of them.
func NewDefaultScene(width, height int) (*Scene, error) {
	b := &builder{}

	b.sphere(core.Scaling(10, 0.01, 10), matte())
	b.sphere(wallTransform(-math.Pi/4), matte())
	b.sphere(wallTransform(math.Pi/4), matte())

	b.sphere(core.Translation(-0.5, 1, 0.5),
		phong(core.NewColour(0.1, 1, 0.5), 0.7, 0.3))
	b.sphere(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)),
		phong(core.NewColour(0.5, 1, 0.1), 0.7, 0.3))
	b.sphere(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)),
		phong(core.NewColour(1, 0.8, 0.1), 0.7, 0.3))

	b.light(core.Point(-10, 10, -10), core.White)

	return b.build("default", standardCamera(width, height))
}

// NewPlaneScene creates a floor and a roof plane with three spheres between
// them, seen from the right.
func NewPlaneScene(width, height int) (*Scene, error) {
	b := &builder{}

	b.plane(core.Identity(), matte())

	roof := material.DefaultMaterial()
	roof.Colour = core.NewColour(0.2, 0.9, 0.1)
	roof.Specular = 0.1
	b.plane(core.Translation(0, 10, 0), roof)

	b.sphere(core.Translation(-0.5, 1, 0.5),
		phong(core.NewColour(0.1, 1, 0.5), 0.7, 0.3))
	b.sphere(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)),
		phong(core.NewColour(0.5, 1, 0.1), 0.7, 0.3))
	b.sphere(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-1.5, 0.33, -0.75)),
		phong(core.NewColour(0.1, 0.8, 0.1), 0.7, 0.3))

	b.light(core.Point(-5, 5, -2), core.White)

	return b.build("plane", CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: math.Pi / 3,
		From:        core.Point(5, 2.5, -5),
		To:          core.Point(-3, 2.2, 0),
		Up:          core.Vector(0, 1, 0),
	})
}

// NewPatternScene creates the room scene with a checkered floor plane and
// striped walls and spheres.
func NewPatternScene(width, height int) (*Scene, error) {
	b := &builder{}
	green, blue := core.Green, core.Blue

	withPattern := func(m material.Material, p material.Pattern) material.Material {
		m.Pattern = p
		return m
	}
	plain := func(ambient, diffuse, specular float64) material.Material {
		m := material.DefaultMaterial()
		m.Ambient = ambient
		m.Diffuse = diffuse
		m.Specular = specular
		return m
	}

	floorPattern := b.pattern(material.PatternChecker, green, blue, core.Identity())
	b.plane(core.Scaling(10, 0.01, 10), withPattern(plain(0.1, 0.9, 0), floorPattern))

	// One stripe pattern is shared by both walls and the small spheres.
	stripes := b.pattern(material.PatternStripe, green, blue, core.Identity())
	b.sphere(wallTransform(-math.Pi/4), withPattern(plain(0.1, 0.9, 0), stripes))
	b.sphere(wallTransform(math.Pi/4), withPattern(plain(0.1, 0.9, 0.2), stripes))
	b.sphere(core.Chain(core.Scaling(0.33, 0.33, 0.33), core.Translation(-2, 0.33, -0.75)),
		withPattern(plain(0.1, 0.7, 0.3), stripes))
	b.sphere(core.Chain(core.Scaling(0.5, 0.5, 0.5), core.Translation(1.5, 0.5, -0.5)),
		withPattern(plain(0.1, 0.7, 0.3), stripes))

	middle := core.Chain(core.Scaling(1.3, 1.3, 1.3), core.Translation(-0.5, 1, 0.5))
	middleStripes := b.pattern(material.PatternStripe, green, blue, middle)
	b.sphere(middle, withPattern(plain(0.7, 0.3, 0.9), middleStripes))

	b.light(core.Point(-10, 10, -10), core.White)

	return b.build("pattern", standardCamera(width, height))
}

// Silhouette framing: rays leave (0, 0, -5) towards a 7x7 wall at z = 10.
const (
	silhouetteWallSize = 7.0
	silhouetteWallZ    = 10.0
	silhouetteEyeZ     = -5.0
)

// NewSilhouetteScene creates a single purple unit sphere framed so that it
// fills the middle of the image.
func NewSilhouetteScene(width, height int) (*Scene, error) {
	b := &builder{}

	m := material.DefaultMaterial()
	m.Colour = core.NewColour(1, 0.2, 1)
	b.sphere(core.Identity(), m)

	b.light(core.Point(-10, 10, -10), core.White)

	return b.build("silhouette", silhouetteCamera(width, height))
}

// NewSphereOnWallScene creates the unshaded silhouette: every pixel that
// sees the unit sphere is pure red and everything else is black.
func NewSphereOnWallScene(width, height int) (*Scene, error) {
	b := &builder{}
	b.sphere(core.Identity(), flat(core.Red))
	b.light(core.Point(-10, 10, -10), core.White)

	return b.build("sphere-on-wall", silhouetteCamera(width, height))
}

// Clock face geometry in world units.
const (
	clockRadius    = 1.0
	clockMarkSize  = 0.06
	clockHourAngle = math.Pi / 6
)

// NewClockScene marks the twelve hours of a clock face with small flat
// spheres. Each mark is the twelve o'clock position turned clockwise
// about z, plus one mark at the centre.
func NewClockScene(width, height int) (*Scene, error) {
	b := &builder{}
	mark := core.Scaling(clockMarkSize, clockMarkSize, clockMarkSize)

	b.sphere(mark, flat(core.White))
	for hour := 0; hour < 12; hour++ {
		b.sphere(core.Chain(
			mark,
			core.Translation(0, clockRadius, 0),
			core.RotationZ(float64(hour)*-clockHourAngle),
		), flat(core.White))
	}
	b.light(core.Point(0, 0, silhouetteEyeZ), core.White)

	return b.build("clock", silhouetteCamera(width, height))
}

// silhouetteCamera looks down +z from the eye at the origin, seeing
// exactly the silhouette wall.
func silhouetteCamera(width, height int) CameraConfig {
	return CameraConfig{
		Width:       width,
		Height:      height,
		FieldOfView: 2 * math.Atan((silhouetteWallSize/2)/(silhouetteWallZ-silhouetteEyeZ)),
		From:        core.Point(0, 0, silhouetteEyeZ),
		To:          core.Point(0, 0, 0),
		Up:          core.Vector(0, 1, 0),
	}
}
