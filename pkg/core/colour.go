package core

import (
	"fmt"
	"math"
)

// Colour is a linear RGB triple. Components are nominally in [0, 1] but
// intermediate shading results may exceed that range.
type Colour struct {
	R, G, B float64
}

var (
	Black = Colour{0, 0, 0}
	White = Colour{1, 1, 1}
	Red   = Colour{1, 0, 0}
	Green = Colour{0, 1, 0}
	Blue  = Colour{0, 0, 1}
)

// NewColour creates a colour from its components
func NewColour(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b}
}

// Add returns the component-wise sum
func (c Colour) Add(o Colour) Colour {
	return Colour{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Sub returns the component-wise difference
func (c Colour) Sub(o Colour) Colour {
	return Colour{c.R - o.R, c.G - o.G, c.B - o.B}
}

// Scale multiplies every component by s
func (c Colour) Scale(s float64) Colour {
	return Colour{c.R * s, c.G * s, c.B * s}
}

// Hadamard returns the component-wise product
func (c Colour) Hadamard(o Colour) Colour {
	return Colour{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Clamp limits each component to [0, 1]. NaN becomes 0.
func (c Colour) Clamp() Colour {
	return Colour{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

// IsValid reports whether every component is a finite value in [0, 1]
func (c Colour) IsValid() bool {
	for _, v := range [3]float64{c.R, c.G, c.B} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Component returns R, G or B for i = 0, 1, 2
func (c Colour) Component(i int) (float64, error) {
	switch i {
	case 0:
		return c.R, nil
	case 1:
		return c.G, nil
	case 2:
		return c.B, nil
	}
	return 0, fmt.Errorf("colour component %d: %w", i, ErrIndexOutOfRange)
}

// ApproxEqual compares components within Epsilon
func (c Colour) ApproxEqual(o Colour) bool {
	return ApproxEqual(c.R, o.R) && ApproxEqual(c.G, o.G) && ApproxEqual(c.B, o.B)
}

func (c Colour) String() string {
	return fmt.Sprintf("colour(%.5g, %.5g, %.5g)", c.R, c.G, c.B)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
