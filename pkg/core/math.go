package core

import "math"

// Epsilon is the tolerance used for float comparisons, degenerate-geometry
// tests and the shadow-acne bias.
const Epsilon = 1e-4

// ApproxEqual reports whether a and b differ by less than Epsilon.
// Infinities of the same sign compare equal.
func ApproxEqual(a, b float64) bool {
	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}
	return math.Abs(a-b) < Epsilon
}
