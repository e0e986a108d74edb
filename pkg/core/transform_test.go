package core

import (
	"errors"
	"math"
	"testing"
)

func TestTransform_Apply(t *testing.T) {
	tests := []struct {
		name      string
		transform Transform
		input     Tuple
		expected  Tuple
	}{
		{"translate point", Translation(5, -3, 2), Point(-3, 4, 5), Point(2, 1, 7)},
		{"translate leaves vector", Translation(5, -3, 2), Vector(-3, 4, 5), Vector(-3, 4, 5)},
		{"scale point", Scaling(2, 3, 4), Point(-4, 6, 8), Point(-8, 18, 32)},
		{"scale vector", Scaling(2, 3, 4), Vector(-4, 6, 8), Vector(-8, 18, 32)},
		{"reflect by negative scale", Scaling(-1, 1, 1), Point(2, 3, 4), Point(-2, 3, 4)},
		{"rotate x quarter", RotationX(math.Pi / 2), Point(0, 1, 0), Point(0, 0, 1)},
		{"rotate y quarter", RotationY(math.Pi / 2), Point(0, 0, 1), Point(1, 0, 0)},
		{"rotate z quarter", RotationZ(math.Pi / 2), Point(0, 1, 0), Point(-1, 0, 0)},
		{"shear x by y", Shearing(1, 0, 0, 0, 0, 0), Point(2, 3, 4), Point(5, 3, 4)},
		{"shear z by y", Shearing(0, 0, 0, 0, 0, 1), Point(2, 3, 4), Point(2, 3, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transform.Apply(tt.input)
			if !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTransform_Chain(t *testing.T) {
	p := Point(1, 0, 1)
	chained := Chain(RotationX(math.Pi/2), Scaling(5, 5, 5), Translation(10, 5, 7))
	if got := chained.Apply(p); !got.ApproxEqual(Point(15, 0, 7)) {
		t.Errorf("Expected point(15, 0, 7), got %v", got)
	}
	explicit := Translation(10, 5, 7).Mul(Scaling(5, 5, 5)).Mul(RotationX(math.Pi / 2))
	if !chained.ApproxEqual(explicit) {
		t.Errorf("Chain should equal explicit left multiplication")
	}
}

func TestTransform_Inverse(t *testing.T) {
	m := Chain(Scaling(2, 3, 4), RotationY(0.3), Translation(1, -2, 3))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !m.Mul(inv).IsIdentity() {
		t.Errorf("Expected M * inverse(M) to be identity, got %v", m.Mul(inv))
	}

	p := Point(-4, 6, 8)
	if got := inv.Apply(m.Apply(p)); !got.ApproxEqual(p) {
		t.Errorf("Expected round trip to %v, got %v", p, got)
	}
}

func TestTransform_InverseSmallScale(t *testing.T) {
	tests := []struct {
		name string
		m    Transform
	}{
		{"uniform 0.01", Scaling(0.01, 0.01, 0.01)},
		{"uniform 0.04", Scaling(0.04, 0.04, 0.04)},
		{"scaled and moved", Chain(Scaling(0.03, 0.03, 0.03), Translation(0, 0, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Inverse()
			if err != nil {
				t.Fatalf("Expected an inverse, got %v", err)
			}
			p := Point(0.5, -0.25, 2)
			if got := inv.Apply(tt.m.Apply(p)); !got.ApproxEqual(p) {
				t.Errorf("Expected round trip to %v, got %v", p, got)
			}
			if !tt.m.Mul(inv).IsIdentity() {
				t.Errorf("Expected M * inverse(M) to be identity, got %v", tt.m.Mul(inv))
			}
		})
	}
}

func TestTransform_InverseSingular(t *testing.T) {
	_, err := Scaling(1, 0, 1).Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}
	if Scaling(0, 1, 1).IsInvertible() {
		t.Error("Expected zero scale to be non-invertible")
	}
}

func TestTransform_TransposeAndAt(t *testing.T) {
	m := Shearing(1, 2, 3, 4, 5, 6)
	tr := m.Transpose()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a, _ := m.At(row, col)
			b, _ := tr.At(col, row)
			if a != b {
				t.Errorf("Transpose mismatch at (%d, %d): %v vs %v", row, col, a, b)
			}
		}
	}
	if v, _ := m.At(0, 1); v != 1 {
		t.Errorf("Expected element (0, 1) = 1, got %v", v)
	}
	if _, err := m.At(4, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if !Identity().Transpose().Equal(Identity()) {
		t.Error("Expected identity to be its own transpose")
	}
}

func TestViewTransform(t *testing.T) {
	tests := []struct {
		name     string
		from     Tuple
		to       Tuple
		up       Tuple
		expected Transform
	}{
		{
			name:     "default orientation",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, -1),
			up:       Vector(0, 1, 0),
			expected: Identity(),
		},
		{
			name:     "looking in positive z",
			from:     Point(0, 0, 0),
			to:       Point(0, 0, 1),
			up:       Vector(0, 1, 0),
			expected: Scaling(-1, 1, -1),
		},
		{
			name:     "moves the world",
			from:     Point(0, 0, 8),
			to:       Point(0, 0, 0),
			up:       Vector(0, 1, 0),
			expected: Translation(0, 0, -8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewTransform(tt.from, tt.to, tt.up)
			if !got.ApproxEqual(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestViewTransform_Arbitrary(t *testing.T) {
	got := ViewTransform(Point(1, 3, 2), Point(4, -2, 8), Vector(1, 1, 0))
	rows := [4][4]float64{
		{-0.50709, 0.50709, 0.67612, -2.36643},
		{0.76772, 0.60609, 0.12122, -2.82843},
		{-0.35857, 0.59761, -0.71714, 0.00000},
		{0.00000, 0.00000, 0.00000, 1.00000},
	}
	for row := range rows {
		for col := range rows[row] {
			v, _ := got.At(row, col)
			if !ApproxEqual(v, rows[row][col]) {
				t.Errorf("Element (%d, %d): expected %v, got %v", row, col, rows[row][col], v)
			}
		}
	}
}
