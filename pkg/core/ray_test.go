package core

import (
	"errors"
	"testing"
)

func TestNewRay_Validation(t *testing.T) {
	if _, err := NewRay(Vector(1, 2, 3), Vector(4, 5, 6)); !errors.Is(err, ErrNotPoint) {
		t.Errorf("Expected ErrNotPoint, got %v", err)
	}
	if _, err := NewRay(Point(1, 2, 3), Point(4, 5, 6)); !errors.Is(err, ErrNotVector) {
		t.Errorf("Expected ErrNotVector, got %v", err)
	}
	r, err := NewRay(Point(1, 2, 3), Vector(4, 5, 6))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !r.Origin.ApproxEqual(Point(1, 2, 3)) || !r.Direction.ApproxEqual(Vector(4, 5, 6)) {
		t.Errorf("Ray fields not stored: %+v", r)
	}
}

func TestRay_PositionAlong(t *testing.T) {
	r := MustRay(Point(2, 3, 4), Vector(1, 0, 0))
	tests := []struct {
		t        float64
		expected Tuple
	}{
		{0, Point(2, 3, 4)},
		{1, Point(3, 3, 4)},
		{-1, Point(1, 3, 4)},
		{2.5, Point(4.5, 3, 4)},
	}
	for _, tt := range tests {
		if got := r.PositionAlong(tt.t); !got.ApproxEqual(tt.expected) {
			t.Errorf("PositionAlong(%v): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestRay_Transform(t *testing.T) {
	r := MustRay(Point(1, 2, 3), Vector(0, 1, 0))

	moved := r.Transform(Translation(3, 4, 5))
	if !moved.Origin.ApproxEqual(Point(4, 6, 8)) || !moved.Direction.ApproxEqual(Vector(0, 1, 0)) {
		t.Errorf("Translated ray wrong: %+v", moved)
	}

	scaled := r.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.ApproxEqual(Point(2, 6, 12)) || !scaled.Direction.ApproxEqual(Vector(0, 3, 0)) {
		t.Errorf("Scaled ray wrong: %+v", scaled)
	}

	if !r.Origin.ApproxEqual(Point(1, 2, 3)) {
		t.Error("Transform must not mutate the original ray")
	}
}
