package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestVecArithmetic(t *testing.T) {
	a := V(3, 4)
	b := V(1, 1)

	if got := a.Add(b); got != V(4, 5) {
		t.Errorf("Add() = %v", got)
	}
	if got := a.Sub(b); got != V(2, 3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale() = %v", got)
	}
	if a.Len() != 5 {
		t.Errorf("Len() = %f, expected 5", a.Len())
	}
	if V(0, 0).Dist(a) != 5 {
		t.Errorf("Dist() = %f, expected 5", V(0, 0).Dist(a))
	}
}

func TestVecNormalize(t *testing.T) {
	n := V(10, 0).Normalize()
	if n != V(1, 0) {
		t.Errorf("Normalize() = %v, expected (1, 0)", n)
	}

	if z := (Vec{}).Normalize(); z != (Vec{}) {
		t.Errorf("Normalize of zero vector = %v, expected zero", z)
	}

	d := V(3, -7).Normalize()
	if math.Abs(d.Len()-1) > 1e-9 {
		t.Errorf("Normalized length = %f, expected 1", d.Len())
	}
}

func TestVecClamp(t *testing.T) {
	if got := V(-3, 120).Clamp(5, 95); got != V(5, 95) {
		t.Errorf("Clamp() = %v, expected (5, 95)", got)
	}
}

func TestMemoryHighScoresOnlyRaises(t *testing.T) {
	m := NewMemoryHighScores()

	_ = m.SaveHighScore("attract", 120)
	_ = m.SaveHighScore("attract", 80)

	got, err := m.LoadHighScore("attract")
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if got != 120 {
		t.Errorf("LoadHighScore() = %d, expected 120", got)
	}
	if m.Saves() != 2 {
		t.Errorf("Saves() = %d, expected 2", m.Saves())
	}
}
