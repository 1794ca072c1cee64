package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		eps  float64
		want bool
	}{
		{"tiny absolute", 1.0, 1.0 + 1e-13, 1e-12, true},
		{"distinct", 1.0, 1.1, 1e-3, false},
		{"default epsilon", 0, 1e-13, 0, true},
		{"relative for large values", 2e6, 2e6 + 1, 1e-6, true},
		{"zero against nonzero", 0, 1e-3, 1e-6, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b, tt.eps); got != tt.want {
				t.Fatalf("NearlyEqual(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.eps, got, tt.want)
			}
		})
	}
}

func TestNearestInteger(t *testing.T) {
	tests := []struct {
		x     float64
		n     float64
		exact bool
	}{
		{1e-4 * 2e5, 20, true},
		{1.05e-4 * 2e5, 21, true},
		{20.5, 21, false},
		{-2.5, -3, false},
		{19.4, 19, false},
		{0.3e-4 * 1e5, 3, true},
	}

	for _, tt := range tests {
		n, exact := NearestInteger(tt.x, 1e-9)
		if n != tt.n || exact != tt.exact {
			t.Errorf("NearestInteger(%v) = (%v, %v), want (%v, %v)", tt.x, n, exact, tt.n, tt.exact)
		}
	}
}

func TestDecibels(t *testing.T) {
	if db := LinearPowerToDB(100); !NearlyEqual(db, 20, 1e-12) {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", db)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}

	if db := AmplitudeToDB(-10); !NearlyEqual(db, 20, 1e-12) {
		t.Fatalf("AmplitudeToDB(-10) = %v, want 20", db)
	}
	if !math.IsInf(AmplitudeToDB(0), -1) {
		t.Fatal("expected -Inf for zero amplitude")
	}
}
