package signal

import (
	"errors"
	"math"
	"testing"
)

func TestSineLength(t *testing.T) {
	s, err := Sine(1000, 1, 0, 48000, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if s.Len() != 64 {
		t.Fatalf("len = %d, want 64", s.Len())
	}
	if s.SampleRate() != 48000 {
		t.Fatalf("SampleRate() = %v, want 48000", s.SampleRate())
	}
}

func TestSinePhase(t *testing.T) {
	s, err := Sine(250, 2, math.Pi/2, 1000, 4)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	want := []float64{2, 0, -2, 0}
	for i, w := range want {
		if math.Abs(s.At(i)-w) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, s.At(i), w)
		}
	}
}

func TestSineErrors(t *testing.T) {
	if _, err := Sine(1, 1, 0, 0, 4); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for zero rate, got %v", err)
	}
	if _, err := Sine(1, 1, 0, 10, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter for negative length, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	in, err := New([]float64{-0.5, 0.25, 1}, 8)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := Normalize(in.WithLabel("x"), 0.8)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	want := []float64{-0.4, 0.2, 0.8}
	for i, w := range want {
		if math.Abs(out.At(i)-w) > 1e-12 {
			t.Fatalf("sample %d = %v, want %v", i, out.At(i), w)
		}
	}
	if out.Label() != "x" || out.SampleRate() != 8 {
		t.Fatalf("metadata not preserved: %v", out)
	}
}

func TestNormalizeSilence(t *testing.T) {
	in, _ := New([]float64{0, 0}, 8)
	out, err := Normalize(in, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for i := 0; i < out.Len(); i++ {
		if out.At(i) != 0 {
			t.Fatalf("sample %d = %v, want 0", i, out.At(i))
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	in, _ := New([]float64{1}, 8)
	for _, target := range []float64{math.NaN(), math.Inf(1)} {
		if _, err := Normalize(in, target); !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("expected ErrInvalidParameter for target %v, got %v", target, err)
		}
	}
	if _, err := Normalize(in, -1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	empty, _ := New(nil, 8)
	if _, err := Normalize(empty, 1); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}
}
