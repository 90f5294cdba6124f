package numerics

import (
	"errors"
	"math"
	"testing"
)

func TestDerivative(t *testing.T) {
	tests := []struct {
		name string
		f    func(float64) float64
		x    float64
		want float64
	}{
		{"sin", math.Sin, 0.5, math.Cos(0.5)},
		{"exp", math.Exp, 1, math.E},
		{"cubic", func(x float64) float64 { return x * x * x }, 2, 12},
		{"line", func(x float64) float64 { return 3*x - 1 }, -7, 3},
	}
	for _, tt := range tests {
		for _, m := range []DiffMethod{Forward, Backward, Central} {
			got, err := Derivative(tt.f, tt.x, DefaultStep, m)
			if err != nil {
				t.Errorf("%s, %v: %v", tt.name, m, err)
				continue
			}
			// One-sided differences are first order in h, central differences
			// second order.
			tol := 1e-3
			if m == Central {
				tol = 1e-8
			}
			if math.Abs(got-tt.want) > tol {
				t.Errorf("%s, %v: got %v, want %v", tt.name, m, got, tt.want)
			}
		}
	}
}

func TestDerivativeFormulas(t *testing.T) {
	// A quadratic exposes which points each formula samples: the one-sided
	// differences are off by exactly ±h, the central difference is exact.
	f := func(x float64) float64 { return x * x }
	const h = 0.5
	for _, tt := range []struct {
		m    DiffMethod
		want float64
	}{
		{Forward, 2*1 + h},
		{Backward, 2*1 - h},
		{Central, 2},
	} {
		got, err := Derivative(f, 1, h, tt.m)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%v: got %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestDerivativeDomain(t *testing.T) {
	// sqrt is defined at 0 but not to its left.
	_, err := Derivative(math.Sqrt, 0, DefaultStep, Backward)
	var derr *DomainError
	if !errors.As(err, &derr) {
		t.Fatalf("got %v, want *DomainError", err)
	}
	if derr.X >= 0 {
		t.Errorf("undefined point %v should be left of 0", derr.X)
	}

	if _, err := Derivative(math.Sqrt, 0, DefaultStep, Forward); err != nil {
		t.Errorf("forward difference at 0: %v", err)
	}
}

func TestDerivativeInvalidOptions(t *testing.T) {
	for _, h := range []float64{0, -1e-5, math.Inf(1), math.NaN()} {
		if _, err := Derivative(math.Sin, 0, h, Central); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("step %v: got %v, want ErrInvalidOption", h, err)
		}
	}
	if _, err := Derivative(math.Sin, 0, DefaultStep, DiffMethod(7)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("got %v, want ErrInvalidOption", err)
	}
}

func TestParseDiffMethod(t *testing.T) {
	for s, want := range map[string]DiffMethod{
		"":         Central,
		"central":  Central,
		"forward":  Forward,
		"backward": Backward,
	} {
		got, err := ParseDiffMethod(s)
		if err != nil {
			t.Errorf("ParseDiffMethod(%q): %v", s, err)
		}
		if got != want {
			t.Errorf("ParseDiffMethod(%q) = %v, want %v", s, got, want)
		}
		if s != "" && got.String() != s {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), s)
		}
	}
	if _, err := ParseDiffMethod("sideways"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("got %v, want ErrInvalidOption", err)
	}
}
