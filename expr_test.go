package numerics

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestCompileEval(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x", 3, 3},
		{"2*x + 1", 3, 7},
		{"x^2 - 2", 2, 2},
		{"x**2 - 2", 2, 2},
		{"-x^2", 3, -9},
		{"(-x)^2", 3, 9},
		{"2^3^2", 0, 512},
		{"2^-1", 0, 0.5},
		{"10 - 4 - 3", 0, 3},
		{"12 / 3 / 2", 0, 2},
		{"1 + 2 * 3", 0, 7},
		{"(1 + 2) * 3", 0, 9},
		{"--x", 4, 4},
		{"+x", 4, 4},
		{".5 * x", 4, 2},
		{"1e-5 * x", 2, 2e-5},
		{"2.5E2", 0, 250},
		{"sin(pi/2)", 0, 1},
		{"cos(x)", 0, 1},
		{"tan(0)", 0, 0},
		{"exp(1)", 0, math.E},
		{"log(e)", 0, 1},
		{"ln(E)", 0, 1},
		{"log10(1000)", 0, 3},
		{"sqrt(x)", 16, 4},
		{"abs(x)", -2, 2},
		{"asin(1)", 0, math.Pi / 2},
		{"acos(1)", 0, 0},
		{"atan(1)", 0, math.Pi / 4},
		{"sinh(0) + cosh(0) + tanh(0)", 0, 1},
		{"π", 0, math.Pi},
		{"sin(x)^2 + cos(x)^2", 0.7, 1},
		{"x^3 - 2*x - 5", 2, -1},
	}
	for _, tt := range tests {
		f, err := Compile(tt.src)
		if err != nil {
			t.Errorf("Compile(%q): %v", tt.src, err)
			continue
		}
		if got := f.Eval(tt.x); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%q at %v = %v, want %v", tt.src, tt.x, got, tt.want)
		}
		if f.String() != tt.src {
			t.Errorf("String() = %q, want %q", f.String(), tt.src)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		src    string
		offset int
	}{
		{"", -1},
		{"   ", -1},
		{"y", 0},
		{"x + y", 4},
		{"__import__(x)", 0},
		{"__import__('os')", 11},
		{"exec(x)", 0},
		{"sin", 0},
		{"sin x", 0},
		{"x(2)", 0},
		{"pi(2)", 0},
		{"(x + 1", 0},
		{"sin(x", 3},
		{"x + 1)", 5},
		{"x +", 3},
		{"2 x", 2},
		{"x % 2", 2},
		{"x; 1", 1},
		{"'x'", 0},
		{"*x", 0},
		{"x ^ ^ 2", 4},
	}
	for _, tt := range tests {
		f, err := Compile(tt.src)
		if err == nil {
			t.Errorf("Compile(%q) = %v, want error", tt.src, f)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Compile(%q) returned %T, want *ParseError", tt.src, err)
			continue
		}
		if perr.Expr != tt.src {
			t.Errorf("Compile(%q): error refers to %q", tt.src, perr.Expr)
		}
		if perr.Offset != tt.offset {
			t.Errorf("Compile(%q): error at offset %d, want %d (%v)", tt.src, perr.Offset, tt.offset, err)
		}
	}
}

func TestEvalUndefined(t *testing.T) {
	tests := []struct {
		src string
		x   float64
	}{
		{"sqrt(x)", -1},
		{"log(x)", 0},
		{"log(x)", -1},
		{"1/x", 0},
		{"-1/x", 0},
		{"asin(x)", 2},
		{"exp(x)", 1000},
		{"0/x", 0},
	}
	for _, tt := range tests {
		f := MustCompile(tt.src)
		if y := f.Eval(tt.x); !math.IsNaN(y) {
			t.Errorf("%q at %v = %v, want NaN", tt.src, tt.x, y)
		}
	}
}

func TestEvalAll(t *testing.T) {
	f := MustCompile("sqrt(x)")
	xs := []float64{-4, 0, 1, 4, 9}
	want := []float64{math.NaN(), 0, 1, 2, 3}

	diff(t, want, f.EvalAll(nil, xs), approx(0))

	dst := make([]float64, 0, 8)
	got := f.EvalAll(dst, xs)
	if &got[0] != &dst[:1][0] {
		t.Error("EvalAll allocated although dst was large enough")
	}
	diff(t, want, got, approx(0))
}

func TestConstantFolding(t *testing.T) {
	f := MustCompile("2 * pi + sqrt(4)")
	if _, ok := f.root.(constNode); !ok {
		t.Errorf("got %T, want constNode", f.root)
	}
	g := MustCompile("2 * x + sqrt(4)")
	if _, ok := g.root.(constNode); ok {
		t.Error("expression depending on x was folded")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic")
		}
	}()
	MustCompile("x +")
}

func TestEvalConcurrent(t *testing.T) {
	f := MustCompile("x^2 + sin(x)")
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			x := float64(i)
			if got, want := f.Eval(x), x*x+math.Sin(x); math.Abs(got-want) > 1e-12 {
				t.Errorf("Eval(%v) = %v, want %v", x, got, want)
			}
		}()
	}
	wg.Wait()
}
