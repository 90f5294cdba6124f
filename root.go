package numerics

import (
	"fmt"
	"math"
)

const (
	// DefaultTolerance is the stopping tolerance used when none is given.
	DefaultTolerance = 1e-6
	// DefaultMaxIter is the iteration limit used when none is given.
	DefaultMaxIter = 100
)

// flatSlope is the magnitude below which [Newton] considers the derivative to
// be zero.
const flatSlope = 1e-12

// RootOptions configures the iterative root finders. A nil *RootOptions is
// equivalent to the result of [DefaultRootOptions].
type RootOptions struct {
	// Tolerance is the stopping tolerance. Its exact meaning depends on the
	// method. Zero selects DefaultTolerance.
	Tolerance float64
	// MaxIter bounds the number of iterations. A method never performs more
	// than MaxIter steps, whether or not it converges. Zero selects
	// DefaultMaxIter.
	MaxIter int
}

// DefaultRootOptions returns the options used when none are given.
func DefaultRootOptions() RootOptions {
	return RootOptions{Tolerance: DefaultTolerance, MaxIter: DefaultMaxIter}
}

func (opts *RootOptions) resolve() (tol float64, maxIter int, err error) {
	tol, maxIter = DefaultTolerance, DefaultMaxIter
	if opts == nil {
		return tol, maxIter, nil
	}
	if opts.Tolerance != 0 {
		tol = opts.Tolerance
	}
	if opts.MaxIter != 0 {
		maxIter = opts.MaxIter
	}
	if !(tol > 0) || math.IsInf(tol, 0) {
		return 0, 0, fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidOption, tol)
	}
	if maxIter < 1 {
		return 0, 0, fmt.Errorf("%w: iteration limit must be at least 1, got %d", ErrInvalidOption, maxIter)
	}
	return tol, maxIter, nil
}

// BisectionStep records one step of a bracketing root finder: the bracket
// [A, B] at the start of the step, the trial point C and f(C).
type BisectionStep struct {
	Iter int     `json:"iter"`
	A    float64 `json:"a"`
	B    float64 `json:"b"`
	C    float64 `json:"c"`
	FC   float64 `json:"f(c)"`
}

// NewtonStep records one step of [Newton]: the new estimate X and f(X).
type NewtonStep struct {
	Iter int     `json:"iter"`
	X    float64 `json:"x"`
	FX   float64 `json:"f(x)"`
}

// RootResult is the outcome of a root finder that did not fail.
//
// If Converged is false, the method exhausted its iteration limit and Root is
// the best estimate it reached. This is not an error.
type RootResult[S any] struct {
	Root      float64
	Converged bool
	Steps     []S
}

// Bisect finds a root of f in [a, b] using the bisection method.
//
// f(a) and f(b) must have strictly opposite signs, otherwise Bisect returns
// [ErrInvalidBracket] without iterating. The ends may be given in either
// order. Each step halves the bracket; the
// method converges once |f(c)| or half the bracket width drops below the
// tolerance. On a bracket of width w, that takes at most ⌈log₂(w/tol)⌉ + 1
// steps.
//
// If f is undefined (NaN) at a, b or any trial point, Bisect returns a
// *[DomainError].
func Bisect(f func(float64) float64, a, b float64, opts *RootOptions) (RootResult[BisectionStep], error) {
	tol, maxIter, err := opts.resolve()
	if err != nil {
		return RootResult[BisectionStep]{}, err
	}
	fa, fb, err := bracket(f, a, b)
	if err != nil {
		return RootResult[BisectionStep]{}, err
	}
	if a > b {
		a, b, fa = b, a, fb
	}

	var res RootResult[BisectionStep]
	for i := 1; i <= maxIter; i++ {
		c := (a + b) / 2
		fc := f(c)
		if !defined(fc) {
			return RootResult[BisectionStep]{}, &DomainError{X: c}
		}
		res.Steps = append(res.Steps, BisectionStep{Iter: i, A: a, B: b, C: c, FC: fc})
		res.Root = c
		if math.Abs(fc) < tol || (b-a)/2 < tol {
			res.Converged = true
			return res, nil
		}
		if math.Signbit(fa) != math.Signbit(fc) {
			b = c
		} else {
			a, fa = c, fc
		}
	}
	return res, nil
}

// bracket evaluates f at both ends of [a, b] and checks that the values
// have strictly opposite signs.
func bracket(f func(float64) float64, a, b float64) (fa, fb float64, err error) {
	fa = f(a)
	if !defined(fa) {
		return 0, 0, &DomainError{X: a}
	}
	fb = f(b)
	if !defined(fb) {
		return 0, 0, &DomainError{X: b}
	}
	if fa == 0 || fb == 0 || math.Signbit(fa) == math.Signbit(fb) {
		return 0, 0, ErrInvalidBracket
	}
	return fa, fb, nil
}

// Newton finds a root of f near x0 using the Newton-Raphson method. The
// derivative is estimated with a central difference of step 1e-6.
//
// Any x0 is accepted. If the estimated slope at the current estimate has a
// magnitude below 1e-12, Newton returns [ErrFlatDerivative]. The method
// converges once the update or |f(x)| drops below the tolerance.
//
// If f is undefined (NaN) at any point Newton visits, it returns a
// *[DomainError].
func Newton(f func(float64) float64, x0 float64, opts *RootOptions) (RootResult[NewtonStep], error) {
	tol, maxIter, err := opts.resolve()
	if err != nil {
		return RootResult[NewtonStep]{}, err
	}

	x := x0
	res := RootResult[NewtonStep]{Root: x}
	for i := 1; i <= maxIter; i++ {
		fx := f(x)
		if !defined(fx) {
			return RootResult[NewtonStep]{}, &DomainError{X: x}
		}
		dfx, err := derivative(f, x, newtonStep, Central.formula())
		if err != nil {
			return RootResult[NewtonStep]{}, err
		}
		if math.Abs(dfx) < flatSlope {
			return RootResult[NewtonStep]{}, fmt.Errorf("%w at x = %g", ErrFlatDerivative, x)
		}

		next := x - fx/dfx
		fnext := f(next)
		if !defined(fnext) {
			return RootResult[NewtonStep]{}, &DomainError{X: next}
		}
		res.Steps = append(res.Steps, NewtonStep{Iter: i, X: next, FX: fnext})
		res.Root = next
		if math.Abs(next-x) < tol || math.Abs(fx) < tol {
			res.Converged = true
			return res, nil
		}
		x = next
	}
	return res, nil
}
