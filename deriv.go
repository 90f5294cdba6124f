package numerics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// DefaultStep is the step size used for [Derivative] when the caller does not
// choose one.
const DefaultStep = 1e-5

// newtonStep is the step size of the central difference [Newton] uses to
// estimate the slope. It is deliberately independent of [DefaultStep].
const newtonStep = 1e-6

// DiffMethod selects a finite difference formula.
type DiffMethod int

const (
	// Central approximates f'(x) as (f(x+h) - f(x-h)) / 2h.
	Central DiffMethod = iota
	// Forward approximates f'(x) as (f(x+h) - f(x)) / h.
	Forward
	// Backward approximates f'(x) as (f(x) - f(x-h)) / h.
	Backward
)

func (m DiffMethod) String() string {
	switch m {
	case Central:
		return "central"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("DiffMethod(%d)", int(m))
	}
}

// ParseDiffMethod returns the DiffMethod named s. The empty string selects
// [Central].
func ParseDiffMethod(s string) (DiffMethod, error) {
	switch s {
	case "", "central":
		return Central, nil
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	default:
		return 0, fmt.Errorf("%w: unknown difference method %q", ErrInvalidOption, s)
	}
}

func (m DiffMethod) formula() fd.Formula {
	switch m {
	case Forward:
		return fd.Forward
	case Backward:
		return fd.Backward
	default:
		return fd.Central
	}
}

// Derivative estimates f'(x) using the finite difference formula m with step
// size h. It evaluates f once or twice and performs no iteration.
//
// h must be positive and finite. If f is undefined (NaN) at any of the points
// the formula samples, Derivative returns a *[DomainError].
func Derivative(f func(float64) float64, x, h float64, m DiffMethod) (float64, error) {
	if !(h > 0) || math.IsInf(h, 0) {
		return 0, fmt.Errorf("%w: step size must be positive, got %g", ErrInvalidOption, h)
	}
	if m < Central || m > Backward {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOption, m)
	}
	return derivative(f, x, h, m.formula())
}

func derivative(f func(float64) float64, x, h float64, formula fd.Formula) (float64, error) {
	var domainErr *DomainError
	checked := func(x float64) float64 {
		y := f(x)
		if !defined(y) && domainErr == nil {
			domainErr = &DomainError{X: x}
		}
		return y
	}
	d := fd.Derivative(checked, x, &fd.Settings{Formula: formula, Step: h})
	if domainErr != nil {
		return 0, domainErr
	}
	return d, nil
}

// defined reports whether y is a usable function value.
func defined(y float64) bool {
	return !math.IsNaN(y) && !math.IsInf(y, 0)
}
