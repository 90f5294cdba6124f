package numerics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Rule is a composite quadrature rule.
type Rule int

const (
	// Trapezoidal approximates the integrand by a line on each sub-interval.
	// It accepts any number of sub-intervals.
	Trapezoidal Rule = iota
	// Simpson13 is Simpson's 1/3 rule. It requires an even number of
	// sub-intervals and integrates cubics exactly.
	Simpson13
	// Simpson38 is Simpson's 3/8 rule. It requires the number of
	// sub-intervals to be a multiple of three.
	Simpson38
	// GaussLegendre applies 8-point Legendre-Gauss quadrature to each
	// sub-interval, integrating polynomials of degree up to 15 exactly.
	GaussLegendre
)

func (r Rule) String() string {
	switch r {
	case Trapezoidal:
		return "trapezoidal"
	case Simpson13:
		return "simpson 1/3"
	case Simpson38:
		return "simpson 3/8"
	case GaussLegendre:
		return "gauss-legendre"
	default:
		return fmt.Sprintf("Rule(%d)", int(r))
	}
}

// Partitions returns the number of sub-intervals the rule actually uses when
// asked for n. Simpson's 1/3 rule rounds odd n up to the next even number and
// Simpson's 3/8 rule rounds n up to the next multiple of three. The other
// rules use n unchanged.
func (r Rule) Partitions(n int) int {
	switch r {
	case Simpson13:
		if n%2 != 0 {
			n++
		}
	case Simpson38:
		if n%3 != 0 {
			n = (n/3 + 1) * 3
		}
	}
	return n
}

// Integral is the result of [Integrate].
type Integral struct {
	Value float64
	// N is the number of sub-intervals that were used, after the rule's
	// adjustment of the requested count.
	N int
}

// Integrate approximates the definite integral of f over [a, b] by splitting
// it into n sub-intervals of equal width and applying rule r to them. The
// Simpson rules adjust n as described by [Rule.Partitions] instead of
// failing. The cost is a fixed number of evaluations of f, proportional to n.
//
// n must be at least 1. If f is undefined (NaN) at any point the rule
// samples, Integrate returns a *[DomainError].
func Integrate(f func(float64) float64, a, b float64, n int, r Rule) (Integral, error) {
	if n < 1 {
		return Integral{}, fmt.Errorf("%w: need at least one sub-interval, got %d", ErrInvalidOption, n)
	}
	if r < Trapezoidal || r > GaussLegendre {
		return Integral{}, fmt.Errorf("%w: %v", ErrInvalidOption, r)
	}
	n = r.Partitions(n)

	var xs, ws []float64
	if r == GaussLegendre {
		xs, ws = gaussNodes(a, b, n)
	} else {
		xs, ws = newtonCotesNodes(r, a, b, n)
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y := f(x)
		if !defined(y) {
			return Integral{}, &DomainError{X: x}
		}
		ys[i] = y
	}
	return Integral{Value: floats.Dot(ws, ys), N: n}, nil
}

// newtonCotesNodes returns the n+1 equally spaced partition points of [a, b]
// and the rule's weights for them, already scaled by the step width.
func newtonCotesNodes(r Rule, a, b float64, n int) (xs, ws []float64) {
	xs = span(n+1, a, b)
	ws = make([]float64, n+1)
	h := (b - a) / float64(n)

	var scale float64
	switch r {
	case Trapezoidal:
		scale = h
		for i := range ws {
			ws[i] = 1
		}
		ws[0], ws[n] = 0.5, 0.5
	case Simpson13:
		scale = h / 3
		for i := 1; i < n; i++ {
			if i%2 != 0 {
				ws[i] = 4
			} else {
				ws[i] = 2
			}
		}
		ws[0], ws[n] = 1, 1
	case Simpson38:
		scale = 3 * h / 8
		for i := 1; i < n; i++ {
			if i%3 != 0 {
				ws[i] = 3
			} else {
				ws[i] = 2
			}
		}
		ws[0], ws[n] = 1, 1
	}
	floats.Scale(scale, ws)
	return xs, ws
}

// gaussNodes returns the Legendre-Gauss sample points of n equal panels of
// [a, b] and their weights, scaled to the panel width.
func gaussNodes(a, b float64, n int) (xs, ws []float64) {
	edges := span(n+1, a, b)
	xs = make([]float64, 0, n*len(gaussLegendreCoeffs8))
	ws = make([]float64, 0, n*len(gaussLegendreCoeffs8))
	for i := range n {
		half := 0.5 * (edges[i+1] - edges[i])
		mid := 0.5 * (edges[i+1] + edges[i])
		for _, coeff := range gaussLegendreCoeffs8 {
			xs = append(xs, mid+half*coeff[1])
			ws = append(ws, half*coeff[0])
		}
	}
	return xs, ws
}

// Table of Legendre-Gauss quadrature coefficients (weight, abscissa) on
// [-1, 1], adapted from:
// <https://pomax.github.io/bezierinfo/legendre-gauss.html>
var gaussLegendreCoeffs8 = [...][2]float64{
	{0.3626837833783620, -0.1834346424956498},
	{0.3626837833783620, 0.1834346424956498},
	{0.3137066458778873, -0.5255324099163290},
	{0.3137066458778873, 0.5255324099163290},
	{0.2223810344533745, -0.7966664774136267},
	{0.2223810344533745, 0.7966664774136267},
	{0.1012285362903763, -0.9602898564975363},
	{0.1012285362903763, 0.9602898564975363},
}
