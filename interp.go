package numerics

import "fmt"

// Lagrange evaluates, at x, the unique polynomial of degree less than len(xs)
// that passes through the points (xs[i], ys[i]).
//
// The polynomial is evaluated directly as a sum of Lagrange basis polynomials,
// which takes O(n²) operations for n samples. x may lie outside the span of
// xs, in which case the polynomial is extrapolated.
//
// xs and ys must have the same, non-zero length, and all elements of xs must
// be distinct.
func Lagrange(xs, ys []float64, x float64) (float64, error) {
	if err := checkSamples(xs, ys); err != nil {
		return 0, err
	}
	var sum float64
	for i, xi := range xs {
		basis := 1.0
		for j, xj := range xs {
			if i != j {
				basis *= (x - xj) / (xi - xj)
			}
		}
		sum += basis * ys[i]
	}
	return sum, nil
}

func checkSamples(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d x values, %d y values", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return ErrNoSamples
	}
	seen := make(map[float64]int, len(xs))
	for i, x := range xs {
		if j, ok := seen[x]; ok {
			return fmt.Errorf("%w: x[%d] and x[%d] are both %g", ErrDuplicateAbscissa, j, i, x)
		}
		seen[x] = i
	}
	return nil
}
