package numerics

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBracket is returned by bracketing root finders when f(a) and
	// f(b) do not have strictly opposite signs.
	ErrInvalidBracket = errors.New("numerics: f(a) and f(b) must have opposite signs")

	// ErrFlatDerivative is returned by [Newton] when the estimated slope is too
	// close to zero to take a step.
	ErrFlatDerivative = errors.New("numerics: derivative too small")

	// ErrDuplicateAbscissa is returned by [Lagrange] when two samples share the
	// same x value.
	ErrDuplicateAbscissa = errors.New("numerics: x samples must be distinct")

	// ErrLengthMismatch is returned by [Lagrange] when xs and ys differ in length.
	ErrLengthMismatch = errors.New("numerics: x and y samples differ in length")

	// ErrNoSamples is returned by [Lagrange] when no samples were provided.
	ErrNoSamples = errors.New("numerics: no samples")

	// ErrInvalidOption is returned when a tolerance, iteration limit, step size
	// or partition count is out of range.
	ErrInvalidOption = errors.New("numerics: invalid option")

	// ErrUnknownMethod is returned for a method key that names no method.
	ErrUnknownMethod = errors.New("numerics: unknown method")

	// ErrMissingParam is returned when a method-specific parameter is absent.
	ErrMissingParam = errors.New("numerics: missing parameter")

	// ErrInvalidParam is returned when a parameter is present but is not a
	// valid value for its field.
	ErrInvalidParam = errors.New("numerics: invalid parameter")

	// ErrNotFinite is returned by [Run] when a method produced an infinite or
	// NaN result, usually because an intermediate value overflowed.
	ErrNotFinite = errors.New("numerics: result is not finite")
)

// ParseError describes an expression that could not be compiled, either
// because it is malformed or because it refers to names outside the
// allow-list.
type ParseError struct {
	Expr   string
	Offset int // byte offset into Expr, -1 if the error is not positional
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("numerics: invalid function %q: %s", e.Expr, e.Msg)
	}
	return fmt.Sprintf("numerics: invalid function %q at offset %d: %s", e.Expr, e.Offset, e.Msg)
}

// DomainError reports that a function is undefined at X, for example the
// square root of a negative number or the logarithm of zero.
type DomainError struct {
	X float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("numerics: function is undefined at x = %g", e.X)
}
