// Package numerics provides numerical methods for real functions of one
// variable: root finding, polynomial interpolation, finite differences and
// quadrature, together with a small compiler that turns formulas such as
// "x^3 - 2*sin(x)" into functions those methods can evaluate.
//
// Everything operates on float64. Complex values, functions of several
// variables, symbolic results and arbitrary precision are out of scope.
//
// # Functions
//
// All methods accept an ordinary func(float64) float64. [Compile] produces
// such a function from text: the method value of a compiled [Func]'s
// [Func.Eval] can be passed directly. Compiled expressions may only use the
// variable x and a fixed vocabulary of functions and constants, so compiling
// untrusted input is safe.
//
// A function is undefined at a point if it returns NaN or an infinity there,
// such as sqrt(-1), log(0) or 1/0. [Func.Eval] reports all of these as NaN.
// Sampling keeps undefined points in place; every other method fails with a
// *[DomainError] as soon as it encounters one.
//
// # Methods
//
// The package implements the following methods:
//
//   - Root finding by bisection (see [Bisect]), the ITP method (see [ITP])
//     and Newton-Raphson iteration (see [Newton])
//   - Lagrange interpolation (see [Lagrange])
//   - Forward, backward and central differences (see [Derivative])
//   - The composite trapezoidal rule, Simpson's 1/3 and 3/8 rules and
//     Gauss-Legendre quadrature (see [Integrate])
//
// The root finders are iterative and record every step they take. Exhausting
// the iteration limit is not an error: the result reports Converged as false
// and carries the best estimate reached. All other methods run a fixed number
// of function evaluations.
//
// # Requests
//
// [Run] bundles compiling a formula, applying one [Method] to it and
// sampling it for display into a single call, returning a [Response] that
// encodes to JSON. [Params] is the flat form of a request that front ends
// submit, and [Params.Request] validates it. The numcalc command serves
// requests over HTTP and renders plots of their results.
package numerics
