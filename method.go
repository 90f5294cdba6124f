package numerics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Method is one of the numerical methods [Run] can apply to a function. The
// set of methods is closed; it consists of [Bisection], [NewtonRaphson],
// [ITPRoot], [Interpolation], [Differentiation] and [Quadrature].
type Method interface {
	// Name returns the human-readable name of the method, as reported in
	// [Response.Method].
	Name() string

	run(f func(float64) float64, opts *RootOptions) (*Response, window, error)
}

// window is the range of x over which the function is sampled for plotting.
type window struct {
	lo, hi float64
}

var defaultWindow = window{-10, 10}

var (
	_ Method = Bisection{}
	_ Method = NewtonRaphson{}
	_ Method = ITPRoot{}
	_ Method = Interpolation{}
	_ Method = Differentiation{}
	_ Method = Quadrature{}
)

// Request asks [Run] to apply a method to a function given as text.
type Request struct {
	// Function is the expression to compile, see [Compile].
	Function string
	Method   Method
	// Options configures the root finders and is ignored by other methods.
	// Nil selects the defaults.
	Options *RootOptions
}

// Response is the outcome of a successful [Run].
//
// Exactly one of Root, Value and Result is set: Root by root finders, Value
// by interpolation and differentiation, and Result by quadrature.
type Response struct {
	Method string   `json:"method"`
	Root   *float64 `json:"root,omitempty"`
	Value  *float64 `json:"value,omitempty"`
	Result *float64 `json:"result,omitempty"`
	// Converged is set by root finders. It is false if the method ran out of
	// iterations, in which case Root is the best estimate it reached.
	Converged *bool `json:"converged,omitempty"`
	// N is the number of sub-intervals a quadrature rule used.
	N int `json:"n,omitempty"`
	// Iterations is the trace of a root finder, either a []BisectionStep or a
	// []NewtonStep. It is nil for other methods.
	Iterations any  `json:"iterations,omitempty"`
	Plot       Plot `json:"plot"`
}

// Run compiles the request's function once, applies the requested method to
// it and samples the same function over a range suited to the method:
// [a, b] for quadrature, the samples and evaluation point widened by one on
// either side for interpolation, and [-10, 10] otherwise.
//
// Errors are those of [Compile] and of the method that was run. A root,
// value or result that is not finite, or a plotting range too wide to
// sample, fails with [ErrNotFinite]. Running out of iterations is not an
// error.
func Run(req Request) (*Response, error) {
	if req.Method == nil {
		return nil, fmt.Errorf("%w: method", ErrMissingParam)
	}
	fn, err := Compile(req.Function)
	if err != nil {
		return nil, err
	}
	resp, win, err := req.Method.run(fn.Eval, req.Options)
	if err != nil {
		return nil, err
	}
	name := req.Method.Name()
	for _, v := range []*float64{resp.Root, resp.Value, resp.Result} {
		if v != nil && !defined(*v) {
			return nil, fmt.Errorf("%w: %s gave %g", ErrNotFinite, name, *v)
		}
	}
	if !defined(win.hi - win.lo) {
		return nil, fmt.Errorf("%w: cannot plot [%g, %g]", ErrNotFinite, win.lo, win.hi)
	}
	resp.Method = name
	resp.Plot.Series = fn.Sample(win.lo, win.hi, DefaultSamples)
	return resp, nil
}

// Bisection finds a root in [A, B] using [Bisect].
type Bisection struct {
	A, B float64
}

func (Bisection) Name() string { return "Bisection" }

func (m Bisection) run(f func(float64) float64, opts *RootOptions) (*Response, window, error) {
	res, err := Bisect(f, m.A, m.B, opts)
	if err != nil {
		return nil, window{}, err
	}
	return rootResponse(f, res, VLine(m.A), VLine(m.B)), defaultWindow, nil
}

// NewtonRaphson finds a root near X0 using [Newton].
type NewtonRaphson struct {
	X0 float64
}

func (NewtonRaphson) Name() string { return "Newton-Raphson" }

func (m NewtonRaphson) run(f func(float64) float64, opts *RootOptions) (*Response, window, error) {
	res, err := Newton(f, m.X0, opts)
	if err != nil {
		return nil, window{}, err
	}
	return rootResponse(f, res), defaultWindow, nil
}

// ITPRoot finds a root in [A, B] using [ITP].
type ITPRoot struct {
	A, B float64
}

func (ITPRoot) Name() string { return "ITP" }

func (m ITPRoot) run(f func(float64) float64, opts *RootOptions) (*Response, window, error) {
	res, err := ITP(f, m.A, m.B, opts)
	if err != nil {
		return nil, window{}, err
	}
	return rootResponse(f, res, VLine(m.A), VLine(m.B)), defaultWindow, nil
}

func rootResponse[S any](f func(float64) float64, res RootResult[S], guides ...Marker) *Response {
	root := res.Root
	converged := res.Converged
	steps := res.Steps
	if steps == nil {
		steps = []S{}
	}
	extra := append([]Marker{PointAt(Pt(root, f(root)), LabelRoot)}, guides...)
	return &Response{
		Root:       &root,
		Converged:  &converged,
		Iterations: steps,
		Plot:       Plot{Extra: extra},
	}
}

// Interpolation evaluates the Lagrange polynomial through the points
// (XS[i], YS[i]) at X, using [Lagrange]. The function of the request is only
// plotted, not sampled for the interpolation.
type Interpolation struct {
	XS, YS []float64
	X      float64
}

func (Interpolation) Name() string { return "Lagrange Interpolation" }

func (m Interpolation) run(f func(float64) float64, _ *RootOptions) (*Response, window, error) {
	v, err := Lagrange(m.XS, m.YS, m.X)
	if err != nil {
		return nil, window{}, err
	}
	extra := make([]Marker, 0, len(m.XS)+1)
	for i, x := range m.XS {
		extra = append(extra, PointAt(Pt(x, m.YS[i]), LabelData))
	}
	extra = append(extra, PointAt(Pt(m.X, v), LabelEval))

	all := append([]float64{m.X}, m.XS...)
	win := window{floats.Min(all) - 1, floats.Max(all) + 1}
	return &Response{Value: &v, Plot: Plot{Extra: extra}}, win, nil
}

// Differentiation estimates f'(X) using [Derivative].
type Differentiation struct {
	X float64
	// Step is the step size. Zero selects DefaultStep.
	Step   float64
	Method DiffMethod
}

func (m Differentiation) Name() string {
	return fmt.Sprintf("Numerical Differentiation (%s)", m.Method)
}

func (m Differentiation) run(f func(float64) float64, _ *RootOptions) (*Response, window, error) {
	h := m.Step
	if h == 0 {
		h = DefaultStep
	}
	d, err := Derivative(f, m.X, h, m.Method)
	if err != nil {
		return nil, window{}, err
	}
	extra := []Marker{Tangent(Pt(m.X, f(m.X)), d)}
	return &Response{Value: &d, Plot: Plot{Extra: extra}}, defaultWindow, nil
}

// Quadrature integrates over [A, B] with N sub-intervals using [Integrate].
type Quadrature struct {
	A, B float64
	N    int
	Rule Rule
}

func (m Quadrature) Name() string {
	switch m.Rule {
	case Trapezoidal:
		return "Trapezoidal Rule"
	case Simpson13:
		return "Simpson 1/3 Rule"
	case Simpson38:
		return "Simpson 3/8 Rule"
	case GaussLegendre:
		return "Gauss-Legendre Rule"
	default:
		return m.Rule.String()
	}
}

func (m Quadrature) run(f func(float64) float64, _ *RootOptions) (*Response, window, error) {
	res, err := Integrate(f, m.A, m.B, m.N, m.Rule)
	if err != nil {
		return nil, window{}, err
	}
	return &Response{Result: &res.Value, N: res.N}, window{m.A, m.B}, nil
}
