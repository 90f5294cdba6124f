package numerics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a float64 that decodes from either a JSON number or a string
// holding one, such as "1e-6". Form front ends submit the latter.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := parseFloat(s)
		if err != nil {
			return err
		}
		*n = Number(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*n = Number(v)
	return nil
}

// Numbers is a list of floats that decodes from either a JSON array of
// [Number] or a comma-separated string, see [ParseFloats].
type Numbers []float64

func (ns *Numbers) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		vs, err := ParseFloats(s)
		if err != nil {
			return err
		}
		*ns = vs
		return nil
	}
	var vs []Number
	if err := json.Unmarshal(b, &vs); err != nil {
		return err
	}
	out := make(Numbers, len(vs))
	for i, v := range vs {
		out[i] = float64(v)
	}
	*ns = out
	return nil
}

// ParseFloats parses a comma-separated list of numbers such as "0, 1.5, 2".
// Whitespace around elements is ignored. The empty string yields an empty,
// non-nil list.
func ParseFloats(s string) ([]float64, error) {
	out := []float64{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, field := range strings.Split(s, ",") {
		v, err := parseFloat(field)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidParam, s)
	}
	return v, nil
}

// Upper bounds on the work a single [Params] request may ask for. Traces and
// quadrature nodes are held in memory.
const (
	MaxIterLimit  = 100_000
	MaxPartitions = 100_000
)

// Params is the flat parameter set a front end submits to request a
// computation. Which fields are required depends on Method:
//
//	bisection, itp                          a, b
//	newton                                  x0
//	lagrange                                x_points, y_points, x_eval
//	diff                                    x, diff_method (optional)
//	trap, simpson13, simpson38, gauss       a, b, n
//
// Tolerance and MaxIter apply to the root finders and default to
// [DefaultTolerance] and [DefaultMaxIter]. MaxIter may not exceed
// [MaxIterLimit] and N may not exceed [MaxPartitions].
type Params struct {
	Method     string  `json:"method"`
	Function   string  `json:"function"`
	Tolerance  *Number `json:"tolerance,omitempty"`
	MaxIter    *Number `json:"max_iter,omitempty"`
	A          *Number `json:"a,omitempty"`
	B          *Number `json:"b,omitempty"`
	X0         *Number `json:"x0,omitempty"`
	XPoints    Numbers `json:"x_points,omitempty"`
	YPoints    Numbers `json:"y_points,omitempty"`
	XEval      *Number `json:"x_eval,omitempty"`
	X          *Number `json:"x,omitempty"`
	DiffMethod string  `json:"diff_method,omitempty"`
	N          *Number `json:"n,omitempty"`
}

// Request validates p and converts it into a [Request]. A missing field
// yields [ErrMissingParam], a malformed one [ErrInvalidParam] and an
// unrecognized method [ErrUnknownMethod].
func (p *Params) Request() (Request, error) {
	if strings.TrimSpace(p.Function) == "" {
		return Request{}, fmt.Errorf("%w: function", ErrMissingParam)
	}
	opts, err := p.rootOptions()
	if err != nil {
		return Request{}, err
	}
	m, err := p.method()
	if err != nil {
		return Request{}, err
	}
	return Request{Function: p.Function, Method: m, Options: opts}, nil
}

func (p *Params) rootOptions() (*RootOptions, error) {
	opts := DefaultRootOptions()
	if p.Tolerance != nil {
		if *p.Tolerance <= 0 {
			return nil, fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidParam, float64(*p.Tolerance))
		}
		opts.Tolerance = float64(*p.Tolerance)
	}
	if p.MaxIter != nil {
		n, err := integer("max_iter", p.MaxIter, MaxIterLimit)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: max_iter must be at least 1, got %d", ErrInvalidParam, n)
		}
		opts.MaxIter = n
	}
	return &opts, nil
}

func (p *Params) method() (Method, error) {
	switch p.Method {
	case "":
		return nil, fmt.Errorf("%w: method", ErrMissingParam)
	case "bisection", "itp":
		a, b, err := p.interval()
		if err != nil {
			return nil, err
		}
		if p.Method == "itp" {
			return ITPRoot{A: a, B: b}, nil
		}
		return Bisection{A: a, B: b}, nil
	case "newton":
		x0, err := required("x0", p.X0)
		if err != nil {
			return nil, err
		}
		return NewtonRaphson{X0: x0}, nil
	case "lagrange":
		if p.XPoints == nil {
			return nil, fmt.Errorf("%w: x_points", ErrMissingParam)
		}
		if p.YPoints == nil {
			return nil, fmt.Errorf("%w: y_points", ErrMissingParam)
		}
		x, err := required("x_eval", p.XEval)
		if err != nil {
			return nil, err
		}
		return Interpolation{XS: p.XPoints, YS: p.YPoints, X: x}, nil
	case "diff":
		x, err := required("x", p.X)
		if err != nil {
			return nil, err
		}
		dm, err := ParseDiffMethod(p.DiffMethod)
		if err != nil {
			return nil, err
		}
		return Differentiation{X: x, Method: dm}, nil
	case "trap", "simpson13", "simpson38", "gauss":
		a, b, err := p.interval()
		if err != nil {
			return nil, err
		}
		if p.N == nil {
			return nil, fmt.Errorf("%w: n", ErrMissingParam)
		}
		n, err := integer("n", p.N, MaxPartitions)
		if err != nil {
			return nil, err
		}
		return Quadrature{A: a, B: b, N: n, Rule: ruleKeys[p.Method]}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMethod, p.Method)
	}
}

var ruleKeys = map[string]Rule{
	"trap":      Trapezoidal,
	"simpson13": Simpson13,
	"simpson38": Simpson38,
	"gauss":     GaussLegendre,
}

func (p *Params) interval() (a, b float64, err error) {
	if a, err = required("a", p.A); err != nil {
		return 0, 0, err
	}
	if b, err = required("b", p.B); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func required(name string, n *Number) (float64, error) {
	if n == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	return float64(*n), nil
}

func integer(name string, n *Number, limit int) (int, error) {
	v := float64(*n)
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s must be an integer, got %g", ErrInvalidParam, name, v)
	}
	if v > float64(limit) {
		return 0, fmt.Errorf("%w: %s must be at most %d, got %g", ErrInvalidParam, name, limit, v)
	}
	return int(v), nil
}
