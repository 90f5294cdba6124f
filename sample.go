package numerics

import (
	"encoding/json"
	"iter"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultSamples is the number of points [Run] samples for plotting.
const DefaultSamples = 500

// Series is a function sampled at evenly spaced points. X and Y always have
// the same length, and Y[i] is NaN if the function is undefined at X[i].
type Series struct {
	X []float64
	Y []float64
}

// Sample evaluates f at n evenly spaced points spanning [lo, hi], including
// both ends. Undefined and non-finite values are stored as NaN rather than
// dropped, so that indices of X and Y stay aligned.
//
// If n is 1, the only sample is at lo. If n is less than 1, the series is
// empty.
func Sample(f func(float64) float64, lo, hi float64, n int) Series {
	xs := grid(lo, hi, n)
	if xs == nil {
		return Series{}
	}
	ys := make([]float64, len(xs))
	for i, x := range xs {
		y := f(x)
		if !defined(y) {
			y = math.NaN()
		}
		ys[i] = y
	}
	return Series{X: xs, Y: ys}
}

// Sample is like [Sample] but evaluates the whole grid with [Func.EvalAll].
func (f *Func) Sample(lo, hi float64, n int) Series {
	xs := grid(lo, hi, n)
	if xs == nil {
		return Series{}
	}
	return Series{X: xs, Y: f.EvalAll(nil, xs)}
}

func grid(lo, hi float64, n int) []float64 {
	switch {
	case n < 1:
		return nil
	case n == 1:
		return []float64{lo}
	default:
		return span(n, lo, hi)
	}
}

// span returns n >= 2 evenly spaced points from lo to hi. The last point is
// exactly hi.
func span(n int, lo, hi float64) []float64 {
	xs := floats.Span(make([]float64, n), lo, hi)
	xs[n-1] = hi
	return xs
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.X) }

// Points yields the samples in order of increasing index.
func (s Series) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i, x := range s.X {
			if !yield(Pt(x, s.Y[i])) {
				return
			}
		}
	}
}

// Runs yields the maximal runs of consecutive samples at which the function
// is defined. A plot of the series draws each run as one connected line.
func (s Series) Runs() iter.Seq[[]Point] {
	return func(yield func([]Point) bool) {
		var run []Point
		for pt := range s.Points() {
			if pt.Defined() {
				run = append(run, pt)
				continue
			}
			if len(run) > 0 {
				if !yield(run) {
					return
				}
				run = nil
			}
		}
		if len(run) > 0 {
			yield(run)
		}
	}
}

// MarshalJSON encodes the series as {"x": [...], "y": [...]}, writing null
// for undefined values, which JSON numbers cannot represent.
func (s Series) MarshalJSON() ([]byte, error) {
	return json.Marshal(seriesJSON{X: s.X, Y: nullables(s.Y)})
}

type seriesJSON struct {
	X []float64  `json:"x"`
	Y []nullable `json:"y"`
}

// nullable is a float64 that encodes as null when it is not finite.
type nullable float64

func (v nullable) MarshalJSON() ([]byte, error) {
	if !defined(float64(v)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

func nullables(vs []float64) []nullable {
	out := make([]nullable, len(vs))
	for i, v := range vs {
		out[i] = nullable(v)
	}
	return out
}
