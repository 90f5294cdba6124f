package numerics

import (
	"encoding/json"
	"math"
	"testing"
)

func TestMarkerMarshalJSON(t *testing.T) {
	tests := []struct {
		m    Marker
		want string
	}{
		{PointAt(Pt(1.5, -2), LabelRoot), `{"type":"point","x":1.5,"y":-2,"label":"Root"}`},
		{PointAt(Pt(0, math.NaN()), LabelEval), `{"type":"point","x":0,"y":null,"label":"P(x)"}`},
		{VLine(3), `{"type":"vline","x":3}`},
		{Tangent(Pt(0, 1), 0.5), `{"type":"tangent","x":0,"y":1,"slope":0.5}`},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.m)
		if err != nil {
			t.Errorf("%v: %v", tt.m.Kind, err)
			continue
		}
		diff(t, tt.want, string(b))
	}

	if _, err := json.Marshal(Marker{Kind: MarkerKind(12)}); err == nil {
		t.Error("encoded a marker of unknown kind")
	}
}

func TestTangentLine(t *testing.T) {
	line := Tangent(Pt(2, 3), -0.5).Line()
	for x, want := range map[float64]float64{2: 3, 4: 2, 0: 4} {
		if got := line(x); got != want {
			t.Errorf("line(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestPlotMarshalJSON(t *testing.T) {
	p := Plot{
		Series: Series{X: []float64{0, 1}, Y: []float64{1, math.NaN()}},
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, `{"x":[0,1],"y":[1,null],"extra":[]}`, string(b))

	p.Extra = []Marker{VLine(0.5)}
	b, err = json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, `{"x":[0,1],"y":[1,null],"extra":[{"type":"vline","x":0.5}]}`, string(b))
}

func TestPoint(t *testing.T) {
	if s := Pt(1, -2.5).String(); s != "(1, -2.5)" {
		t.Errorf("got %q", s)
	}
	if x, y := Pt(4, 5).Splat(); x != 4 || y != 5 {
		t.Errorf("got (%v, %v)", x, y)
	}
	for _, pt := range []Point{Pt(math.NaN(), 0), Pt(0, math.Inf(-1))} {
		if pt.Defined() {
			t.Errorf("%v is defined", pt)
		}
	}
	if !Pt(0, 0).Defined() {
		t.Error("origin is not defined")
	}
}
