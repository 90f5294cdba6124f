package numerics

import (
	"encoding/json"
	"fmt"
)

// MarkerKind selects how a [Marker] is drawn.
type MarkerKind int

const (
	// PointMarker is a labelled point.
	PointMarker MarkerKind = iota
	// VLineMarker is a vertical guide line at X.
	VLineMarker
	// TangentMarker is the line through the marker's point with slope Slope.
	TangentMarker
)

func (k MarkerKind) String() string {
	switch k {
	case PointMarker:
		return "point"
	case VLineMarker:
		return "vline"
	case TangentMarker:
		return "tangent"
	default:
		return fmt.Sprintf("MarkerKind(%d)", int(k))
	}
}

// Marker annotates a plot with a result of the method that produced it.
// Which fields are meaningful depends on Kind: vertical lines only use X,
// points use X, Y and Label, and tangents use X, Y and Slope.
type Marker struct {
	Kind MarkerKind
	Point
	Label string
	Slope float64
}

// Labels of the point markers produced by [Run].
const (
	LabelRoot = "Root"
	LabelData = "Data"
	LabelEval = "P(x)"
)

// PointAt returns a labelled point marker.
func PointAt(pt Point, label string) Marker {
	return Marker{Kind: PointMarker, Point: pt, Label: label}
}

// VLine returns a vertical guide line at x.
func VLine(x float64) Marker {
	return Marker{Kind: VLineMarker, Point: Pt(x, 0)}
}

// Tangent returns the tangent through pt with the given slope.
func Tangent(pt Point, slope float64) Marker {
	return Marker{Kind: TangentMarker, Point: pt, Slope: slope}
}

// Line returns the function whose graph is the tangent line. It is only
// meaningful for tangent markers.
func (m Marker) Line() func(float64) float64 {
	return func(x float64) float64 {
		return m.Y + m.Slope*(x-m.X)
	}
}

func (m Marker) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case PointMarker:
		return json.Marshal(struct {
			Type  string   `json:"type"`
			X     float64  `json:"x"`
			Y     nullable `json:"y"`
			Label string   `json:"label"`
		}{m.Kind.String(), m.X, nullable(m.Y), m.Label})
	case VLineMarker:
		return json.Marshal(struct {
			Type string  `json:"type"`
			X    float64 `json:"x"`
		}{m.Kind.String(), m.X})
	case TangentMarker:
		return json.Marshal(struct {
			Type  string   `json:"type"`
			X     float64  `json:"x"`
			Y     nullable `json:"y"`
			Slope float64  `json:"slope"`
		}{m.Kind.String(), m.X, nullable(m.Y), m.Slope})
	default:
		return nil, fmt.Errorf("numerics: cannot encode %v", m.Kind)
	}
}

// Plot is everything a plotting front end needs to visualize a computation:
// the sampled function and the markers annotating it.
type Plot struct {
	Series
	Extra []Marker
}

// MarshalJSON encodes the plot as {"x": [...], "y": [...], "extra": [...]},
// with null in place of undefined values.
func (p Plot) MarshalJSON() ([]byte, error) {
	extra := p.Extra
	if extra == nil {
		extra = []Marker{}
	}
	return json.Marshal(struct {
		seriesJSON
		Extra []Marker `json:"extra"`
	}{seriesJSON{X: p.X, Y: nullables(p.Y)}, extra})
}
