package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"honnef.co/go/numerics"
)

// renderPlot draws the response's plot and saves it to path. The image
// format is chosen by the file extension.
func renderPlot(resp *numerics.Response, path string) error {
	p, err := newPlot(resp)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

func newPlot(resp *numerics.Response) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = resp.Method
	p.X.Label.Text = "x"
	p.Y.Label.Text = "f(x)"
	p.Add(plotter.NewGrid())

	// The curve is broken wherever the function is undefined.
	first := true
	for run := range resp.Plot.Runs() {
		l, err := plotter.NewLine(xys(run))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Color = plotutil.Color(0)
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		if first {
			p.Legend.Add("f(x)", l)
			first = false
		}
	}

	// Vertical guides span the curve, so they are added after it has set the
	// y range.
	ymin, ymax := p.Y.Min, p.Y.Max
	if ymin > ymax {
		ymin, ymax = -1, 1
	}
	legend := map[string]bool{}
	for _, m := range resp.Plot.Extra {
		switch m.Kind {
		case numerics.PointMarker:
			if !m.Defined() {
				continue
			}
			s, err := plotter.NewScatter(plotter.XYs{{X: m.X, Y: m.Y}})
			if err != nil {
				return nil, err
			}
			s.GlyphStyle.Shape = draw.CircleGlyph{}
			s.GlyphStyle.Radius = vg.Points(3)
			if m.Label == numerics.LabelData {
				s.GlyphStyle.Color = plotutil.Color(2)
			} else {
				s.GlyphStyle.Color = plotutil.Color(1)
			}
			p.Add(s)
			if !legend[m.Label] {
				p.Legend.Add(m.Label, s)
				legend[m.Label] = true
			}
		case numerics.VLineMarker:
			l, err := plotter.NewLine(plotter.XYs{{X: m.X, Y: ymin}, {X: m.X, Y: ymax}})
			if err != nil {
				return nil, err
			}
			l.LineStyle.Color = plotutil.Color(3)
			l.LineStyle.Dashes = plotutil.Dashes(1)
			p.Add(l)
		case numerics.TangentMarker:
			if !m.Defined() {
				continue
			}
			fn := plotter.NewFunction(m.Line())
			fn.Color = plotutil.Color(1)
			fn.Dashes = plotutil.Dashes(2)
			fn.Samples = 2
			p.Add(fn)
			p.Legend.Add(fmt.Sprintf("tangent, slope %.4g", m.Slope), fn)
		}
	}
	return p, nil
}

func xys(pts []numerics.Point) plotter.XYs {
	out := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		out[i].X, out[i].Y = pt.Splat()
	}
	return out
}
