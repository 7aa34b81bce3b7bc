package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dimuplot/internal/histo"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// Curve is a fitted function with its legend entry.
type Curve struct {
	Name string
	F    func(float64) float64
}

// FitFigure shows data with the dissociative, exclusive and summed fit
// curves overlaid.
type FitFigure struct {
	Title        string
	XLabel       string
	Data         *histo.Hist
	Dissociative Curve
	Exclusive    Curve
	Summed       Curve
}

// Plot builds the figure. The y axis starts at zero and the curves span
// the data range.
func (f FitFigure) Plot() (*plot.Plot, error) {
	if f.Data == nil || f.Data.Empty() {
		return nil, ErrNothingToDraw
	}
	title := f.Title
	if title == "" {
		title = "Fitting results"
	}
	p := newPlot(title, f.XLabel)
	p.Y.Label.Text = "Events"

	s, err := addData(p, dataPoints(f.Data, false))
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	p.Legend.Add("Data", s)

	for _, c := range []struct {
		curve Curve
		color color.Color
	}{
		{f.Dissociative, red},
		{f.Exclusive, blue},
		{f.Summed, black},
	} {
		if c.curve.F == nil {
			continue
		}
		fn := plotter.NewFunction(c.curve.F)
		fn.XMin = f.Data.LowerEdge()
		fn.XMax = f.Data.UpperEdge()
		fn.Samples = 200
		fn.LineStyle = draw.LineStyle{Color: c.color, Width: vg.Points(2)}
		p.Add(fn)
		p.Legend.Add(c.curve.Name, fn)
	}
	p.Y.Min = 0
	return p, nil
}
