package render

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dimuplot/internal/histo"
	"dimuplot/internal/stack"
)

// ErrNothingToDraw is returned for a figure with neither stack nor data.
var ErrNothingToDraw = errors.New("nothing to draw")

// StackFigure is a stack of weighted simulation drawn under data.
type StackFigure struct {
	Title  string
	XLabel string
	Log    bool
	// Stack may be nil or empty, Data may be nil or empty, not both.
	Stack *stack.Stack
	Data  *histo.Hist
	// YMax overrides the automatic y-axis maximum when positive.
	YMax float64
}

func (f StackFigure) hasStack() bool { return f.Stack != nil && !f.Stack.Empty() }

func (f StackFigure) hasData() bool { return f.Data != nil && !f.Data.Empty() }

// Plot builds the figure. Layers are drawn cumulatively so that the
// first layer sits at the bottom.
func (f StackFigure) Plot() (*plot.Plot, error) {
	if !f.hasStack() && !f.hasData() {
		return nil, ErrNothingToDraw
	}
	p := newPlot(f.Title, f.XLabel)
	p.Y.Label.Text = "Events"
	if f.Log {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	var hists []*plotter.Histogram
	if f.hasStack() {
		var err error
		if hists, err = cumulative(f.Stack, f.Log); err != nil {
			return nil, err
		}
		// Top of the stack first so lower layers paint over it.
		for i := len(hists) - 1; i >= 0; i-- {
			p.Add(hists[i])
		}
	}
	if f.hasData() {
		s, err := addData(p, dataPoints(f.Data, f.Log))
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		p.Legend.Add("Data", s)
	}
	for i, h := range hists {
		if legend := f.Stack.Layers[i].Process.Legend; legend != "" {
			p.Legend.Add(Text(legend), h)
		}
	}

	ymax := f.YMax
	if ymax <= 0 {
		var s *stack.Stack
		if f.hasStack() {
			s = f.Stack
		} else {
			s = &stack.Stack{}
		}
		var data *histo.Hist
		if f.hasData() {
			data = f.Data
		}
		ymax = stack.DisplayMax(s, data)
	}
	if ymax > p.Y.Min {
		p.Y.Max = ymax
	}
	if !f.Log {
		p.Y.Min = 0
	}
	return p, nil
}

// cumulative returns one filled histogram per layer, each holding the sum
// of the layers up to and including it.
func cumulative(s *stack.Stack, log bool) ([]*plotter.Histogram, error) {
	first := s.Layers[0].Hist
	sum := make([]float64, first.Len())
	out := make([]*plotter.Histogram, 0, len(s.Layers))
	for _, l := range s.Layers {
		if !first.SameBinning(l.Hist) {
			return nil, fmt.Errorf("layer %s: %w", l.Process.Name, histo.ErrBinning)
		}
		bins := make([]plotter.HistogramBin, l.Hist.Len())
		for i := range bins {
			sum[i] += l.Hist.Content(i + 1)
			bins[i] = plotter.HistogramBin{
				Min:    l.Hist.Edges[i],
				Max:    l.Hist.Edges[i+1],
				Weight: sum[i],
			}
		}
		out = append(out, &plotter.Histogram{
			Bins:      bins,
			Width:     math.Abs(l.Hist.UpperEdge()-l.Hist.LowerEdge()) / float64(len(bins)),
			FillColor: l.Process.Color,
			LineStyle: blackLine(vg.Points(0.5)),
			LogY:      log,
		})
	}
	return out, nil
}
