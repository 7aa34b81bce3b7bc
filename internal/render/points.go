package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dimuplot/internal/histo"
)

// points is a histogram drawn as markers at the bin centres with
// symmetric vertical errors.
type points struct {
	plotter.XYs
	plotter.YErrors
}

// dataPoints converts h to markers. Under a log scale empty bins are
// dropped and the lower error is kept above zero.
func dataPoints(h *histo.Hist, log bool) points {
	var pts points
	for bin := 1; bin <= h.Len(); bin++ {
		y, e := h.Content(bin), h.Error(bin)
		low := e
		if log {
			if y <= 0 {
				continue
			}
			if low >= y {
				low = 0.9 * y
			}
		}
		pts.XYs = append(pts.XYs, plotter.XY{X: h.Center(bin), Y: y})
		pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{Low: low, High: e})
	}
	return pts
}

// addData draws the markers and error bars of pts and returns the marker
// plotter for the legend.
func addData(p *plot.Plot, pts points) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle = draw.GlyphStyle{Color: black, Radius: vg.Points(2.5), Shape: draw.CircleGlyph{}}
	bars, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, err
	}
	bars.LineStyle = blackLine(vg.Points(1))
	bars.CapWidth = 0
	p.Add(bars, s)
	return s, nil
}

