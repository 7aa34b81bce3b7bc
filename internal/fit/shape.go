package fit

import (
	"fmt"
	"math"

	hepfit "go-hep.org/x/hep/fit"
	"gonum.org/v1/gonum/optimize"

	"dimuplot/internal/histo"
)

// Params are the parameters of A·x·exp(-B·x²).
type Params struct {
	A float64
	B float64
}

// Eval evaluates the shape at x.
func (p Params) Eval(x float64) float64 {
	return p.A * x * math.Exp(-p.B*x*x)
}

// ShapeOptions bounds the shape parameters.
type ShapeOptions struct {
	A Bound
	B Bound
}

// DefaultShapeOptions bounds A to [0, 10000] and B to [0, 100].
func DefaultShapeOptions() ShapeOptions {
	return ShapeOptions{
		A: Bound{Lo: 0, Hi: 10000},
		B: Bound{Lo: 0, Hi: 100},
	}
}

// ShapeResult is a fitted shape and its goodness of fit.
type ShapeResult struct {
	Params
	Chi2    float64
	NDF     int
	Status  optimize.Status
	Warning error // set when the minimiser stopped early
}

type points struct {
	x, y, err []float64
}

// usable collects the bins with a positive error.
func usable(h *histo.Hist) points {
	var p points
	for bin := 1; bin <= h.Len(); bin++ {
		e := h.Error(bin)
		if e <= 0 {
			continue
		}
		p.x = append(p.x, h.Center(bin))
		p.y = append(p.y, h.Content(bin))
		p.err = append(p.err, e)
	}
	return p
}

// Guess derives starting values from the histogram moments. For
// y ∝ x·exp(-B·x²), <x²> = 1/B and Σy·width = A/(2B).
func Guess(h *histo.Hist, opts ShapeOptions) Params {
	var sw, swx2, width float64
	for bin := 1; bin <= h.Len(); bin++ {
		x := h.Center(bin)
		w := h.Content(bin)
		sw += w
		swx2 += w * x * x
		width += h.Width(bin)
	}
	b := 1.0
	if swx2 > 0 {
		b = sw / swx2
	}
	if h.Len() > 0 {
		width /= float64(h.Len())
	}
	p := Params{B: b, A: 2 * b * width * sw}
	p.A = math.Min(math.Max(p.A, opts.A.Lo), opts.A.Hi)
	p.B = math.Min(math.Max(p.B, opts.B.Lo), opts.B.Hi)
	return p
}

// ShapeFit fits A·x·exp(-B·x²) to the bin contents of h by least squares.
func ShapeFit(h *histo.Hist, opts ShapeOptions) (ShapeResult, error) {
	if h == nil || h.Empty() {
		return ShapeResult{}, fmt.Errorf("shape fit: %w", ErrEmptyHistogram)
	}
	pts := usable(h)
	bounds := []Bound{opts.A, opts.B}
	start := Guess(h, opts)

	ps, chi2, st, err := curve(pts, bounds, []float64{start.A, start.B}, func(x float64, ps []float64) float64 {
		return Params{A: ps[0], B: ps[1]}.Eval(x)
	})
	if err != nil {
		return ShapeResult{}, fmt.Errorf("shape fit %s: %w", h.Name, err)
	}
	return ShapeResult{
		Params:  Params{A: ps[0], B: ps[1]},
		Chi2:    chi2,
		NDF:     len(pts.x) - 2,
		Status:  st.status,
		Warning: st.warn,
	}, nil
}

type outcome struct {
	status optimize.Status
	warn   error
}

// curve runs a bounded least-squares fit of model through go-hep's
// Curve1D and returns the external parameters and the χ² at the optimum.
func curve(pts points, bounds []Bound, start []float64, model func(x float64, ps []float64) float64) ([]float64, float64, outcome, error) {
	if len(pts.x) < len(bounds) {
		return nil, 0, outcome{}, fmt.Errorf("%w: %d bins for %d parameters", ErrTooFewPoints, len(pts.x), len(bounds))
	}
	us := internals(bounds, start)
	f := hepfit.Func1D{
		F: func(x float64, us []float64) float64 {
			return model(x, externals(bounds, us))
		},
		N:   len(us),
		Ps:  us,
		X:   pts.x,
		Y:   pts.y,
		Err: pts.err,
	}

	var (
		res *optimize.Result
		out outcome
	)
	for pass := 0; pass < 2; pass++ {
		r, err := hepfit.Curve1D(f, nil, &optimize.NelderMead{})
		if r == nil || (err != nil && r.Status == optimize.Failure) {
			return nil, 0, outcome{}, err
		}
		res = r
		out = outcome{status: r.Status, warn: warning(r.Status, err)}
		f.Ps = r.X
	}

	ps := externals(bounds, res.X)
	return ps, chi2(pts, func(x float64) float64 { return model(x, ps) }), out, nil
}

func chi2(pts points, f func(float64) float64) float64 {
	var sum float64
	for i, x := range pts.x {
		d := (pts.y[i] - f(x)) / pts.err[i]
		sum += d * d
	}
	return sum
}
