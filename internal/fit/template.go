// Package fit implements the exclusive/dissociative fit chain: a binned
// two-template likelihood fit, functional fits of each rescaled template
// to A·x·exp(-B·x²), and a combined refit of both shapes to data.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"dimuplot/internal/histo"
)

var (
	// ErrEmptyHistogram is returned when a fit input has zero integral.
	ErrEmptyHistogram = errors.New("empty histogram")
	// ErrTooFewPoints is returned when fewer usable bins than parameters remain.
	ErrTooFewPoints = errors.New("not enough bins with errors to fit")
)

// TemplateOptions configures the template fit.
type TemplateOptions struct {
	Init  float64 // starting yield of both templates
	Bound Bound   // allowed yield range
}

// DefaultTemplateOptions starts both yields at 5 within [0, 1000].
func DefaultTemplateOptions() TemplateOptions {
	return TemplateOptions{Init: 5, Bound: Bound{Lo: 0, Hi: 1000}}
}

// TemplateResult holds the fitted yields of both templates.
type TemplateResult struct {
	ExcScale float64
	DisScale float64
	NLL      float64
	Status   optimize.Status
	Warning  error // set when the minimiser stopped early
}

// TemplateFit fits data with s_exc·exc + s_dis·dis where both templates are
// normalized to unit integral. The yields minimise the extended binned
// Poisson likelihood Σ μ_i - n_i ln μ_i.
func TemplateFit(data, exc, dis *histo.Hist, opts TemplateOptions) (TemplateResult, error) {
	for _, h := range []*histo.Hist{data, exc, dis} {
		if h == nil || h.Empty() {
			return TemplateResult{}, fmt.Errorf("template fit: %w", ErrEmptyHistogram)
		}
	}
	if !data.SameBinning(exc) || !data.SameBinning(dis) {
		return TemplateResult{}, fmt.Errorf("template fit: %w", histo.ErrBinning)
	}

	e := shape(exc)
	d := shape(dis)
	n := data.SumW
	bounds := []Bound{opts.Bound, opts.Bound}

	nll := func(us []float64) float64 {
		ps := externals(bounds, us)
		var sum float64
		for i := range n {
			mu := ps[0]*e[i] + ps[1]*d[i]
			if mu <= 0 {
				mu = math.SmallestNonzeroFloat64
			}
			sum += mu - n[i]*math.Log(mu)
		}
		return sum
	}

	start := internals(bounds, []float64{opts.Init, opts.Init})
	res, warn, err := minimize(nll, start)
	if err != nil {
		return TemplateResult{}, fmt.Errorf("template fit: %w", err)
	}
	ps := externals(bounds, res.X)
	return TemplateResult{
		ExcScale: ps[0],
		DisScale: ps[1],
		NLL:      res.F,
		Status:   res.Status,
		Warning:  warn,
	}, nil
}

func shape(h *histo.Hist) []float64 {
	total := h.Integral()
	out := make([]float64, h.Len())
	for i, w := range h.SumW {
		out[i] = w / total
	}
	return out
}

// minimize runs Nelder-Mead twice, restarting from the first optimum to
// rebuild a collapsed simplex. warn reports a second pass that ended
// without converging.
func minimize(f func([]float64) float64, start []float64) (res *optimize.Result, warn, err error) {
	problem := optimize.Problem{Func: f}
	x := start
	for pass := 0; pass < 2; pass++ {
		settings := &optimize.Settings{
			MajorIterations: 20000,
			FuncEvaluations: 100000,
			Converger: &optimize.FunctionConverge{
				Absolute:   1e-12,
				Relative:   1e-12,
				Iterations: 200,
			},
		}
		r, merr := optimize.Minimize(problem, x, settings, &optimize.NelderMead{})
		if r == nil || (merr != nil && r.Status == optimize.Failure) {
			return nil, nil, merr
		}
		res = r
		warn = warning(r.Status, merr)
		x = r.X
	}
	return res, warn, nil
}
