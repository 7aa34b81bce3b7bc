package fit

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"

	"dimuplot/internal/histo"
)

// CombinedResult is the refit of both shapes to data.
type CombinedResult struct {
	Exclusive    Params
	Dissociative Params
	Chi2         float64
	NDF          int
	Status       optimize.Status
	Warning      error // set when the minimiser stopped early
}

// Eval evaluates the summed model at x.
func (c CombinedResult) Eval(x float64) float64 {
	return c.Exclusive.Eval(x) + c.Dissociative.Eval(x)
}

// CombinedFit refits exc(x) + dis(x) to data with all four parameters
// free, starting from the separate shape fits.
func CombinedFit(data *histo.Hist, exc, dis Params, opts ShapeOptions) (CombinedResult, error) {
	if data == nil || data.Empty() {
		return CombinedResult{}, fmt.Errorf("combined fit: %w", ErrEmptyHistogram)
	}
	pts := usable(data)
	bounds := []Bound{opts.A, opts.B, opts.A, opts.B}
	start := []float64{exc.A, exc.B, dis.A, dis.B}

	ps, chi2, st, err := curve(pts, bounds, start, func(x float64, ps []float64) float64 {
		return Params{A: ps[0], B: ps[1]}.Eval(x) + Params{A: ps[2], B: ps[3]}.Eval(x)
	})
	if err != nil {
		return CombinedResult{}, fmt.Errorf("combined fit: %w", err)
	}
	return CombinedResult{
		Exclusive:    Params{A: ps[0], B: ps[1]},
		Dissociative: Params{A: ps[2], B: ps[3]},
		Chi2:         chi2,
		NDF:          len(pts.x) - len(bounds),
		Status:       st.status,
		Warning:      st.warn,
	}, nil
}
