package analysis

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"dimuplot/internal/catalog"
	"dimuplot/internal/fit"
	"dimuplot/internal/logging"
	"dimuplot/internal/render"
	"dimuplot/internal/stack"
)

// FitSplitFile is the name of the fit plot under the output directory.
const FitSplitFile = "fitSplitHist.png"

const separator = "----------------------------------------"

// FitSummary is the outcome of the two-component fit.
type FitSummary struct {
	Distribution string
	Region       string
	Result       *fit.Result
	Path         string
}

// Values returns the fitted parameters for the results ledger.
func (s *FitSummary) Values() map[string]float64 {
	c := s.Result.Combined
	return map[string]float64{
		"exclusive_scale":    s.Result.Template.ExcScale,
		"dissociative_scale": s.Result.Template.DisScale,
		"exclusive_a":        c.Exclusive.A,
		"exclusive_b":        c.Exclusive.B,
		"dissociative_a":     c.Dissociative.A,
		"dissociative_b":     c.Dissociative.B,
		"chi2":               c.Chi2,
		"ndf":                float64(c.NDF),
	}
}

// Fit splits the simulation into exclusive and dissociative templates,
// runs the two-component fit against data, draws the result and prints
// the fitted parameters.
func (r *Runner) Fit(ctx context.Context, dist, region string, opts fit.Options) (*FitSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := lookup(dist, region)
	if err != nil {
		return nil, err
	}
	logger := r.log(logging.CategoryFit).With(zap.String("distribution", dist), zap.String("region", region))

	data, err := r.Store.Get(catalog.HistKey(dist, region, catalog.DataSample))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	s, err := stack.Build(r.Store, dist, region, catalog.FitProcesses(r.Weights), stack.All)
	if err != nil {
		return nil, err
	}
	exc, dis, err := stack.Split(s, catalog.Exclusive, catalog.Dissociative)
	if err != nil {
		return nil, err
	}
	if exc == nil || dis == nil {
		return nil, fmt.Errorf("%s: %w", s.Name, fit.ErrEmptyHistogram)
	}

	res, err := fit.TwoComponent(data, exc, dis, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	logger.Info("Template fit done",
		zap.Float64("exclusive_scale", res.Template.ExcScale),
		zap.Float64("dissociative_scale", res.Template.DisScale),
		zap.Stringer("status", res.Template.Status))
	logger.Debug("Combined fit done",
		zap.Float64("chi2", res.Combined.Chi2),
		zap.Int("ndf", res.Combined.NDF))
	logStages(logger, res)

	p, err := render.FitFigure{
		XLabel:       d.AxisLabel(),
		Data:         data,
		Dissociative: render.Curve{Name: "Dissociative fit", F: res.Dissociative.Params.Eval},
		Exclusive:    render.Curve{Name: "Exclusive fit", F: res.Exclusive.Params.Eval},
		Summed:       render.Curve{Name: "Summed fit", F: res.Combined.Eval},
	}.Plot()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(r.OutDir, FitSplitFile)
	if err := render.Save(p, render.Wide, path); err != nil {
		return nil, err
	}

	summary := &FitSummary{Distribution: dist, Region: region, Result: res, Path: path}
	summary.Print(r.out())
	return summary, nil
}

// logStages warns about every minimisation that stopped before converging.
func logStages(logger *zap.Logger, res *fit.Result) {
	for _, st := range res.Stages() {
		if st.Warning != nil {
			logger.Warn("Fit did not converge, keeping best parameters",
				zap.String("stage", st.Name),
				zap.Stringer("status", st.Status),
				zap.Error(st.Warning))
			continue
		}
		logger.Debug("Fit converged", zap.String("stage", st.Name), zap.Stringer("status", st.Status))
	}
}

// Print writes the fitted parameters of both components.
func (s *FitSummary) Print(w io.Writer) {
	c := s.Result.Combined
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Dissociative A: %g\n", c.Dissociative.A)
	fmt.Fprintf(w, "Dissociative B: %g\n", c.Dissociative.B)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Exclusive A: %g\n", c.Exclusive.A)
	fmt.Fprintf(w, "Exclusive B: %g\n", c.Exclusive.B)
	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "Formula: A*x*exp(-B*x*x)")
	fmt.Fprintln(w, separator)
}
