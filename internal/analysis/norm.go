package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"dimuplot/internal/catalog"
	"dimuplot/internal/logging"
	"dimuplot/internal/norm"
	"dimuplot/internal/render"
)

// NormSummary is the outcome of a single-bin normalization.
type NormSummary struct {
	Distribution string
	Region       string
	Result       *norm.Result
	Path         string
}

// Values returns the normalization inputs and factor for the results
// ledger.
func (s *NormSummary) Values() map[string]float64 {
	return map[string]float64{
		"bin":      float64(s.Result.Bin),
		"category": float64(s.Result.Category),
		"data":     s.Result.Inputs.Data,
		"target":   s.Result.Target,
		"total":    s.Result.Total,
		"factor":   s.Result.Factor,
	}
}

// FormatFactor renders a factor the way it appears in file names.
func FormatFactor(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// Norm rescales the target category so that the stack matches data in
// bin, prints the factor and draws the renormalized stack to
// <out>/<dist>_<region>_NORM<factor>.png.
func (r *Runner) Norm(ctx context.Context, dist, region string, bin int, target catalog.Category) (*NormSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := lookup(dist, region)
	if err != nil {
		return nil, err
	}
	res, err := norm.Compute(r.Store, dist, region, bin, target, catalog.NormProcesses(r.Weights))
	if err != nil {
		return nil, err
	}
	r.log(logging.CategoryNorm).Info("Normalization computed",
		zap.String("distribution", dist),
		zap.String("region", region),
		zap.Int("bin", bin),
		zap.Int("category", int(target)),
		zap.Float64("data", res.Inputs.Data),
		zap.Float64("target", res.Target),
		zap.Float64("total", res.Total),
		zap.Float64("factor", res.Factor))

	factor := FormatFactor(res.Factor)
	fmt.Fprintln(r.out(), factor)

	p, err := render.StackFigure{
		Title:  d.Title,
		XLabel: d.AxisLabel(),
		Log:    d.Log,
		Stack:  res.Stack,
		Data:   res.Data,
	}.Plot()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(r.OutDir, dist+"_"+region+"_NORM"+factor+".png")
	if err := render.Save(p, render.Square, path); err != nil {
		return nil, err
	}
	return &NormSummary{Distribution: dist, Region: region, Result: res, Path: path}, nil
}
