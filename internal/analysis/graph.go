package analysis

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"dimuplot/internal/catalog"
	"dimuplot/internal/histo"
	"dimuplot/internal/logging"
	"dimuplot/internal/render"
	"dimuplot/internal/stack"
)

// GraphOptions selects what the graph procedure draws.
type GraphOptions struct {
	// Regions and Distributions are glob patterns; empty selects all.
	Regions       []string
	Distributions []string
	// Jobs bounds the regions drawn concurrently.
	Jobs int
	// Strict turns missing histograms into errors instead of skips.
	Strict bool
}

// GraphSummary lists what the graph procedure did.
type GraphSummary struct {
	Written []string
	// Empty counts pairs with neither data nor simulation.
	Empty int
	// Missing counts pairs skipped for a missing histogram.
	Missing int
}

// Values returns the counters for the results ledger.
func (s *GraphSummary) Values() map[string]float64 {
	return map[string]float64{
		"written": float64(len(s.Written)),
		"empty":   float64(s.Empty),
		"missing": float64(s.Missing),
	}
}

// Graph draws the data over the weighted simulation stack for every
// selected region and distribution to <out>/<region>/<dist>_<region>.png.
func (r *Runner) Graph(ctx context.Context, opts GraphOptions) (*GraphSummary, error) {
	regions, err := Select(opts.Regions, catalog.MassRegions)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, d := range catalog.Distributions() {
		keys = append(keys, d.Key)
	}
	dists, err := Select(opts.Distributions, keys)
	if err != nil {
		return nil, err
	}

	logger := r.log(logging.CategoryGraph)
	logger.Info("Drawing distributions",
		zap.Int("regions", len(regions)),
		zap.Int("distributions", len(dists)),
		zap.Int("jobs", opts.Jobs))

	var (
		mu      sync.Mutex
		summary GraphSummary
	)
	g, ctx := errgroup.WithContext(ctx)
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	g.SetLimit(jobs)
	processes := catalog.GraphProcesses(r.Weights)

	for _, region := range regions {
		g.Go(func() error {
			for _, dist := range dists {
				if err := ctx.Err(); err != nil {
					return err
				}
				path, err := r.graphOne(dist, region, processes)
				mu.Lock()
				switch {
				case errors.Is(err, histo.ErrNotFound) && !opts.Strict:
					summary.Missing++
					logger.Warn("Skipping missing histogram", zap.Error(err))
					err = nil
				case errors.Is(err, render.ErrNothingToDraw):
					summary.Empty++
					logger.Debug("Nothing to draw",
						zap.String("distribution", dist),
						zap.String("region", region))
					err = nil
				case err == nil:
					summary.Written = append(summary.Written, path)
				}
				mu.Unlock()
				if err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(summary.Written)
	logger.Info("Distributions drawn",
		zap.Int("written", len(summary.Written)),
		zap.Int("empty", summary.Empty),
		zap.Int("missing", summary.Missing))
	return &summary, nil
}

func (r *Runner) graphOne(dist, region string, processes catalog.Processes) (string, error) {
	d, err := lookup(dist, region)
	if err != nil {
		return "", err
	}
	data, err := r.Store.Get(catalog.HistKey(dist, region, catalog.DataSample))
	if err != nil {
		return "", err
	}
	s, err := stack.Build(r.Store, dist, region, processes, stack.Category(catalog.Included))
	if err != nil {
		return "", err
	}
	p, err := render.StackFigure{
		Title:  d.Title,
		XLabel: d.AxisLabel(),
		Log:    d.Log,
		Stack:  s,
		Data:   data,
	}.Plot()
	if err != nil {
		return "", err
	}
	path := filepath.Join(r.OutDir, region, dist+"_"+region+".png")
	if err := render.Save(p, render.Wide, path); err != nil {
		return "", err
	}
	return path, nil
}
