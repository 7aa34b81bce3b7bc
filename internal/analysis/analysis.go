// Package analysis runs the graph, fit and normalization procedures over a
// histogram store and writes their plots and summaries.
package analysis

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"dimuplot/internal/catalog"
	"dimuplot/internal/histo"
	"dimuplot/internal/logging"
)

// ErrNoSelection is returned when the selection patterns match nothing.
var ErrNoSelection = errors.New("selection matched nothing")

// Runner holds what every procedure needs.
type Runner struct {
	Store   histo.Store
	Weights catalog.Weights
	OutDir  string

	// Out receives the printed summaries. Defaults to stdout.
	Out    io.Writer
	Logger *zap.Logger
}

// NewRunner returns a runner writing plots under outDir.
func NewRunner(store histo.Store, w catalog.Weights, outDir string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Store:   store,
		Weights: w,
		OutDir:  outDir,
		Out:     os.Stdout,
		Logger:  logger,
	}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) log(c logging.Category) *zap.Logger {
	return logging.For(r.Logger, c)
}

// Select returns the names matching any of the glob patterns, in the
// order of names. No patterns selects everything.
func Select(patterns, names []string) ([]string, error) {
	if len(patterns) == 0 {
		return append([]string(nil), names...), nil
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, p)
		}
	}
	var out []string
	for _, name := range names {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				out = append(out, name)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSelection, patterns)
	}
	return out, nil
}

// lookup validates a distribution and region pair.
func lookup(dist, region string) (catalog.Distribution, error) {
	if err := catalog.CheckRegion(region); err != nil {
		return catalog.Distribution{}, err
	}
	return catalog.LookupDistribution(dist)
}
