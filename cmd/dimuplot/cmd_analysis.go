package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimuplot/internal/analysis"
	"dimuplot/internal/catalog"
	"dimuplot/internal/fit"
	"dimuplot/internal/logging"
	"dimuplot/internal/watch"
)

var (
	graphRegions []string
	graphDists   []string
	graphJobs    int
	graphStrict  bool
	graphWatch   bool

	selDist   string
	selRegion string

	normBin      int
	normCategory int
)

// graphCmd draws every selected distribution in every selected region
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Draw data over the stacked simulation",
	Long: `Draws one plot per mass region and distribution to
<out>/<region>/<distribution>_<region>.png.

Regions and distributions are selected with glob patterns:
  dimuplot graph --region 'RES*' --dist 'PtPair*' --jobs 4

With --watch the plots are redrawn each time the data file is rewritten.`,
	RunE: runGraph,
}

// fitCmd runs the exclusive/dissociative split
var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit data with exclusive and dissociative components",
	Long: `Fits data with the exclusive and dissociative simulation templates,
fits each rescaled template with A*x*exp(-B*x*x), refits their sum to data,
draws <out>/fitSplitHist.png and prints the fitted parameters.`,
	RunE: runFit,
}

// normCmd renormalizes one process group in one bin
var normCmd = &cobra.Command{
	Use:   "norm",
	Short: "Renormalize one process group to data in a single bin",
	Long: `Solves for the factor that makes the stacked simulation equal data in
the selected bin when applied to the target group, prints it and draws the
rescaled stack to <out>/<distribution>_<region>_NORM<factor>.png.

Groups: 1 Drell-Yan, 2 double dissociation, 3 single dissociation,
4 elastic, 5 inclusive Upsilon, 6 signal.`,
	RunE: runNorm,
}

func init() {
	graphCmd.Flags().StringSliceVar(&graphRegions, "region", nil, "Mass region glob patterns (default: graph.regions)")
	graphCmd.Flags().StringSliceVar(&graphDists, "dist", nil, "Distribution glob patterns (default: graph.distributions)")
	graphCmd.Flags().IntVarP(&graphJobs, "jobs", "j", 0, "Regions drawn concurrently (default: graph.jobs)")
	graphCmd.Flags().BoolVar(&graphStrict, "strict", false, "Fail on missing histograms instead of skipping them")
	graphCmd.Flags().BoolVarP(&graphWatch, "watch", "w", false, "Redraw whenever the data file changes")

	for _, c := range []*cobra.Command{fitCmd, normCmd} {
		c.Flags().StringVar(&selDist, "dist", "", "Distribution (default: selection.distribution)")
		c.Flags().StringVar(&selRegion, "region", "", "Mass region (default: selection.region)")
	}
	normCmd.Flags().IntVar(&normBin, "bin", 0, "1-based bin to match (default: norm.bin)")
	normCmd.Flags().IntVar(&normCategory, "category", 0, "Process group to rescale (default: norm.target_category)")
}

// applySelection copies the selection flags that were set into cfg.
func applySelection(cmd *cobra.Command) {
	if cmd.Flags().Changed("dist") {
		cfg.Selection.Distribution = selDist
	}
	if cmd.Flags().Changed("region") {
		cfg.Selection.Region = strings.ToUpper(selRegion)
	}
}

// upperRegions upper-cases region patterns; mass region names are all
// upper case, so "resom" and "res*" select as "RESOM" and "RES*" do.
func upperRegions(patterns []string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ToUpper(p)
	}
	return out
}

func newRunner(cmd *cobra.Command) (*analysis.Runner, func(), error) {
	store, err := openData()
	if err != nil {
		return nil, nil, err
	}
	r := analysis.NewRunner(store, cfg.Weights(), cfg.OutputDir, logger)
	r.Out = cmd.OutOrStdout()
	return r, func() { store.Close() }, nil
}

func runGraph(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("region") {
		cfg.Graph.Regions = upperRegions(graphRegions)
	}
	if cmd.Flags().Changed("dist") {
		cfg.Graph.Distributions = graphDists
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Graph.Jobs = graphJobs
	}
	if cmd.Flags().Changed("strict") {
		cfg.Graph.Strict = graphStrict
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if err := drawGraphs(ctx, cmd); err != nil {
		return err
	}
	if !graphWatch {
		return nil
	}

	w, err := watch.New([]string{cfg.DataFile}, watch.DefaultDebounce, logging.For(logger, logging.CategoryWatch))
	if err != nil {
		return err
	}
	defer w.Close()
	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s, interrupt to stop\n", cfg.DataFile)
	err = w.Run(ctx, func(ctx context.Context) error { return drawGraphs(ctx, cmd) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// drawGraphs reopens the data file and draws every selected plot.
func drawGraphs(ctx context.Context, cmd *cobra.Command) error {
	r, done, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer done()

	summary, err := r.Graph(ctx, analysis.GraphOptions{
		Regions:       cfg.Graph.Regions,
		Distributions: cfg.Graph.Distributions,
		Jobs:          cfg.Graph.Jobs,
		Strict:        cfg.Graph.Strict,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d plots written to %s (%d empty, %d missing)\n",
		len(summary.Written), cfg.OutputDir, summary.Empty, summary.Missing)
	record(ctx, "graph", strings.Join(cfg.Graph.Distributions, ","), strings.Join(cfg.Graph.Regions, ","), summary)
	return nil
}

func runFit(cmd *cobra.Command, args []string) error {
	applySelection(cmd)

	ctx, cancel := commandContext(cmd)
	defer cancel()
	r, done, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer done()

	dist, region := cfg.Selection.Distribution, cfg.Selection.Region
	summary, err := r.Fit(ctx, dist, region, fit.DefaultOptions())
	if err != nil {
		return err
	}
	logger.Info("Fit plot written", zap.String("path", summary.Path))
	record(ctx, "fit", dist, region, summary)
	return nil
}

func runNorm(cmd *cobra.Command, args []string) error {
	applySelection(cmd)
	if cmd.Flags().Changed("bin") {
		cfg.Norm.Bin = normBin
	}
	if cmd.Flags().Changed("category") {
		cfg.Norm.TargetCategory = normCategory
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()
	r, done, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer done()

	dist, region := cfg.Selection.Distribution, cfg.Selection.Region
	summary, err := r.Norm(ctx, dist, region, cfg.Norm.Bin, catalog.Category(cfg.Norm.TargetCategory))
	if err != nil {
		return err
	}
	logger.Info("Normalized plot written", zap.String("path", summary.Path))
	record(ctx, "norm", dist, region, summary)
	return nil
}
