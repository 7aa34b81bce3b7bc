package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimuplot/internal/catalog"
	"dimuplot/internal/logging"
	"dimuplot/internal/report"
)

var (
	weightsXLSX string
	keysPattern string
)

// weightsCmd prints the per-process weights
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Print the process weights at the configured luminosity",
	RunE:  runWeights,
}

// keysCmd lists the histograms in the data file
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the histogram keys in the data file",
	Long: `Lists the 1D histogram keys in the data file (TH2, TTree and other
objects are left out), optionally filtered by a glob pattern:
  dimuplot keys --match 'PtPair_RESOM_*'`,
	RunE: runKeys,
}

func init() {
	weightsCmd.Flags().StringVar(&weightsXLSX, "xlsx", "", "Also write the table to this Excel file")
	keysCmd.Flags().StringVar(&keysPattern, "match", "", "Glob pattern the keys must match")
}

func runWeights(cmd *cobra.Command, args []string) error {
	if cfg.Luminosity <= 0 {
		return fmt.Errorf("luminosity must be positive, got %g", cfg.Luminosity)
	}
	w := cfg.Weights()
	fit := catalog.FitProcesses(w)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PROCESS\tWEIGHT\tGROUP\tFIT\n")
	for i, p := range catalog.NormProcesses(w) {
		kind := "dissociative"
		if fit[i].Category == catalog.Exclusive {
			kind = "exclusive"
		}
		fmt.Fprintf(tw, "%s\t%.6g\t%d\t%s\n", p.Name, p.Weight, p.Category, kind)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "luminosity: %g\n", w.Luminosity)

	if weightsXLSX != "" {
		if err := report.WriteWeights(weightsXLSX, w); err != nil {
			return err
		}
		logging.For(logger, logging.CategoryReport).Info("Weights exported", zap.String("path", weightsXLSX))
	}
	return nil
}

func runKeys(cmd *cobra.Command, args []string) error {
	if keysPattern != "" && !doublestar.ValidatePattern(keysPattern) {
		return fmt.Errorf("%w: %q", doublestar.ErrBadPattern, keysPattern)
	}
	store, err := openStore(cfg.DataFile, logging.For(logger, logging.CategoryStore))
	if err != nil {
		return err
	}
	defer store.Close()

	keys, err := store.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if keysPattern != "" {
			if ok, _ := doublestar.Match(keysPattern, k); !ok {
				continue
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), k)
	}
	return nil
}
