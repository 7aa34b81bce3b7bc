package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimuplot/internal/logging"
	"dimuplot/internal/report"
	"dimuplot/internal/results"
)

var (
	historyLimit int
	historyXLSX  string
)

// historyCmd lists recorded runs
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List runs recorded in the results ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list (0 = all)")
	historyCmd.Flags().StringVar(&historyXLSX, "xlsx", "", "Also write the runs to this Excel file")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Results.DatabasePath == "" {
		return errors.New("no results ledger configured (set results.database_path or DIMUPLOT_RESULTS_DB)")
	}
	store, err := results.NewStore(cfg.Results.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tSTARTED\tCOMMAND\tDISTRIBUTION\tREGION\tVALUES\n")
	for _, r := range runs {
		var values []string
		for _, name := range r.Names() {
			values = append(values, fmt.Sprintf("%s=%g", name, r.Values[name]))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Command, r.Distribution, r.Region, strings.Join(values, " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if historyXLSX != "" {
		if err := report.WriteRuns(historyXLSX, runs); err != nil {
			return err
		}
		logging.For(logger, logging.CategoryReport).Info("Runs exported", zap.String("path", historyXLSX), zap.Int("runs", len(runs)))
	}
	return nil
}
