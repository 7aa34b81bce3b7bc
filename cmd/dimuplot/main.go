package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dimuplot/internal/config"
	"dimuplot/internal/histo"
	"dimuplot/internal/logging"
	"dimuplot/internal/results"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataFile   string
	outputDir  string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger

	// openStore opens the histogram file; replaced in tests.
	openStore = func(path string, l *zap.Logger) (histo.Store, error) {
		return histo.OpenRoot(path, l)
	}
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dimuplot",
	Short: "Dimuon histogram plotting, fitting and normalization",
	Long: `dimuplot reads dimuon histograms from a ROOT file, weights the simulated
processes to the integrated luminosity and

  graph  draws data over the stacked simulation for every mass region
  fit    splits data into exclusive and dissociative components
  norm   rescales one process group to match data in a single bin

Settings come from dimuplot.yaml, DIMUPLOT_* environment variables and flags,
in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data") {
			cfg.DataFile = dataFile
		}
		if cmd.Flags().Changed("out") {
			cfg.OutputDir = outputDir
		}

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logging.For(logger, logging.CategoryBoot).Debug("Configuration loaded",
			zap.String("config", configPath),
			zap.String("data_file", cfg.DataFile),
			zap.String("output_dir", cfg.OutputDir),
			zap.Float64("luminosity", cfg.Luminosity))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "ROOT file with the histograms (overrides data_file)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "out", "o", "", "Output directory for plots (overrides output_dir)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(normCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openData validates the configuration and opens the histogram file.
func openData() (histo.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	store, err := openStore(cfg.DataFile, logging.For(logger, logging.CategoryStore))
	if err != nil {
		return nil, err
	}
	return store, nil
}

// valuer is a procedure summary that can be recorded.
type valuer interface {
	Values() map[string]float64
}

// record stores a run in the results ledger when one is configured.
// Ledger failures are logged, not returned: the plots are already written.
func record(ctx context.Context, command, dist, region string, summary valuer) {
	if cfg.Results.DatabasePath == "" {
		return
	}
	log := logging.For(logger, logging.CategoryResults)
	store, err := results.NewStore(cfg.Results.DatabasePath)
	if err != nil {
		log.Warn("Failed to open results ledger", zap.Error(err))
		return
	}
	defer store.Close()

	id, err := store.Record(ctx, &results.Run{
		Command:      command,
		Distribution: dist,
		Region:       region,
		DataFile:     cfg.DataFile,
		Values:       summary.Values(),
	})
	if err != nil {
		log.Warn("Failed to record run", zap.Error(err))
		return
	}
	log.Info("Run recorded", zap.String("id", id), zap.String("command", command))
}
