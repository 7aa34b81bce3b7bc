// Package logging builds the zap loggers used across dimuplot. Every
// component logs through a child named after its category.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dimuplot/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup, configuration
	CategoryStore   Category = "store"   // Histogram file access
	CategoryGraph   Category = "graph"   // Stacked plots
	CategoryFit     Category = "fit"     // Two-component fit
	CategoryNorm    Category = "norm"    // Single-bin normalization
	CategoryResults Category = "results" // Run ledger
	CategoryReport  Category = "report"  // Spreadsheet export
	CategoryWatch   Category = "watch"   // Input file watching
)

// New builds a logger from the logging configuration. Logs go to stderr
// and, when set, to cfg.File. verbose forces the debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
	default:
		return nil, fmt.Errorf("invalid log format: %q", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// For returns the child logger of a category. A nil logger yields a no-op.
func For(l *zap.Logger, c Category) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(string(c))
}
