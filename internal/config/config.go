package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"dimuplot/internal/catalog"
)

// DefaultPath is the configuration file read when none is given.
const DefaultPath = "dimuplot.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DIMUPLOT_"

// Config holds all dimuplot configuration.
type Config struct {
	// Input ROOT file and plot output directory
	DataFile  string `yaml:"data_file" env:"DATA_FILE"`
	OutputDir string `yaml:"output_dir" env:"OUTPUT_DIR"`

	// Integrated luminosity the process weights are computed for
	Luminosity float64 `yaml:"luminosity" env:"LUMINOSITY"`

	// Distribution and region used by fit and norm
	Selection SelectionConfig `yaml:"selection"`

	Norm    NormConfig    `yaml:"norm"`
	Graph   GraphConfig   `yaml:"graph"`
	Logging LoggingConfig `yaml:"logging"`
	Results ResultsConfig `yaml:"results"`
}

// SelectionConfig picks one distribution in one mass region.
type SelectionConfig struct {
	Distribution string `yaml:"distribution"`
	Region       string `yaml:"region"`
}

// NormConfig configures the single-bin normalization.
type NormConfig struct {
	Bin            int `yaml:"bin"`             // 1-based
	TargetCategory int `yaml:"target_category"` // normalization group id
}

// GraphConfig configures the graph procedure.
type GraphConfig struct {
	Regions       []string `yaml:"regions,omitempty"`       // glob patterns, empty = all
	Distributions []string `yaml:"distributions,omitempty"` // glob patterns, empty = all
	Jobs          int      `yaml:"jobs"`
	Strict        bool     `yaml:"strict"`
}

// ResultsConfig configures the run ledger. An empty path disables it.
type ResultsConfig struct {
	DatabasePath string `yaml:"database_path" env:"RESULTS_DB"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DataFile:   "dataFile.root",
		OutputDir:  "./Plots/",
		Luminosity: catalog.DefaultLuminosity,

		Selection: SelectionConfig{
			Distribution: "PtPair",
			Region:       "RESOM",
		},

		Norm: NormConfig{
			Bin:            1,
			TargetCategory: int(catalog.GroupElastic),
		},

		Graph: GraphConfig{
			Jobs: 1,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides reads the DIMUPLOT_* variables into c. Unset
// variables leave the current values alone.
func (c *Config) applyEnvOverrides() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Weights returns the process weights at the configured luminosity.
func (c *Config) Weights() catalog.Weights {
	return catalog.NewWeights(c.Luminosity)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs []error
	if c.DataFile == "" {
		errs = append(errs, errors.New("data_file is empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is empty"))
	}
	if c.Luminosity <= 0 {
		errs = append(errs, fmt.Errorf("luminosity must be positive, got %g", c.Luminosity))
	}
	if err := catalog.CheckRegion(c.Selection.Region); err != nil {
		errs = append(errs, fmt.Errorf("selection.region: %w", err))
	}
	if _, err := catalog.LookupDistribution(c.Selection.Distribution); err != nil {
		errs = append(errs, fmt.Errorf("selection.distribution: %w", err))
	}
	if c.Norm.Bin < 1 {
		errs = append(errs, fmt.Errorf("norm.bin must be at least 1, got %d", c.Norm.Bin))
	}
	if c.Norm.TargetCategory < int(catalog.GroupDrellYan) || c.Norm.TargetCategory > int(catalog.GroupSignal) {
		errs = append(errs, fmt.Errorf("norm.target_category must be in [%d, %d], got %d",
			catalog.GroupDrellYan, catalog.GroupSignal, c.Norm.TargetCategory))
	}
	if c.Graph.Jobs < 1 {
		errs = append(errs, fmt.Errorf("graph.jobs must be at least 1, got %d", c.Graph.Jobs))
	}
	if err := c.Logging.validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
