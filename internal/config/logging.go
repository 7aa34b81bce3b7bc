package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"` // debug, info, warn, error
	Format string `yaml:"format"`                // json, console
	File   string `yaml:"file"`                  // extra output besides stderr
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "console"}
)

func (c *LoggingConfig) validate() error {
	if !contains(validLevels, c.Level) {
		return fmt.Errorf("invalid logging.level: %q (valid: %v)", c.Level, validLevels)
	}
	if !contains(validFormats, c.Format) {
		return fmt.Errorf("invalid logging.format: %q (valid: %v)", c.Format, validFormats)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
