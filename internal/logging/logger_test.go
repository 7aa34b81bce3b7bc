package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dimuplot/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		verbose bool
		debug   bool
	}{
		{"info", "info", false, false},
		{"debug", "debug", false, true},
		{"verbose wins", "error", true, true},
		{"empty is info", "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(config.LoggingConfig{Level: tt.level}, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
		})
	}
}

func TestNewErrors(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Level: "info", Format: "xml"}, false)
	assert.Error(t, err)
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimuplot.log")
	l, err := New(config.LoggingConfig{Level: "info", Format: "json", File: path}, false)
	require.NoError(t, err)

	For(l, CategoryFit).Info("Template fit done", zap.Float64("exclusive_scale", 12.5))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "fit", entry["logger"])
	assert.Equal(t, "Template fit done", entry["msg"])
	assert.Equal(t, 12.5, entry["exclusive_scale"])
}

func TestForNil(t *testing.T) {
	assert.NotPanics(t, func() { For(nil, CategoryGraph).Info("dropped") })
}
