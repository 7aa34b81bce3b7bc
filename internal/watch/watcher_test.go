package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWatcherReruns(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "dataFile.root")
	other := filepath.Join(dir, "other.root")
	require.NoError(t, os.WriteFile(data, []byte("v1"), 0644))

	w, err := New([]string{data}, 50*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	runs := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			runs <- struct{}{}
			return errors.New("plot failed")
		})
	}()

	// Unwatched files in the same directory are ignored.
	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	require.NoError(t, os.WriteFile(data, []byte("v2"), 0644))

	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatal("no rerun after the data file changed")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	stats := w.Stats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Runs, 1)
	assert.Equal(t, stats.Runs, stats.Failures)
	assert.Equal(t, data, stats.LastEventPath)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "absent", "f.root")}, 0, nil)
	assert.Error(t, err)
}
