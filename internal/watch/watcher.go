// Package watch reruns a procedure when its input files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a file must stay quiet before a rerun.
const DefaultDebounce = 500 * time.Millisecond

// Stats counts watcher activity.
type Stats struct {
	Events        int
	Runs          int
	Failures      int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// Watcher watches a fixed set of files. It watches their directories so
// that files replaced by rename (as most writers do) are still seen.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	pending  time.Time
	logger   *zap.Logger
	stats    Stats
}

// New watches files. debounce <= 0 selects DefaultDebounce.
func New(files []string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		watcher:  fw,
		files:    make(map[string]bool),
		debounce: debounce,
		logger:   logger,
	}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logger.Debug("Watching directory", zap.String("dir", dir))
	}
	return w, nil
}

// Run calls fn each time a watched file settles after a change, until ctx
// is done. Errors from fn are logged and counted; watching continues.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context) error) error {
	tick := time.NewTicker(w.debounce / 5)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-tick.C:
			if !w.settled() {
				continue
			}
			w.logger.Info("Input changed, rerunning")
			err := fn(ctx)
			w.mu.Lock()
			w.stats.Runs++
			if err != nil {
				w.stats.Failures++
			}
			w.mu.Unlock()
			if err != nil {
				w.logger.Error("Rerun failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.files[filepath.Clean(event.Name)] {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.logger.Debug("File event", zap.String("path", event.Name), zap.Stringer("op", event.Op))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Events++
	w.stats.LastEventTime = time.Now()
	w.stats.LastEventPath = event.Name
	w.pending = w.stats.LastEventTime
}

// settled reports and clears a pending change older than the debounce.
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		return false
	}
	w.pending = time.Time{}
	return true
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
