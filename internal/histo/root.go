package histo

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook/rootcnv"
	"go.uber.org/zap"
)

// RootFile reads histograms from a ROOT file.
type RootFile struct {
	path   string
	file   *groot.File
	keys   map[string]string // name -> class
	logger *zap.Logger

	mu sync.Mutex
}

// OpenRoot opens a ROOT file and indexes its top-level keys.
func OpenRoot(path string, logger *zap.Logger) (*RootFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file %s: %w", path, err)
	}
	rf := &RootFile{
		path:   path,
		file:   f,
		keys:   make(map[string]string),
		logger: logger,
	}
	for _, k := range f.Keys() {
		rf.keys[k.Name()] = k.ClassName()
	}
	rf.logger.Debug("Data file opened",
		zap.String("path", path),
		zap.Int("keys", len(rf.keys)))
	return rf, nil
}

// Get reads and converts one histogram.
func (r *RootFile) Get(key string) (*Hist, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.keys[key]; !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, key, r.path)
	}
	obj, err := r.file.Get(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	h1, ok := obj.(rhist.H1)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotHistogram, key, obj.Class())
	}
	return FromH1D(key, rootcnv.H1D(h1)), nil
}

// Keys lists the top-level 1D histograms of the file. Other objects
// (TH2, TTree, directories) are left out since Get cannot read them.
func (r *RootFile) Keys() ([]string, error) {
	keys := make([]string, 0, len(r.keys))
	for k, class := range r.keys {
		if !isH1(class) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases the file.
func (r *RootFile) Close() error {
	return r.file.Close()
}

// isH1 reports whether class is one of the TH1 variants (TH1F, TH1D, ...).
func isH1(class string) bool {
	return strings.HasPrefix(class, "TH1")
}
