package histo

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrNotFound is returned when a key is not present in a store.
	ErrNotFound = errors.New("histogram not found")
	// ErrNotHistogram is returned when a key holds a non-1D object.
	ErrNotHistogram = errors.New("object is not a 1D histogram")
)

// Store gives read access to named histograms. Returned histograms are
// copies the caller may scale or sum in place.
type Store interface {
	Get(key string) (*Hist, error)
	Keys() ([]string, error)
	Close() error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	hists map[string]*Hist
}

// NewMemory returns a store holding copies of hs keyed by their names.
func NewMemory(hs ...*Hist) *Memory {
	m := &Memory{hists: make(map[string]*Hist, len(hs))}
	for _, h := range hs {
		m.Put(h)
	}
	return m
}

// Put stores a copy of h under h.Name.
func (m *Memory) Put(h *Hist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hists[h.Name] = h.Clone(h.Name)
}

func (m *Memory) Get(key string) (*Hist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.hists[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return h.Clone(key), nil
}

func (m *Memory) Keys() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.hists))
	for k := range m.hists {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *Memory) Close() error { return nil }
