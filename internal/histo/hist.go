// Package histo holds the binned histogram value used by the analysis
// procedures and the stores histograms are read from.
//
// Bins are numbered from 1, as in the ROOT files the histograms come from.
// Under- and overflow are not carried.
package histo

import (
	"errors"
	"fmt"
	"math"

	"go-hep.org/x/hep/hbook"
)

var (
	// ErrBinning is returned when combining histograms with different bins.
	ErrBinning = errors.New("incompatible binning")
	// ErrBinRange is returned for a bin number outside [1, Len].
	ErrBinRange = errors.New("bin out of range")
)

// Hist is a 1D histogram with per-bin sum of weights and sum of squared
// weights. Len(Edges) == Len()+1.
type Hist struct {
	Name  string
	Edges []float64
	SumW  []float64
	SumW2 []float64
}

// New returns an empty histogram with n equal bins over [lo, hi).
func New(name string, n int, lo, hi float64) *Hist {
	edges := make([]float64, n+1)
	width := (hi - lo) / float64(n)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[n] = hi
	return NewFromEdges(name, edges)
}

// NewFromEdges returns an empty histogram with the given bin edges.
func NewFromEdges(name string, edges []float64) *Hist {
	n := len(edges) - 1
	if n < 0 {
		n = 0
	}
	return &Hist{
		Name:  name,
		Edges: append([]float64(nil), edges...),
		SumW:  make([]float64, n),
		SumW2: make([]float64, n),
	}
}

// FromH1D copies the in-range bins of a go-hep histogram.
func FromH1D(name string, h *hbook.H1D) *Hist {
	bins := h.Binning.Bins
	edges := make([]float64, 0, len(bins)+1)
	out := &Hist{
		Name:  name,
		SumW:  make([]float64, len(bins)),
		SumW2: make([]float64, len(bins)),
	}
	for i, bin := range bins {
		edges = append(edges, bin.XMin())
		out.SumW[i] = bin.SumW()
		out.SumW2[i] = bin.SumW2()
	}
	if len(bins) > 0 {
		edges = append(edges, bins[len(bins)-1].XMax())
	}
	out.Edges = edges
	return out
}

// Len returns the number of bins.
func (h *Hist) Len() int { return len(h.SumW) }

// Clone returns a deep copy under a new name.
func (h *Hist) Clone(name string) *Hist {
	return &Hist{
		Name:  name,
		Edges: append([]float64(nil), h.Edges...),
		SumW:  append([]float64(nil), h.SumW...),
		SumW2: append([]float64(nil), h.SumW2...),
	}
}

// Fill adds weight w at x. Values outside the edges are dropped.
func (h *Hist) Fill(x, w float64) {
	i := h.find(x)
	if i < 0 {
		return
	}
	h.SumW[i] += w
	h.SumW2[i] += w * w
}

// SetBin sets the content and error of bin (1-based).
func (h *Hist) SetBin(bin int, content, err float64) error {
	if bin < 1 || bin > h.Len() {
		return fmt.Errorf("%w: %d of %d", ErrBinRange, bin, h.Len())
	}
	h.SumW[bin-1] = content
	h.SumW2[bin-1] = err * err
	return nil
}

func (h *Hist) find(x float64) int {
	n := h.Len()
	if n == 0 || x < h.Edges[0] || x >= h.Edges[n] {
		return -1
	}
	lo, hi := 0, n
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= h.Edges[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// Scale multiplies contents by f and squared errors by f².
func (h *Hist) Scale(f float64) {
	for i := range h.SumW {
		h.SumW[i] *= f
		h.SumW2[i] *= f * f
	}
}

// Add accumulates o into h. Both must share the same edges.
func (h *Hist) Add(o *Hist) error {
	if !h.SameBinning(o) {
		return fmt.Errorf("%w: %s (%d bins) + %s (%d bins)", ErrBinning, h.Name, h.Len(), o.Name, o.Len())
	}
	for i := range h.SumW {
		h.SumW[i] += o.SumW[i]
		h.SumW2[i] += o.SumW2[i]
	}
	return nil
}

// SameBinning reports whether both histograms have identical edges.
func (h *Hist) SameBinning(o *Hist) bool {
	if len(h.Edges) != len(o.Edges) {
		return false
	}
	for i, e := range h.Edges {
		if math.Abs(e-o.Edges[i]) > 1e-9*math.Max(1, math.Abs(e)) {
			return false
		}
	}
	return true
}

// Integral returns the sum of bin contents.
func (h *Hist) Integral() float64 {
	var s float64
	for _, w := range h.SumW {
		s += w
	}
	return s
}

// Empty reports a zero integral.
func (h *Hist) Empty() bool { return h.Integral() == 0 }

// Content returns the content of bin (1-based); 0 outside the range.
func (h *Hist) Content(bin int) float64 {
	if bin < 1 || bin > h.Len() {
		return 0
	}
	return h.SumW[bin-1]
}

// Error returns the statistical error of bin (1-based).
func (h *Hist) Error(bin int) float64 {
	if bin < 1 || bin > h.Len() {
		return 0
	}
	return math.Sqrt(h.SumW2[bin-1])
}

// MaxBin returns the first bin holding the largest content.
func (h *Hist) MaxBin() int {
	best := 0
	for i, w := range h.SumW {
		if w > h.SumW[best] {
			best = i
		}
	}
	return best + 1
}

// Max returns the largest bin content.
func (h *Hist) Max() float64 {
	if h.Len() == 0 {
		return 0
	}
	return h.Content(h.MaxBin())
}

// Min returns the smallest bin content.
func (h *Hist) Min() float64 {
	if h.Len() == 0 {
		return 0
	}
	m := h.SumW[0]
	for _, w := range h.SumW[1:] {
		m = math.Min(m, w)
	}
	return m
}

// Center returns the middle of bin (1-based).
func (h *Hist) Center(bin int) float64 {
	return 0.5 * (h.Edges[bin-1] + h.Edges[bin])
}

// Width returns the width of bin (1-based).
func (h *Hist) Width(bin int) float64 {
	return h.Edges[bin] - h.Edges[bin-1]
}

// UpperEdge returns the upper edge of the last bin.
func (h *Hist) UpperEdge() float64 {
	if len(h.Edges) == 0 {
		return 0
	}
	return h.Edges[len(h.Edges)-1]
}

// LowerEdge returns the lower edge of the first bin.
func (h *Hist) LowerEdge() float64 {
	if len(h.Edges) == 0 {
		return 0
	}
	return h.Edges[0]
}
