// Package stack scales simulated process histograms by their weights and
// sums them into stacks and category templates.
package stack

import (
	"errors"
	"fmt"

	"dimuplot/internal/catalog"
	"dimuplot/internal/histo"
)

// ErrEmpty is returned when a sum has nothing to add.
var ErrEmpty = errors.New("no non-empty histograms")

// Layer is one weighted process histogram in a stack.
type Layer struct {
	Process catalog.Process
	Hist    *histo.Hist
}

// Stack is an ordered list of weighted layers. The first layer is drawn
// at the bottom.
type Stack struct {
	Name   string
	Layers []Layer
}

// Filter selects the processes taking part in a stack.
type Filter func(catalog.Process) bool

// All accepts every process.
func All(catalog.Process) bool { return true }

// Category accepts the processes of one category.
func Category(c catalog.Category) Filter {
	return func(p catalog.Process) bool { return p.Category == c }
}

// Build fetches <dist>_<region>_<process> for every accepted process,
// skips empty histograms and scales the rest by the process weight.
func Build(store histo.Store, dist, region string, processes catalog.Processes, accept Filter) (*Stack, error) {
	s := &Stack{Name: dist + "_" + region}
	for _, p := range processes {
		if accept != nil && !accept(p) {
			continue
		}
		h, err := store.Get(catalog.HistKey(dist, region, p.Name))
		if err != nil {
			return nil, fmt.Errorf("process %s: %w", p.Name, err)
		}
		if h.Empty() {
			continue
		}
		h.Scale(p.Weight)
		s.Layers = append(s.Layers, Layer{Process: p, Hist: h})
	}
	return s, nil
}

// Empty reports a stack without layers.
func (s *Stack) Empty() bool { return len(s.Layers) == 0 }

// Total sums every layer.
func (s *Stack) Total() (*histo.Hist, error) {
	return Sum(s.Name+"_total", s.Layers)
}

// Max returns the largest bin of the summed stack, 0 when empty.
func (s *Stack) Max() float64 {
	total, err := s.Total()
	if err != nil {
		return 0
	}
	return total.Max()
}

// BinContent sums bin (1-based) over the layers accepted by f.
func (s *Stack) BinContent(bin int, f Filter) float64 {
	var sum float64
	for _, l := range s.Layers {
		if f == nil || f(l.Process) {
			sum += l.Hist.Content(bin)
		}
	}
	return sum
}

// ScaleLayers multiplies the layers accepted by f.
func (s *Stack) ScaleLayers(factor float64, f Filter) {
	for _, l := range s.Layers {
		if f == nil || f(l.Process) {
			l.Hist.Scale(factor)
		}
	}
}

// Sum adds layer histograms into a new histogram named name.
func Sum(name string, layers []Layer) (*histo.Hist, error) {
	if len(layers) == 0 {
		return nil, ErrEmpty
	}
	out := layers[0].Hist.Clone(name)
	for _, l := range layers[1:] {
		if err := out.Add(l.Hist); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Split sums the layers of a stack into the histograms of two categories,
// a and b. Either result may be nil when a category has no layers.
func Split(s *Stack, a, b catalog.Category) (ha, hb *histo.Hist, err error) {
	var la, lb []Layer
	for _, l := range s.Layers {
		switch l.Process.Category {
		case a:
			la = append(la, l)
		case b:
			lb = append(lb, l)
		}
	}
	if len(la) > 0 {
		if ha, err = Sum(fmt.Sprintf("%s_cat%d", s.Name, a), la); err != nil {
			return nil, nil, err
		}
	}
	if len(lb) > 0 {
		if hb, err = Sum(fmt.Sprintf("%s_cat%d", s.Name, b), lb); err != nil {
			return nil, nil, err
		}
	}
	return ha, hb, nil
}

// headroom is the number of data errors kept above the tallest data point.
const headroom = 1.3

// DisplayMax returns the y-axis maximum when drawing a stack under data:
// the stack maximum, raised to the data maximum plus 1.3 times its error
// when the data reach higher.
func DisplayMax(s *Stack, data *histo.Hist) float64 {
	m := s.Max()
	if data == nil {
		return m
	}
	bin := data.MaxBin()
	if top := data.Max() + data.Error(bin)*headroom; m < top {
		m = top
	}
	return m
}
