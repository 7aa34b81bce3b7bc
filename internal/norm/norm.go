// Package norm renormalizes one process category so the simulated stack
// matches data in a single bin.
package norm

import (
	"errors"
	"fmt"

	"dimuplot/internal/catalog"
	"dimuplot/internal/histo"
	"dimuplot/internal/stack"
)

var (
	// ErrNoTargetContribution is returned when the target category has no
	// content in the selected bin, which leaves the factor undefined.
	ErrNoTargetContribution = errors.New("target category has no content in bin")
	// ErrBin is returned for a bin outside the data histogram.
	ErrBin = errors.New("normalization bin out of range")
)

// Inputs are the bin contents entering the normalization.
type Inputs struct {
	Data   float64 // data content in the bin
	Target float64 // weighted content of the target category
	Total  float64 // weighted content of every process, target included
}

// Factor solves Total - Target + f*Target = Data for f.
func Factor(in Inputs) (float64, error) {
	if in.Target == 0 {
		return 0, ErrNoTargetContribution
	}
	return (in.Data + in.Target - in.Total) / in.Target, nil
}

// Result is a computed normalization and the rescaled stack it produced.
type Result struct {
	Bin      int
	Category catalog.Category
	Inputs
	Factor float64

	Data  *histo.Hist
	Stack *stack.Stack
}

// Compute reads data and the weighted process stack for one distribution
// and region, solves the factor for the target category in bin, and
// applies it to the target layers.
func Compute(store histo.Store, dist, region string, bin int, target catalog.Category, processes catalog.Processes) (*Result, error) {
	data, err := store.Get(catalog.HistKey(dist, region, catalog.DataSample))
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	if bin < 1 || bin > data.Len() {
		return nil, fmt.Errorf("%w: %d of %d", ErrBin, bin, data.Len())
	}

	s, err := stack.Build(store, dist, region, processes, stack.All)
	if err != nil {
		return nil, err
	}

	isTarget := stack.Category(target)
	in := Inputs{
		Data:   data.Content(bin),
		Target: s.BinContent(bin, isTarget),
		Total:  s.BinContent(bin, nil),
	}
	f, err := Factor(in)
	if err != nil {
		return nil, fmt.Errorf("%s bin %d category %d: %w", s.Name, bin, target, err)
	}
	s.ScaleLayers(f, isTarget)

	return &Result{
		Bin:      bin,
		Category: target,
		Inputs:   in,
		Factor:   f,
		Data:     data,
		Stack:    s,
	}, nil
}
