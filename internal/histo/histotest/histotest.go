// Package histotest builds synthetic histogram stores for tests.
package histotest

import (
	"math"

	"dimuplot/internal/catalog"
	"dimuplot/internal/histo"
)

// Flat returns a histogram over [0, n) whose bin i+1 holds contents[i],
// with Poisson errors.
func Flat(name string, contents ...float64) *histo.Hist {
	h := histo.New(name, len(contents), 0, float64(len(contents)))
	for i, c := range contents {
		_ = h.SetBin(i+1, c, math.Sqrt(math.Abs(c)))
	}
	return h
}

// Store returns a memory store holding <dist>_<region>_<sample> for the
// data and every sample in samples.
func Store(dist, region string, data []float64, samples map[string][]float64) *histo.Memory {
	m := histo.NewMemory()
	if data != nil {
		m.Put(Flat(catalog.HistKey(dist, region, catalog.DataSample), data...))
	}
	for name, contents := range samples {
		m.Put(Flat(catalog.HistKey(dist, region, name), contents...))
	}
	return m
}

// Uniform fills every process of ps with the same contents.
func Uniform(ps catalog.Processes, contents ...float64) map[string][]float64 {
	out := make(map[string][]float64, len(ps))
	for _, p := range ps {
		out[p.Name] = contents
	}
	return out
}
