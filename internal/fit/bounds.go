package fit

import "math"

// Bound is a closed parameter interval. Minimisers work on an unbounded
// internal variable u mapped onto the interval by lo + (hi-lo)(sin u + 1)/2,
// the transform MINUIT uses for limited parameters.
type Bound struct {
	Lo, Hi float64
}

// External maps an internal value onto the interval.
func (b Bound) External(u float64) float64 {
	return b.Lo + (b.Hi-b.Lo)*(math.Sin(u)+1)/2
}

// Internal maps a value in the interval to its internal variable. Values
// are pulled slightly inside the interval so the transform keeps a slope.
func (b Bound) Internal(p float64) float64 {
	span := b.Hi - b.Lo
	eps := span * 1e-6
	p = math.Min(math.Max(p, b.Lo+eps), b.Hi-eps)
	return math.Asin(2*(p-b.Lo)/span - 1)
}

func externals(bs []Bound, us []float64) []float64 {
	ps := make([]float64, len(us))
	for i, u := range us {
		ps[i] = bs[i].External(u)
	}
	return ps
}

func internals(bs []Bound, ps []float64) []float64 {
	us := make([]float64, len(ps))
	for i, p := range ps {
		us[i] = bs[i].Internal(p)
	}
	return us
}
