package fit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// ErrNotConverged marks a minimisation that stopped on a limit instead of
// at an optimum. The parameters it returns are the best point reached.
var ErrNotConverged = errors.New("minimizer did not converge")

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
		optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		return true
	}
	return false
}

// warning folds a non-fatal minimiser error and a limit status into one
// error, or nil for a clean convergence.
func warning(s optimize.Status, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", s, err)
	}
	if !converged(s) {
		return fmt.Errorf("%w: %s", ErrNotConverged, s)
	}
	return nil
}

// Stage is the outcome of one minimisation in the chain.
type Stage struct {
	Name    string
	Status  optimize.Status
	Warning error
}

// Stages lists the four minimisations in the order they ran.
func (r *Result) Stages() []Stage {
	return []Stage{
		{Name: "template", Status: r.Template.Status, Warning: r.Template.Warning},
		{Name: "dissociative", Status: r.Dissociative.Status, Warning: r.Dissociative.Warning},
		{Name: "exclusive", Status: r.Exclusive.Status, Warning: r.Exclusive.Warning},
		{Name: "combined", Status: r.Combined.Status, Warning: r.Combined.Warning},
	}
}
