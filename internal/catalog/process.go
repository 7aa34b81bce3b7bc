package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownProcess is returned when a process name is not in a table.
var ErrUnknownProcess = errors.New("unknown process")

// Category groups processes for aggregation. Its meaning depends on the
// table: an inclusion flag for graphs, exclusive/dissociative for the
// template fit, and a grouping id for the single-bin normalization.
type Category int

const (
	// Excluded processes are skipped by the graph procedure.
	Excluded Category = 0
	// Included processes are stacked by the graph procedure.
	Included Category = 1
)

const (
	Dissociative Category = 0
	Exclusive    Category = 1
)

// Grouping ids used by the normalization table.
const (
	GroupDrellYan       Category = 1
	GroupDoubleDiss     Category = 2
	GroupSingleDiss     Category = 3
	GroupElastic        Category = 4
	GroupInclusiveUpsil Category = 5
	GroupSignal         Category = 6
)

// Process describes one simulated physics process.
type Process struct {
	Name     string
	Category Category
	Weight   float64
	Color    Color
	Legend   string
}

// Processes is an ordered process table. Order is the stacking order.
type Processes []Process

// Find returns the process with the given name.
func (ps Processes) Find(name string) (Process, error) {
	for _, p := range ps {
		if p.Name == name {
			return p, nil
		}
	}
	return Process{}, fmt.Errorf("%w: %q", ErrUnknownProcess, name)
}

// InCategory returns the processes of one category, preserving order.
func (ps Processes) InCategory(c Category) Processes {
	var out Processes
	for _, p := range ps {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

const (
	legendDYLow   = "PYTHIS Low-mass Drell-Yan #mu^{+}#mu^{-}"
	legendDYMid   = "PYTHIA mid-mass Drell-Yan #mu^{+}#mu^{-}"
	legendDYHigh  = "PYTHIA high-mass Drell-Yan #mu^{+}#mu^{-}"
	legendDoubleD = "LPAIR #gamma#gamma #rightarrow #mu^{+}#mu^{-} (double dissociation)"
	legendSingleD = "LPAIR #gamma#gamma #rightarrow #mu^{+}#mu^{-} (single dissociation)"
	legendElastic = "LPAIR #gamma#gamma #rightarrow #mu^{+}#mu^{-} (elastic)"
	legendInclY   = "PYTHIA/EvtGen Z2 #Upsilon(nS) #rightarrow #mu^{+}#mu^{-}"
	legendSignal  = "STARLIGHT #gamma p #rightarrow#Upsilon(nS) p #rightarrow #mu^{+}#mu^{-} (elast)"
)

// table builds the twelve processes with per-process categories. The
// Upsilon(2S/3S) and signal 2/3 entries share the legend of their first
// sibling, so they carry no label of their own.
func table(w Weights, cats [12]Category) Processes {
	return Processes{
		{Name: "dymumu", Category: cats[0], Weight: w.DYmumu, Color: Red, Legend: legendDYLow},
		{Name: "dymumuL", Category: cats[1], Weight: w.DYmumuL, Color: Red, Legend: legendDYMid},
		{Name: "dymumuH", Category: cats[2], Weight: w.DYmumuH, Color: Red, Legend: legendDYHigh},
		{Name: "inelinel", Category: cats[3], Weight: w.InelInel, Color: GreenPlus3, Legend: legendDoubleD},
		{Name: "inelel", Category: cats[4], Weight: w.InelEl, Color: Color30, Legend: legendSingleD},
		{Name: "elel", Category: cats[5], Weight: w.ElEl, Color: Orange, Legend: legendElastic},
		{Name: "inclY1S", Category: cats[6], Weight: w.InclY1S, Color: Yellow, Legend: legendInclY},
		{Name: "inclY2S", Category: cats[7], Weight: w.InclY2S, Color: Yellow},
		{Name: "inclY3S", Category: cats[8], Weight: w.InclY3S, Color: Yellow},
		{Name: "signal1", Category: cats[9], Weight: w.Signal1, Color: Color40, Legend: legendSignal},
		{Name: "signal2", Category: cats[10], Weight: w.Signal2, Color: Color40},
		{Name: "signal3", Category: cats[11], Weight: w.Signal3, Color: Color40},
	}
}

// GraphProcesses is the table stacked by the graph procedure: every
// process is included.
func GraphProcesses(w Weights) Processes {
	var cats [12]Category
	for i := range cats {
		cats[i] = Included
	}
	return table(w, cats)
}

// FitProcesses splits the processes into the exclusive (elastic and
// signal) and dissociative templates.
func FitProcesses(w Weights) Processes {
	return table(w, [12]Category{
		Dissociative, Dissociative, Dissociative,
		Dissociative, Dissociative, Exclusive,
		Dissociative, Dissociative, Dissociative,
		Exclusive, Exclusive, Exclusive,
	})
}

// NormProcesses groups the processes by physics source for the single-bin
// normalization.
func NormProcesses(w Weights) Processes {
	return table(w, [12]Category{
		GroupDrellYan, GroupDrellYan, GroupDrellYan,
		GroupDoubleDiss, GroupSingleDiss, GroupElastic,
		GroupInclusiveUpsil, GroupInclusiveUpsil, GroupInclusiveUpsil,
		GroupSignal, GroupSignal, GroupSignal,
	})
}
