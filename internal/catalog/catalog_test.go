package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeights(t *testing.T) {
	w := NewWeights(DefaultLuminosity)

	assert.InDelta(t, 937.0/1e5*17.902, w.InelInel, 1e-12)
	assert.InDelta(t, 937.0/1e5*15.398*2, w.InelEl, 1e-12)
	assert.InDelta(t, 937.0/1.5e6*1320*2, w.DYmumu, 1e-12)

	// Weights scale linearly with luminosity.
	half := NewWeights(DefaultLuminosity / 2)
	assert.InDelta(t, w.Signal1/2, half.Signal1, 1e-12)
	assert.InDelta(t, w.InclY3S/2, half.InclY3S, 1e-12)
}

func TestWeightsByName(t *testing.T) {
	w := NewWeights(100)
	for _, p := range GraphProcesses(w) {
		got, ok := w.ByName(p.Name)
		require.True(t, ok, p.Name)
		assert.Equal(t, p.Weight, got, p.Name)
	}
	_, ok := w.ByName("ttbar")
	assert.False(t, ok)
}

func TestProcessTables(t *testing.T) {
	w := NewWeights(DefaultLuminosity)

	t.Run("graph includes everything", func(t *testing.T) {
		ps := GraphProcesses(w)
		assert.Len(t, ps, 12)
		assert.Len(t, ps.InCategory(Included), 12)
	})

	t.Run("fit splits elastic and signal as exclusive", func(t *testing.T) {
		exc := FitProcesses(w).InCategory(Exclusive)
		names := make([]string, 0, len(exc))
		for _, p := range exc {
			names = append(names, p.Name)
		}
		assert.Equal(t, []string{"elel", "signal1", "signal2", "signal3"}, names)
		assert.Len(t, FitProcesses(w).InCategory(Dissociative), 8)
	})

	t.Run("norm groups", func(t *testing.T) {
		ps := NormProcesses(w)
		p, err := ps.Find("elel")
		require.NoError(t, err)
		assert.Equal(t, GroupElastic, p.Category)
		assert.Len(t, ps.InCategory(GroupInclusiveUpsil), 3)
	})

	t.Run("unknown process", func(t *testing.T) {
		_, err := GraphProcesses(w).Find("nope")
		assert.True(t, errors.Is(err, ErrUnknownProcess))
	})
}

func TestDistributions(t *testing.T) {
	d, err := LookupDistribution("RapPair")
	require.NoError(t, err)
	assert.Equal(t, "YPair", d.Title)

	pt, err := LookupDistribution("PtPair")
	require.NoError(t, err)
	assert.Equal(t, "p_{T}(#mu^{+}#mu^{-}) (GeV)", pt.AxisLabel())

	acopl, err := LookupDistribution("AcoplZoomLOG")
	require.NoError(t, err)
	assert.True(t, acopl.Log)
	assert.Equal(t, acopl.Description, acopl.AxisLabel())

	_, err = LookupDistribution("missing")
	assert.ErrorIs(t, err, ErrUnknownDistribution)

	all := Distributions()
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Key, all[i].Key)
	}
}

func TestHistKeyAndRegions(t *testing.T) {
	assert.Equal(t, "PtPair_RESOM_data", HistKey("PtPair", "RESOM", DataSample))
	assert.NoError(t, CheckRegion("HIGGS"))
	assert.ErrorIs(t, CheckRegion("MOON"), ErrUnknownRegion)
}

func TestColorRGBA(t *testing.T) {
	r, g, b, _ := Red.RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)

	r, g, b, _ = Color(12345).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}
