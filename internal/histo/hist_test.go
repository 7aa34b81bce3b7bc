package histo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/hbook"
)

func filled(name string, contents ...float64) *Hist {
	h := New(name, len(contents), 0, float64(len(contents)))
	for i, c := range contents {
		h.Fill(float64(i)+0.5, c)
	}
	return h
}

func TestHistBasics(t *testing.T) {
	h := filled("h", 1, 4, 2)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 7.0, h.Integral())
	assert.Equal(t, 2, h.MaxBin())
	assert.Equal(t, 4.0, h.Max())
	assert.Equal(t, 1.0, h.Min())
	assert.Equal(t, 4.0, h.Error(2))
	assert.Equal(t, 1.5, h.Center(2))
	assert.Equal(t, 1.0, h.Width(3))
	assert.Equal(t, 3.0, h.UpperEdge())
	assert.Zero(t, h.Content(0))
	assert.Zero(t, h.Content(4))
	assert.False(t, h.Empty())
	assert.True(t, New("e", 4, 0, 1).Empty())
}

func TestHistFillOutOfRange(t *testing.T) {
	h := New("h", 2, 0, 2)
	h.Fill(-1, 5)
	h.Fill(2, 5)
	h.Fill(1.999, 1)
	assert.Equal(t, []float64{0, 1}, h.SumW)
}

func TestHistScaleAndAdd(t *testing.T) {
	a := filled("a", 1, 2)
	b := filled("b", 3, 4)

	a.Scale(2)
	assert.Equal(t, []float64{2, 4}, a.SumW)
	assert.Equal(t, []float64{4, 16}, a.SumW2)

	require.NoError(t, a.Add(b))
	assert.Equal(t, []float64{5, 8}, a.SumW)
	assert.InDelta(t, math.Sqrt(4+9), a.Error(1), 1e-12)

	c := filled("c", 1, 2, 3)
	assert.ErrorIs(t, a.Add(c), ErrBinning)
}

func TestHistCloneIsDeep(t *testing.T) {
	a := filled("a", 1, 2)
	b := a.Clone("b")
	b.Scale(10)
	assert.Equal(t, []float64{1, 2}, a.SumW)
	assert.Equal(t, "b", b.Name)
}

func TestSetBin(t *testing.T) {
	h := New("h", 2, 0, 1)
	require.NoError(t, h.SetBin(1, 10, 3))
	assert.Equal(t, 10.0, h.Content(1))
	assert.Equal(t, 3.0, h.Error(1))
	assert.ErrorIs(t, h.SetBin(3, 1, 1), ErrBinRange)
}

func TestFromH1D(t *testing.T) {
	hh := hbook.NewH1D(4, 0, 2)
	hh.Fill(0.1, 2)
	hh.Fill(0.2, 1)
	hh.Fill(1.7, 3)
	hh.Fill(5, 100) // overflow

	h := FromH1D("pt", hh)
	assert.Equal(t, "pt", h.Name)
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, h.Edges)
	assert.Equal(t, []float64{3, 0, 0, 3}, h.SumW)
	assert.Equal(t, []float64{5, 0, 0, 9}, h.SumW2)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemory(filled("PtPair_RESOM_data", 1, 2))

	h, err := m.Get("PtPair_RESOM_data")
	require.NoError(t, err)
	h.Scale(3)

	again, err := m.Get("PtPair_RESOM_data")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, again.SumW, "store must hand out copies")

	_, err = m.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	keys, err := m.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"PtPair_RESOM_data"}, keys)
	assert.NoError(t, m.Close())
}
