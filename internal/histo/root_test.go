package histo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/hbook"
	"go.uber.org/zap/zaptest"
)

func writeRootFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hists.root")
	f, err := groot.Create(path)
	require.NoError(t, err)

	h := hbook.NewH1D(4, 0, 4)
	h.Fill(0.5, 2)
	h.Fill(1.5, 1)
	h.Fill(1.5, 1)
	h.Fill(3.5, 4)
	require.NoError(t, f.Put("PtPair_RESOM_data", rhist.NewH1DFrom(h)))

	h2 := hbook.NewH2D(2, 0, 2, 2, 0, 2)
	h2.Fill(0.5, 0.5, 1)
	require.NoError(t, f.Put("EtaPhi_RESOM_data", rhist.NewH2DFrom(h2)))
	require.NoError(t, f.Close())
	return path
}

func TestRootFile(t *testing.T) {
	rf, err := OpenRoot(writeRootFile(t), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer rf.Close()

	keys, err := rf.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"PtPair_RESOM_data"}, keys)

	h, err := rf.Get("PtPair_RESOM_data")
	require.NoError(t, err)
	require.Equal(t, 4, h.Len())
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, h.Edges)
	assert.InDelta(t, 2, h.Content(1), 1e-12)
	assert.InDelta(t, 2, h.Content(2), 1e-12)
	assert.InDelta(t, 0, h.Content(3), 1e-12)
	assert.InDelta(t, 4, h.Content(4), 1e-12)
	// Two unit fills: sqrt(1+1).
	assert.InDelta(t, 1.41421356, h.Error(2), 1e-6)
	assert.InDelta(t, 8, h.Integral(), 1e-12)

	_, err = rf.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	// The 2D histogram is indexed but neither listed nor readable.
	_, err = rf.Get("EtaPhi_RESOM_data")
	assert.ErrorIs(t, err, ErrNotHistogram)
}

func TestIsH1(t *testing.T) {
	for _, class := range []string{"TH1F", "TH1D", "TH1I"} {
		assert.True(t, isH1(class), class)
	}
	for _, class := range []string{"TH2F", "TH2D", "TTree", "TDirectoryFile", "TProfile"} {
		assert.False(t, isH1(class), class)
	}
}

func TestOpenRootMissingFile(t *testing.T) {
	_, err := OpenRoot(filepath.Join(t.TempDir(), "absent.root"), nil)
	assert.Error(t, err)
}
