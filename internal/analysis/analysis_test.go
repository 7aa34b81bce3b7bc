package analysis

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/optimize"

	"dimuplot/internal/catalog"
	"dimuplot/internal/fit"
	"dimuplot/internal/histo"
	"dimuplot/internal/histo/histotest"
	"dimuplot/internal/norm"
)

func newTestRunner(t *testing.T, store histo.Store) (*Runner, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	r := NewRunner(store, catalog.NewWeights(catalog.DefaultLuminosity), t.TempDir(), zaptest.NewLogger(t))
	r.Out = &out
	return r, &out
}

func TestSelect(t *testing.T) {
	names := []string{"LOWMM", "RESOM", "HIGHM", "SIDEB"}
	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantErr  error
	}{
		{"all", nil, names, nil},
		{"exact", []string{"RESOM"}, []string{"RESOM"}, nil},
		{"glob keeps order", []string{"*M", "LOW*"}, []string{"LOWMM", "RESOM", "HIGHM"}, nil},
		{"no match", []string{"ZPEAK"}, nil, ErrNoSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(tt.patterns, names)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Select() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	_, err := Select([]string{"[RES"}, names)
	assert.Error(t, err)
}

func graphStore() *histo.Memory {
	ps := catalog.GraphProcesses(catalog.NewWeights(catalog.DefaultLuminosity))
	m := histotest.Store("PtPair", "RESOM", []float64{5, 9, 2}, histotest.Uniform(ps, 1, 2, 3))
	m.Put(histotest.Flat(catalog.HistKey("PtPair", "HIGHM", catalog.DataSample), 0, 0, 0))
	for _, p := range ps {
		m.Put(histotest.Flat(catalog.HistKey("PtPair", "HIGHM", p.Name), 0, 0, 0))
	}
	return m
}

func TestGraph(t *testing.T) {
	defer goleak.VerifyNone(t)

	r, _ := newTestRunner(t, graphStore())
	summary, err := r.Graph(context.Background(), GraphOptions{
		Regions:       []string{"RES*", "HIGHM", "LOWMM"},
		Distributions: []string{"PtPair"},
		Jobs:          2,
	})
	require.NoError(t, err)

	want := filepath.Join(r.OutDir, "RESOM", "PtPair_RESOM.png")
	assert.Equal(t, []string{want}, summary.Written)
	assert.Equal(t, 1, summary.Empty)
	assert.Equal(t, 1, summary.Missing)
	info, err := os.Stat(want)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Equal(t, map[string]float64{"written": 1, "empty": 1, "missing": 1}, summary.Values())
}

func TestGraphStrict(t *testing.T) {
	defer goleak.VerifyNone(t)

	r, _ := newTestRunner(t, graphStore())
	_, err := r.Graph(context.Background(), GraphOptions{
		Regions:       []string{"LOWMM"},
		Distributions: []string{"PtPair"},
		Strict:        true,
	})
	assert.ErrorIs(t, err, histo.ErrNotFound)
}

func TestGraphCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, _ := newTestRunner(t, graphStore())
	_, err := r.Graph(ctx, GraphOptions{Distributions: []string{"PtPair"}})
	assert.ErrorIs(t, err, context.Canceled)
}

// fitStore holds an exclusive shape in elel, a dissociative shape in
// inelel and data made of 300 exclusive and 200 dissociative events.
func fitStore(t *testing.T) *histo.Memory {
	t.Helper()
	shape := func(name string, p fit.Params) *histo.Hist {
		h := histo.New(name, 40, 0, 2)
		for bin := 1; bin <= h.Len(); bin++ {
			y := p.Eval(h.Center(bin))
			require.NoError(t, h.SetBin(bin, y, math.Sqrt(y)))
		}
		return h
	}
	key := func(sample string) string { return catalog.HistKey("PtPair", "RESOM", sample) }

	m := histo.NewMemory()
	for _, p := range catalog.FitProcesses(catalog.NewWeights(catalog.DefaultLuminosity)) {
		m.Put(histo.New(key(p.Name), 40, 0, 2))
	}
	exc := shape(key("elel"), fit.Params{A: 200, B: 8})
	dis := shape(key("inelel"), fit.Params{A: 60, B: 1.5})
	m.Put(exc)
	m.Put(dis)

	data := exc.Clone(key(catalog.DataSample))
	data.Scale(300 / exc.Integral())
	d := dis.Clone("d")
	d.Scale(200 / dis.Integral())
	require.NoError(t, data.Add(d))
	m.Put(data)
	return m
}

func TestFit(t *testing.T) {
	r, out := newTestRunner(t, fitStore(t))
	summary, err := r.Fit(context.Background(), "PtPair", "RESOM", fit.DefaultOptions())
	require.NoError(t, err)

	res := summary.Result
	assert.InDelta(t, 300, res.Template.ExcScale, 3)
	assert.InDelta(t, 200, res.Template.DisScale, 2)
	assert.InDelta(t, 8, res.Combined.Exclusive.B, 0.2)
	assert.InDelta(t, 1.5, res.Combined.Dissociative.B, 0.05)

	assert.Equal(t, filepath.Join(r.OutDir, FitSplitFile), summary.Path)
	_, err = os.Stat(summary.Path)
	require.NoError(t, err)

	text := out.String()
	for _, line := range []string{"Dissociative A: ", "Dissociative B: ", "Exclusive A: ", "Exclusive B: ", "Formula: A*x*exp(-B*x*x)"} {
		assert.Contains(t, text, line)
	}
	assert.Equal(t, 4, strings.Count(text, separator))
	assert.Contains(t, summary.Values(), "exclusive_scale")
}

func TestLogStagesWarnsOnUnconverged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	res := &fit.Result{
		Template:     fit.TemplateResult{Status: optimize.FunctionConvergence},
		Dissociative: fit.ShapeResult{Status: optimize.FunctionConvergence},
		Exclusive:    fit.ShapeResult{Status: optimize.FunctionConvergence},
		Combined: fit.CombinedResult{
			Status:  optimize.IterationLimit,
			Warning: fmt.Errorf("%w: %s", fit.ErrNotConverged, optimize.IterationLimit),
		},
	}

	logStages(zap.New(core), res)

	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "combined", warns[0].ContextMap()["stage"])
	assert.Equal(t, 3, logs.FilterLevelExact(zapcore.DebugLevel).Len())
}

func TestFitErrors(t *testing.T) {
	r, _ := newTestRunner(t, fitStore(t))
	ctx := context.Background()

	_, err := r.Fit(ctx, "PtPair", "NOWHERE", fit.DefaultOptions())
	assert.ErrorIs(t, err, catalog.ErrUnknownRegion)

	_, err = r.Fit(ctx, "NoSuchDist", "RESOM", fit.DefaultOptions())
	assert.ErrorIs(t, err, catalog.ErrUnknownDistribution)

	_, err = r.Fit(ctx, "PtPair", "LOWMM", fit.DefaultOptions())
	assert.ErrorIs(t, err, histo.ErrNotFound)
}

func TestNorm(t *testing.T) {
	ps := catalog.NormProcesses(catalog.Weights{})
	samples := map[string][]float64{}
	for _, p := range ps {
		samples[p.Name] = []float64{0, 0}
	}
	samples["dymumu"] = []float64{10, 1}
	samples["elel"] = []float64{5, 1}
	store := histotest.Store("PtPair", "RESOM", []float64{20, 3}, samples)

	r, out := newTestRunner(t, store)
	r.Weights = catalog.Weights{DYmumu: 1, ElEl: 1}

	summary, err := r.Norm(context.Background(), "PtPair", "RESOM", 1, catalog.GroupElastic)
	require.NoError(t, err)

	// (20 + 5 - 15) / 5
	assert.InDelta(t, 2.0, summary.Result.Factor, 1e-12)
	assert.Equal(t, "2\n", out.String())
	assert.Equal(t, filepath.Join(r.OutDir, "PtPair_RESOM_NORM2.png"), summary.Path)
	_, err = os.Stat(summary.Path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, summary.Values()["factor"])

	_, err = r.Norm(context.Background(), "PtPair", "RESOM", 1, catalog.GroupSignal)
	assert.ErrorIs(t, err, norm.ErrNoTargetContribution)
}

func TestFormatFactor(t *testing.T) {
	assert.Equal(t, "1.23457", FormatFactor(1.2345678))
	assert.Equal(t, "0.5", FormatFactor(0.5))
}
