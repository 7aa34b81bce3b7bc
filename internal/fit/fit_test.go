package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"

	"dimuplot/internal/histo"
)

// sampled fills 40 bins over [0, 2) with p evaluated at the bin centres
// and Poisson-like errors.
func sampled(name string, ps ...Params) *histo.Hist {
	h := histo.New(name, 40, 0, 2)
	for bin := 1; bin <= h.Len(); bin++ {
		x := h.Center(bin)
		var y float64
		for _, p := range ps {
			y += p.Eval(x)
		}
		_ = h.SetBin(bin, y, math.Sqrt(y))
	}
	return h
}

var (
	excTrue = Params{A: 200, B: 8}
	disTrue = Params{A: 60, B: 1.5}
)

func assertRel(t *testing.T, want, got, tol float64, msg string) {
	t.Helper()
	assert.InDelta(t, 0, (got-want)/want, tol, "%s: want %g got %g", msg, want, got)
}

func TestBoundRoundTrip(t *testing.T) {
	b := Bound{Lo: 0, Hi: 1000}
	for _, p := range []float64{0.5, 5, 300, 999} {
		assert.InDelta(t, p, b.External(b.Internal(p)), 1e-6)
	}
	for _, u := range []float64{-10, -1, 0, 3, 42} {
		p := b.External(u)
		assert.GreaterOrEqual(t, p, b.Lo)
		assert.LessOrEqual(t, p, b.Hi)
	}
}

func TestTemplateFitRecoversYields(t *testing.T) {
	exc := sampled("exc", excTrue)
	dis := sampled("dis", disTrue)

	data := exc.Clone("data")
	data.Scale(300 / exc.Integral())
	d := dis.Clone("d")
	d.Scale(200 / dis.Integral())
	require.NoError(t, data.Add(d))

	res, err := TemplateFit(data, exc, dis, DefaultTemplateOptions())
	require.NoError(t, err)
	assertRel(t, 300, res.ExcScale, 0.01, "exclusive yield")
	assertRel(t, 200, res.DisScale, 0.01, "dissociative yield")
}

func TestTemplateFitErrors(t *testing.T) {
	exc := sampled("exc", excTrue)
	empty := histo.New("empty", 40, 0, 2)

	_, err := TemplateFit(exc, exc, empty, DefaultTemplateOptions())
	assert.ErrorIs(t, err, ErrEmptyHistogram)

	other := histo.New("other", 10, 0, 2)
	other.Fill(1, 1)
	_, err = TemplateFit(exc, exc, other, DefaultTemplateOptions())
	assert.ErrorIs(t, err, histo.ErrBinning)
}

func TestGuess(t *testing.T) {
	g := Guess(sampled("exc", excTrue), DefaultShapeOptions())
	// Moments of a binned curve land near the truth.
	assertRel(t, excTrue.B, g.B, 0.1, "B guess")
	assertRel(t, excTrue.A, g.A, 0.1, "A guess")
}

func TestShapeFit(t *testing.T) {
	for _, p := range []Params{excTrue, disTrue} {
		res, err := ShapeFit(sampled("h", p), DefaultShapeOptions())
		require.NoError(t, err)
		assertRel(t, p.A, res.A, 0.02, "A")
		assertRel(t, p.B, res.B, 0.02, "B")
		assert.Equal(t, 38, res.NDF)
		assert.Less(t, res.Chi2, 1.0)
	}
}

func TestShapeFitTooFewPoints(t *testing.T) {
	h := histo.New("h", 10, 0, 1)
	_ = h.SetBin(3, 5, 2)
	_, err := ShapeFit(h, DefaultShapeOptions())
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestTwoComponent(t *testing.T) {
	exc := sampled("exc", excTrue)
	dis := sampled("dis", disTrue)
	data := sampled("data", excTrue, disTrue)

	// Templates with arbitrary normalization: only their shape matters.
	exc.Scale(0.01)
	dis.Scale(3)

	res, err := TwoComponent(data, exc, dis, DefaultOptions())
	require.NoError(t, err)

	assertRel(t, sampled("e", excTrue).Integral(), res.Template.ExcScale, 0.01, "exclusive yield")
	assertRel(t, sampled("d", disTrue).Integral(), res.Template.DisScale, 0.01, "dissociative yield")
	assert.InDelta(t, res.Template.ExcScale, res.ScaledExclusive.Integral(), 1e-6)

	assertRel(t, excTrue.B, res.Exclusive.B, 0.03, "exclusive B")
	assertRel(t, disTrue.B, res.Dissociative.B, 0.03, "dissociative B")

	assertRel(t, excTrue.A, res.Combined.Exclusive.A, 0.05, "combined exclusive A")
	assertRel(t, disTrue.B, res.Combined.Dissociative.B, 0.05, "combined dissociative B")
	assert.InDelta(t, data.Content(5), res.Combined.Eval(data.Center(5)), 0.05*data.Content(5))
}

func TestWarning(t *testing.T) {
	assert.NoError(t, warning(optimize.Success, nil))
	assert.NoError(t, warning(optimize.FunctionConvergence, nil))

	err := warning(optimize.IterationLimit, nil)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Contains(t, err.Error(), optimize.IterationLimit.String())

	errNaN := errors.New("NaN objective")
	err = warning(optimize.FunctionConvergence, errNaN)
	assert.ErrorIs(t, err, errNaN)
	assert.NotErrorIs(t, err, ErrNotConverged)
}

func TestStages(t *testing.T) {
	limit := warning(optimize.FunctionEvaluationLimit, nil)
	res := &Result{
		Template:     TemplateResult{Status: optimize.FunctionConvergence},
		Dissociative: ShapeResult{Status: optimize.FunctionEvaluationLimit, Warning: limit},
		Exclusive:    ShapeResult{Status: optimize.Success},
		Combined:     CombinedResult{Status: optimize.FunctionConvergence},
	}

	stages := res.Stages()
	require.Len(t, stages, 4)
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"template", "dissociative", "exclusive", "combined"}, names)
	assert.ErrorIs(t, stages[1].Warning, ErrNotConverged)
	assert.NoError(t, stages[0].Warning)
	assert.NoError(t, stages[3].Warning)
}
