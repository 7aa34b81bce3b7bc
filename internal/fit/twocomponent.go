package fit

import "dimuplot/internal/histo"

// Options configures the whole fit chain.
type Options struct {
	Template TemplateOptions
	Shape    ShapeOptions
}

// DefaultOptions returns the bounds and starting points of the analysis.
func DefaultOptions() Options {
	return Options{
		Template: DefaultTemplateOptions(),
		Shape:    DefaultShapeOptions(),
	}
}

// Result collects every stage of the two-component fit.
type Result struct {
	Template TemplateResult

	// Templates rescaled to their fitted yields.
	ScaledExclusive    *histo.Hist
	ScaledDissociative *histo.Hist

	Exclusive    ShapeResult
	Dissociative ShapeResult
	Combined     CombinedResult
}

// TwoComponent runs the template fit, rescales each template to its
// fitted yield, fits both with A·x·exp(-B·x²) and refits their sum to data.
func TwoComponent(data, exc, dis *histo.Hist, opts Options) (*Result, error) {
	tmpl, err := TemplateFit(data, exc, dis, opts.Template)
	if err != nil {
		return nil, err
	}

	scaledExc := exc.Clone(exc.Name + "_scaled")
	scaledExc.Scale(tmpl.ExcScale / exc.Integral())
	scaledDis := dis.Clone(dis.Name + "_scaled")
	scaledDis.Scale(tmpl.DisScale / dis.Integral())

	disFit, err := ShapeFit(scaledDis, opts.Shape)
	if err != nil {
		return nil, err
	}
	excFit, err := ShapeFit(scaledExc, opts.Shape)
	if err != nil {
		return nil, err
	}

	combined, err := CombinedFit(data, excFit.Params, disFit.Params, opts.Shape)
	if err != nil {
		return nil, err
	}

	return &Result{
		Template:           tmpl,
		ScaledExclusive:    scaledExc,
		ScaledDissociative: scaledDis,
		Exclusive:          excFit,
		Dissociative:       disFit,
		Combined:           combined,
	}, nil
}
