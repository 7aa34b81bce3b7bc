package catalog

// DefaultLuminosity is the integrated luminosity in inverse picobarns
// obtained with pixelLumiCalc.
const DefaultLuminosity = 937.0

// Weights holds the per-process normalization weights for one integrated
// luminosity. A weight scales a generated-event histogram to the expected
// yield in data.
type Weights struct {
	Luminosity float64

	// Continuum background
	DYmumu   float64
	DYmumuL  float64
	DYmumuH  float64
	InelInel float64
	InelEl   float64
	ElEl     float64

	// Resonant background
	InclY1S float64
	InclY2S float64
	InclY3S float64

	// Signal
	Signal1 float64
	Signal2 float64
	Signal3 float64
}

// NewWeights computes every process weight for the given luminosity.
// Each weight is lumi / generated events * cross section (pb) times the
// filter and correction factors of that sample.
func NewWeights(lumi float64) Weights {
	return Weights{
		Luminosity: lumi,

		// factor 2 from nET-2-6
		DYmumu:   lumi / 1.5e6 * 1320. * 2.,
		DYmumuL:  lumi / 1e5 * 13.94,
		DYmumuH:  lumi / 2966364 * 1297.,
		InelInel: lumi / 1e5 * 17.902,
		// LPAIR generates one dissociated side only
		InelEl: lumi / 1e5 * 15.398 * 2.,
		ElEl:   lumi / 1e5 * 31.220 * 0.938985,

		InclY1S: lumi / 2183761 * 78963. * 0.15080,
		InclY2S: lumi / 1065233 * 58961. * 0.08386 * 0.4,
		InclY3S: lumi / 533761 * 11260. * 0.57950 * 0.4,

		Signal1: lumi / 1e5 * 542.710 * 0.025 * 0.651 * 0.534879,
		Signal2: lumi / 1e5 * 234.240 * 0.019 * 0.690 * 0.534879,
		Signal3: lumi / 1e5 * 163.700 * 0.022 * 0.710 * 0.534879,
	}
}

// ByName returns the weight of a process by its sample name.
func (w Weights) ByName(name string) (float64, bool) {
	switch name {
	case "dymumu":
		return w.DYmumu, true
	case "dymumuL":
		return w.DYmumuL, true
	case "dymumuH":
		return w.DYmumuH, true
	case "inelinel":
		return w.InelInel, true
	case "inelel":
		return w.InelEl, true
	case "elel":
		return w.ElEl, true
	case "inclY1S":
		return w.InclY1S, true
	case "inclY2S":
		return w.InclY2S, true
	case "inclY3S":
		return w.InclY3S, true
	case "signal1":
		return w.Signal1, true
	case "signal2":
		return w.Signal2, true
	case "signal3":
		return w.Signal3, true
	}
	return 0, false
}
