package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownDistribution is returned for a key missing from the table.
var ErrUnknownDistribution = errors.New("unknown distribution")

// Distribution describes one plotted observable.
type Distribution struct {
	Key         string // storage key prefix
	Title       string // plot title
	Description string // axis description, ROOT TLatex markup
	Unit        string
	Log         bool
}

// AxisLabel returns the x-axis label: the description followed by the
// unit in parentheses when there is one.
func (d Distribution) AxisLabel() string {
	if d.Unit == "" {
		return d.Description
	}
	return d.Description + " (" + d.Unit + ")"
}

var distributions = []Distribution{
	// extra tracks
	{"numExtraTracks_1to6", "numExtraTracks_1to6", "Number of extra tracks on dimuon vertex", "", false},
	{"numExtraTracks_1to15", "numExtraTracks_1to15", "Number of extra tracks on dimuon vertex", "", false},
	{"numExtraTracks_1to75", "numExtraTracks_1to75", "Number of extra tracks on dimuon vertex", "", false},

	// pair kinematics
	{"3DOpeningAngle", "3DOpeningAngle", "3D Opening Angle", "", false},
	{"Acopl", "Acopl", "#1-|#Delta#phi(#mu^{+}#mu^{-})/#pi|", "", false},
	{"AcoplZoom", "AcoplZoom", "#1-|#Delta#phi(#mu^{+}#mu^{-})/#pi|", "", false},
	{"AcoplZoomLOG", "AcoplZoomLOG", "#1-|#Delta#phi(#mu^{+}#mu^{-})/#pi|", "", true},
	{"dPt", "dPt", "#Delta p_{T}", "GeV", false},
	{"dPtZoom", "dPtZoom", "#Delta p_{T}", "GeV", false},
	{"dPtZoomLOG", "dPtZoomLOG", "#Delta p_{T}", "GeV", true},
	{"EtaPair", "EtaPair", "#eta(#mu^{+}#mu^{-})", "", false},
	{"invariantMass", "invariantMass", "m(#mu^{+}#mu^{-})", "GeV", false},
	{"invariantMassLOG", "invariantMassLOG", "m(#mu^{+}#mu^{-})", "GeV", true},
	{"invmass_Y1S", "invmass-Y1S", "M(#mu^{+}#mu^{-})", "GeV", false},
	{"invmass_Y2S", "invmass-Y2S", "M(#mu^{+}#mu^{-})", "GeV", false},
	{"invmass_Y3S", "invmass-Y3S", "M(#mu^{+}#mu^{-})", "GeV", false},
	{"Pt2Pair", "Pt2Pair", "p_{T}^{2}(#mu^{+}#mu^{-})", "GeV", true},
	{"Pt2PairZoom", "Pt2PairZoom", "p_{T}^{2}(#mu^{+}#mu^{-})", "GeV", true},
	{"PtPair", "PtPair", "p_{T}(#mu^{+}#mu^{-})", "GeV", false},
	{"PtPairLOG", "PtPairLOG", "p_{T}(#mu^{+}#mu^{-})", "GeV", true},
	{"PtPair_BKG", "PtPair-BKG", "p_{T}(#mu^{+}#mu^{-})", "GeV", false},
	{"PtPair_Y1S", "PtPair-Y1S", "p_{T}(#mu^{+}#mu^{-})", "GeV", false},
	{"PtPair_Y2S", "PtPair-Y2S", "p_{T}(#mu^{+}#mu^{-})", "GeV", false},
	{"PtPair_Y3S", "PtPair-Y3S", "p_{T}(#mu^{+}#mu^{-})", "GeV", false},
	{"RapPair", "YPair", "Y(#mu^{+}#mu^{-})", "", false},

	// single muon kinematics
	{"EtaSingle", "EtaSingle", "#eta(#mu)", "", false},
	{"EtaSingleMuM", "EtaSingleMuM", "#eta(#mu^{-})", "", false},
	{"EtaSingleMuP", "EtaSingleMuP", "#eta(#mu^{+})", "", false},
	{"EtaSingle_BKG", "EtaSingle-BKG", "#eta(#mu)", "GeV", false},
	{"muEnergy", "muEnergy", "E(#mu)", "", false},
	{"PhiSingle", "PhiSingle", "#phi(#mu)", "GeV", false},
	{"PhiSingleMuM", "PhiSingleMuM", "#phi(#mu^{-})", "GeV", false},
	{"PhiSingleMuP", "PhiSingleMuP", "#phi(#mu^{+})", "GeV", false},
	{"PtSingle", "PtSingle", "p_{T}(#mu)", "GeV", false},
	{"PtSingleMuM", "PtSingleMuM", "p_{T}(#mu^{-})", "GeV", false},
	{"PtSingleMuP", "PtSingleMuP", "p_{T}(#mu^{+})", "GeV", false},
	{"PtSingle_BKG", "PtSingle-BKG", "p_{T}(#mu)", "GeV", false},
	{"PtSingle_Y1S", "PtSingle-Y1S", "p_{T}(#mu)", "GeV", false},
	{"PtSingle_Y2S", "PtSingle-Y2S", "p_{T}(#mu)", "GeV", false},
	{"PtSingle_Y3S", "PtSingle-Y3S", "p_{T}(#mu)", "GeV", false},

	// binned as the efficiency corrections
	{"EtaSingleEffbin", "EtaSingleEffbin", "#eta(#mu)", "", false},
	{"EtaSingleEffbinPerWidth", "EtaSingleEffbinPerWidth", "#eta(#mu)", "", false},
	{"EtaSingleMuMEffbin", "EtaSingleMuMEffbin", "#eta(#mu^{-})", "", false},
	{"EtaSingleMuMEffbinPerWidth", "EtaSingleMuMEffbinPerWidth", "#eta(#mu^{-})", "", false},
	{"EtaSingleMuPEffbin", "EtaSingleMuPEffbin", "#eta(#mu^{+})", "", false},
	{"EtaSingleMuPEffbinPerWidth", "EtaSingleMuPEffbinPerWidth", "#eta(#mu^{+})", "", false},
	{"EtaSingleYnSEffbin_BKG", "EtaSingleYnSEffbin_BKG", "#eta(#mu)", "", false},
	{"EtaSingleYnSEffbinPerWidth_BKG", "EtaSingleYnSEffbinPerWidth_BKG", "#eta(#mu)", "", false},
	{"PtSingleEffbin", "PtSingleEffbin", "p_{T}(#mu)", "GeV", false},
	{"PtSingleEffbinPerWidth", "PtSingleEffbinPerWidth", "p_{T}(#mu)", "GeV", false},
	{"PtSingleMuMEffbin", "PtSingleMuMEffbin", "p_{T}(#mu^{-})", "GeV", false},
	{"PtSingleMuMEffbinPerWidth", "PtSingleMuMEffbinPerWidth", "p_{T}(#mu^{-})", "GeV", false},
	{"PtSingleMuPEffbin", "PtSingleMuPEffbin", "p_{T}(#mu^{+})", "GeV", false},
	{"PtSingleMuPEffbinPerWidth", "PtSingleMuPEffbinPerWidth", "p_{T}(#mu^{+})", "GeV", false},
	{"PtSingleYnSEffbin_BKG", "PtSingleYnSEffbin_BKG", "p_{T}(#mu)", "GeV", false},
	{"PtSingleYnSEffbinPerWidth_BKG", "PtSingleYnSEffbinPerWidth_BKG", "p_{T}(#mu)", "GeV", false},

	// extra tracks kinematics
	{"ExtTrkEtaAfter", "ExtTrkEtaAfter", "#eta (extra tracks)", "", false},
	{"ExtTrkPhiAfter", "ExtTrkPhiAfter", "#phi (extra tracks)", "", false},
	{"ExtTrkPtAfter", "ExtTrkPtAfter", "p_{T} (extra tracks)", "GeV", false},

	// control plots
	{"numVtxAfterCuts", "numVtxAfterCuts", "Number of vertices in the event", "", false},
	{"vtxZ", "vtxZ", "", "", false},

	// cut flow
	{"EscapingCuts", "EscapingCuts", "", "", true},
	{"EscapingCutsNoWeight", "EscapingCutsNoWeight", "", "", true},
	{"PassingCuts", "PassingCuts", "", "", true},
	{"PassingCutsNoWeight", "PassingCutsNoWeight", "", "", true},
}

var distributionIndex = func() map[string]Distribution {
	m := make(map[string]Distribution, len(distributions))
	for _, d := range distributions {
		m[d.Key] = d
	}
	return m
}()

// LookupDistribution returns the table entry for a storage key.
func LookupDistribution(key string) (Distribution, error) {
	d, ok := distributionIndex[key]
	if !ok {
		return Distribution{}, fmt.Errorf("%w: %q", ErrUnknownDistribution, key)
	}
	return d, nil
}

// Distributions returns every table entry sorted by key.
func Distributions() []Distribution {
	out := make([]Distribution, len(distributions))
	copy(out, distributions)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
