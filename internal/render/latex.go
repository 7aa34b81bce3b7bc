package render

import "strings"

// latex maps the ROOT TLatex markup used in the catalog labels to plain
// Unicode. Keys are matched in order, so longer commands come first.
var latex = strings.NewReplacer(
	"#rightarrow", "→",
	"#Upsilon", "Υ",
	"#gamma", "γ",
	"#Delta", "Δ",
	"#Sigma", "Σ",
	"#mu", "μ",
	"#phi", "φ",
	"#eta", "η",
	"#pi", "π",
	"^{+}", "⁺",
	"^{-}", "⁻",
	"^{2}", "²",
	"_{T}", "T",
	"#1", "1",
)

// Text converts a TLatex label to display text.
func Text(s string) string {
	return strings.ReplaceAll(latex.Replace(s), "#", "")
}
