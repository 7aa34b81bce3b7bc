// Package render draws stacked distributions and fit results to image
// files with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// px is one pixel at the 96 DPI the PNG backend renders with.
const px = vg.Inch / 96

// Canvas is an output image size.
type Canvas struct {
	Width, Height vg.Length
}

var (
	// Wide is the canvas of the graph and fit plots.
	Wide = Canvas{Width: 1800 * px, Height: 1000 * px}
	// Square is the canvas of the normalization plot.
	Square = Canvas{Width: 1200 * px, Height: 1000 * px}
)

var black = color.Black

// Save writes p to path, creating the parent directory. The format
// follows the file extension.
func Save(p *plot.Plot, c Canvas, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := p.Save(c.Width, c.Height, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func newPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = Text(title)
	p.X.Label.Text = Text(xlabel)
	p.Legend.Top = true
	p.Legend.ThumbnailWidth = 0.5 * vg.Centimeter
	return p
}

func blackLine(width vg.Length) draw.LineStyle {
	return draw.LineStyle{Color: black, Width: width}
}
