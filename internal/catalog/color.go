package catalog

import "image/color"

// Color is a ROOT colour index. The tables keep the indices the plots
// were tuned with and convert to RGB when rendering.
type Color int

const (
	White      Color = 0
	Black      Color = 1
	Red        Color = 2
	Green      Color = 3
	Blue       Color = 4
	Yellow     Color = 5
	Color30    Color = 30
	Color40    Color = 40
	GreenPlus3 Color = 419
	Orange     Color = 800
)

var palette = map[Color]color.NRGBA{
	White:      {R: 255, G: 255, B: 255, A: 255},
	Black:      {R: 0, G: 0, B: 0, A: 255},
	Red:        {R: 255, G: 0, B: 0, A: 255},
	Green:      {R: 0, G: 255, B: 0, A: 255},
	Blue:       {R: 0, G: 0, B: 255, A: 255},
	Yellow:     {R: 255, G: 255, B: 0, A: 255},
	Color30:    {R: 89, G: 212, B: 84, A: 255},
	Color40:    {R: 171, G: 164, B: 209, A: 255},
	GreenPlus3: {R: 0, G: 102, B: 0, A: 255},
	Orange:     {R: 255, G: 204, B: 0, A: 255},
}

// RGBA implements color.Color. Unknown indices render grey.
func (c Color) RGBA() (r, g, b, a uint32) {
	if rgb, ok := palette[c]; ok {
		return rgb.RGBA()
	}
	return color.NRGBA{R: 128, G: 128, B: 128, A: 255}.RGBA()
}
