package captcha

import (
	"image/color"

	"github.com/kyiku/captcha-engine/internal/random"
)

// Palette is the fixed set of shape and glyph colors.
var Palette = [12]color.RGBA{
	{R: 0, G: 135, B: 255, A: 255},
	{R: 51, G: 135, B: 51, A: 255},
	{R: 255, G: 102, B: 102, A: 255},
	{R: 255, G: 153, B: 0, A: 255},
	{R: 153, G: 102, B: 0, A: 255},
	{R: 153, G: 102, B: 153, A: 255},
	{R: 51, G: 153, B: 153, A: 255},
	{R: 102, G: 102, B: 255, A: 255},
	{R: 0, G: 102, B: 104, A: 255},
	{R: 204, G: 51, B: 51, A: 255},
	{R: 0, G: 153, B: 204, A: 255},
	{R: 0, G: 51, B: 102, A: 255},
}

// PickColor returns a uniformly chosen palette entry.
func PickColor(rng *random.Generator) color.RGBA {
	return Palette[rng.Intn(len(Palette))]
}
