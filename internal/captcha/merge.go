package captcha

import "image/color"

// Merge blends a over b. Color channels use
// (a.c*a.A + b.c*(255-a.A)) / 255 and alpha uses a.A + b.A*(255-a.A)/255,
// all with integer truncation. The alpha term is not the premultiplied
// "over" operator; verification clients depend on these exact values.
func Merge(a, b color.NRGBA) color.NRGBA {
	aa := uint32(a.A)
	inv := 255 - aa

	return color.NRGBA{
		R: uint8((uint32(a.R)*aa + uint32(b.R)*inv) / 255),
		G: uint8((uint32(a.G)*aa + uint32(b.G)*inv) / 255),
		B: uint8((uint32(a.B)*aa + uint32(b.B)*inv) / 255),
		A: uint8(aa + uint32(b.A)*inv/255),
	}
}
