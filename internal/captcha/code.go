package captcha

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Code renders text as a 260x96 challenge image. Circles, noise lines and
// Bezier curves are drawn under the glyphs; every count, coordinate and
// color is drawn from the generator's random source.
func (g *Generator) Code(text string) (*image.RGBA, error) {
	f, err := g.loadFont()
	if err != nil {
		return nil, err
	}

	chars := []rune(text)
	for _, r := range chars {
		if f.Index(r) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingGlyph, r)
		}
	}

	face := truetype.NewFace(f, &truetype.Options{Size: FontSize})
	defer face.Close()

	dc := gg.NewContext(CodeWidth, CodeHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetLineWidth(1)

	g.drawCircles(dc)
	g.drawNoiseLines(dc)
	g.drawCurves(dc)
	g.drawText(dc, face, chars)

	return dc.Image().(*image.RGBA), nil
}

// drawCircles draws hollow circles that stay fully inside the canvas.
func (g *Generator) drawCircles(dc *gg.Context) {
	for i, n := 0, g.rng.Range(5, 10); i < n; i++ {
		radius := g.rng.Range(4, 8)
		x := g.rng.Range(radius, CodeWidth-radius)
		y := g.rng.Range(radius, CodeHeight-radius)

		dc.SetColor(PickColor(g.rng))
		dc.DrawCircle(float64(x), float64(y), float64(radius))
		dc.Stroke()
	}
}

func (g *Generator) drawNoiseLines(dc *gg.Context) {
	for i, n := 0, g.rng.Range(3, 6); i < n; i++ {
		x1 := g.rng.Intn(CodeWidth)
		y1 := g.rng.Intn(CodeHeight)
		x2 := g.rng.Intn(CodeWidth)
		y2 := g.rng.Intn(CodeHeight)

		dc.SetColor(PickColor(g.rng))
		dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
		dc.Stroke()
	}
}

// drawCurves draws cubic Bezier curves from the left edge to the right edge.
// Half of them run from the lower half to the upper half.
func (g *Generator) drawCurves(dc *gg.Context) {
	for i, n := 0, g.rng.Range(3, 5); i < n; i++ {
		x1 := 5
		y1 := g.rng.Range(5, CodeHeight/2)
		x2 := CodeWidth - 5
		y2 := g.rng.Range(CodeHeight/2, CodeHeight-5)

		cx1 := g.rng.Range(CodeWidth/4, CodeWidth/4*3)
		cy1 := g.rng.Range(5, CodeHeight-5)
		cx2 := g.rng.Range(CodeWidth/4, CodeWidth/4*3)
		cy2 := g.rng.Range(5, CodeHeight-5)

		if g.rng.Bool() {
			y1, y2 = y2, y1
		}

		dc.SetColor(PickColor(g.rng))
		dc.MoveTo(float64(x1), float64(y1))
		dc.CubicTo(float64(cx1), float64(cy1), float64(cx2), float64(cy2), float64(x2), float64(y2))
		dc.Stroke()
	}
}

// drawText places one glyph per character. Layout positions are the top of
// the glyph box; gg draws at the baseline, so the ascent is added.
func (g *Generator) drawText(dc *gg.Context, face font.Face, chars []rune) {
	startX, startY, stepX := Layout(len(chars))
	baseline := float64(startY + face.Metrics().Ascent.Ceil())

	dc.SetFontFace(face)
	for i, r := range chars {
		dc.SetColor(PickColor(g.rng))
		dc.DrawString(string(r), float64(startX+i*stepX), baseline)
	}
}
