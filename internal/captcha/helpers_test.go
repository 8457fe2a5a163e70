package captcha

import (
	"image"
	"image/color"
	"testing"

	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/testutil"
	"golang.org/x/image/font/gofont/gobold"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// squareMask is opaque in [20,80)x[20,80) and transparent elsewhere.
func squareMask() *image.NRGBA {
	mask := image.NewNRGBA(image.Rect(0, 0, PieceWidth, PieceHeight))
	for y := 20; y < 80; y++ {
		for x := 20; x < 80; x++ {
			mask.SetNRGBA(x, y, white)
		}
	}
	return mask
}

// ringBorder is white on the one-pixel outline of squareMask.
func ringBorder() *image.NRGBA {
	border := image.NewNRGBA(image.Rect(0, 0, PieceWidth, PieceHeight))
	for i := 20; i < 80; i++ {
		border.SetNRGBA(i, 20, white)
		border.SetNRGBA(i, 79, white)
		border.SetNRGBA(20, i, white)
		border.SetNRGBA(79, i, white)
	}
	return border
}

func squareAssets(t *testing.T) *testutil.MapProvider {
	t.Helper()

	return testutil.NewMapProvider(map[string][]byte{
		assets.FontName:   gobold.TTF,
		assets.MaskName:   testutil.EncodePNG(squareMask()),
		assets.BorderName: testutil.EncodePNG(ringBorder()),
	})
}
