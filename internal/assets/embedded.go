package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/gofont/gobold"
)

// TemplateSize is the edge length of the synthesized mask and border templates.
const TemplateSize = 100

// rim width of the border template in pixels
const borderWidth = 2

var (
	embeddedOnce  sync.Once
	embeddedFiles map[string][]byte
	embeddedErr   error
)

type embeddedProvider struct{}

// Embedded returns the compiled-in resources: the Go Bold font and a
// jigsaw mask with its border. The templates are rendered on first use.
func Embedded() Provider {
	return embeddedProvider{}
}

func (embeddedProvider) Bytes(name string) ([]byte, error) {
	embeddedOnce.Do(func() {
		embeddedFiles, embeddedErr = buildEmbedded()
	})
	if embeddedErr != nil {
		return nil, embeddedErr
	}

	data, ok := embeddedFiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return data, nil
}

func buildEmbedded() (map[string][]byte, error) {
	mask := MaskTemplate()
	border := BorderTemplate(mask)

	maskPNG, err := encodePNG(mask)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mask template: %w", err)
	}
	borderPNG, err := encodePNG(border)
	if err != nil {
		return nil, fmt.Errorf("failed to encode border template: %w", err)
	}

	return map[string][]byte{
		FontName:   gobold.TTF,
		MaskName:   maskPNG,
		BorderName: borderPNG,
	}, nil
}

// MaskTemplate renders the puzzle silhouette: a square body with a knob on
// the top edge and one on the right edge. Edges are anti-aliased.
func MaskTemplate() image.Image {
	dc := gg.NewContext(TemplateSize, TemplateSize)
	dc.SetRGB(1, 1, 1)

	dc.DrawRectangle(20, 20, 60, 60)
	dc.Fill()
	dc.DrawCircle(50, 20, 12)
	dc.Fill()
	dc.DrawCircle(80, 50, 12)
	dc.Fill()

	return dc.Image()
}

// BorderTemplate marks every pixel of mask that lies within borderWidth of
// the silhouette edge with opaque white. All other pixels stay (0,0,0,0).
func BorderTemplate(mask image.Image) *image.NRGBA {
	b := mask.Bounds()
	border := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	alphaAt := func(x, y int) uint32 {
		if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
			return 0
		}
		_, _, _, a := mask.At(b.Min.X+x, b.Min.Y+y).RGBA()
		return a
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if alphaAt(x, y) == 0 {
				continue
			}
			if nearEdge(x, y, alphaAt) {
				border.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return border
}

func nearEdge(x, y int, alphaAt func(x, y int) uint32) bool {
	for dy := -borderWidth; dy <= borderWidth; dy++ {
		for dx := -borderWidth; dx <= borderWidth; dx++ {
			if alphaAt(x+dx, y+dy) == 0 {
				return true
			}
		}
	}
	return false
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
