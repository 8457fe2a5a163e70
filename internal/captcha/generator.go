// Package captcha renders text and slider puzzle challenges.
package captcha

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"

	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/random"
)

// Text challenge geometry.
const (
	CodeWidth    = 260
	CodeHeight   = 96
	FontSize     = 72
	FontWidth    = 48
	FontInterval = 15
)

// Slider challenge geometry.
const (
	SliderWidth  = 720
	SliderHeight = 280
	PieceWidth   = 100
	PieceHeight  = 100
	Scale        = 2
)

// Limits on slider source images, checked from the header before decoding.
const (
	MaxSourceSide   = 8192
	MaxSourcePixels = 16 << 20
)

// Generator renders challenges. Font and templates are resolved from the
// asset provider on first use and shared read-only by all later calls, so
// a Generator is safe for concurrent use.
type Generator struct {
	assets assets.Provider
	rng    *random.Generator

	fontOnce sync.Once
	font     *truetype.Font
	fontErr  error

	templateOnce sync.Once
	mask         *image.NRGBA
	border       *image.NRGBA
	templateErr  error
}

// NewGenerator creates a new challenge generator. A nil rng uses a
// time-seeded source.
func NewGenerator(provider assets.Provider, rng *random.Generator) *Generator {
	if rng == nil {
		rng = random.NewDefault()
	}
	return &Generator{
		assets: provider,
		rng:    rng,
	}
}

// Warmup resolves every asset now instead of on the first request.
func (g *Generator) Warmup() error {
	if _, err := g.loadFont(); err != nil {
		return err
	}
	if _, _, err := g.loadTemplates(); err != nil {
		return err
	}
	return nil
}

func (g *Generator) loadFont() (*truetype.Font, error) {
	g.fontOnce.Do(func() {
		data, err := g.assets.Bytes(assets.FontName)
		if err != nil {
			g.fontErr = fmt.Errorf("%w: %s: %w", ErrAssetMissing, assets.FontName, err)
			return
		}

		font, err := truetype.Parse(data)
		if err != nil {
			g.fontErr = fmt.Errorf("%w: %w", ErrFontLoad, err)
			return
		}
		g.font = font
	})
	return g.font, g.fontErr
}

func (g *Generator) loadTemplates() (mask, border *image.NRGBA, err error) {
	g.templateOnce.Do(func() {
		g.mask, g.templateErr = g.loadTemplate(assets.MaskName)
		if g.templateErr != nil {
			return
		}
		g.border, g.templateErr = g.loadTemplate(assets.BorderName)
	})
	return g.mask, g.border, g.templateErr
}

func (g *Generator) loadTemplate(name string) (*image.NRGBA, error) {
	data, err := g.assets.Bytes(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetMissing, name, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetInvalid, name, err)
	}

	b := img.Bounds()
	if b.Dx() != PieceWidth || b.Dy() != PieceHeight {
		return nil, fmt.Errorf("%w: %s is %dx%d, want %dx%d",
			ErrAssetInvalid, name, b.Dx(), b.Dy(), PieceWidth, PieceHeight)
	}

	return imaging.Clone(img), nil
}
