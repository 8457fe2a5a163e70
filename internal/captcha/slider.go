package captcha

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Slider is a rendered slider puzzle. Both images and the position are
// already downsampled by Scale.
type Slider struct {
	Background *image.NRGBA
	Piece      *image.NRGBA
	Position   Position
}

// Slider cuts a puzzle piece out of the image encoded in raw and shades the
// notch it leaves in the background.
func (g *Generator) Slider(raw []byte) (*Slider, error) {
	pos := RandomPosition(g.rng)

	work, err := normalize(raw)
	if err != nil {
		return nil, err
	}

	mask, border, err := g.loadTemplates()
	if err != nil {
		return nil, err
	}

	piece := cutout(work, mask, border, pos)
	piece = imaging.Resize(piece, PieceWidth/Scale, PieceHeight/Scale, imaging.Linear)

	occlude(work, mask, pos)
	background := imaging.Resize(work, SliderWidth/Scale, SliderHeight/Scale, imaging.Linear)

	return &Slider{
		Background: background,
		Piece:      piece,
		Position:   pos.Scaled(Scale),
	}, nil
}

// normalize decodes raw and stretches it to exactly SliderWidth x SliderHeight.
func normalize(raw []byte) (*image.NRGBA, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrDecode)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width > MaxSourceSide || cfg.Height > MaxSourceSide ||
		cfg.Width*cfg.Height > MaxSourcePixels {
		return nil, fmt.Errorf("%w: image too large: %dx%d", ErrDecode, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecode)
	}
	if b.Dx() != SliderWidth || b.Dy() != SliderHeight {
		return imaging.Resize(img, SliderWidth, SliderHeight, imaging.Linear), nil
	}
	return imaging.Clone(img), nil
}

// cutout copies the piece at pos, paints the border template over it and
// replaces its alpha channel with the mask's.
func cutout(work, mask, border *image.NRGBA, pos Position) *image.NRGBA {
	piece := imaging.Crop(work, pos.Bounds())

	for y := 0; y < PieceHeight; y++ {
		for x := 0; x < PieceWidth; x++ {
			i := piece.PixOffset(x, y)

			j := border.PixOffset(x, y)
			b := border.Pix[j : j+4 : j+4]
			if b[0] != 0 || b[1] != 0 || b[2] != 0 || b[3] != 0 {
				copy(piece.Pix[i:i+4], b)
			}

			piece.Pix[i+3] = mask.Pix[mask.PixOffset(x, y)+3]
		}
	}
	return piece
}

// occlude darkens the notch at pos with black at half the mask alpha.
func occlude(work, mask *image.NRGBA, pos Position) {
	for y := 0; y < PieceHeight; y++ {
		for x := 0; x < PieceWidth; x++ {
			alpha := mask.Pix[mask.PixOffset(x, y)+3]
			if alpha == 0 {
				continue
			}

			px, py := pos.X+x, pos.Y+y
			shade := color.NRGBA{A: alpha / 2}
			work.SetNRGBA(px, py, Merge(shade, work.NRGBAAt(px, py)))
		}
	}
}
