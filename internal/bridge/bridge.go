// Package bridge exposes the captcha generator as two byte-in, byte-out
// operations for callers that cannot share Go image values.
package bridge

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/kyiku/captcha-engine/internal/captcha"
	"golang.org/x/text/unicode/norm"
)

// JPEGQuality is the quality used for code challenge images.
const JPEGQuality = 75

// Bridge encodes generator output into owned byte buffers.
type Bridge struct {
	gen *captcha.Generator
}

// New creates a Bridge around gen.
func New(gen *captcha.Generator) *Bridge {
	return &Bridge{gen: gen}
}

// CodeCaptcha renders text and returns it as JPEG bytes.
// Text is NFC-normalized first so composed and decomposed input render alike.
func (b *Bridge) CodeCaptcha(text string) ([]byte, error) {
	img, err := b.gen.Code(norm.NFC.String(text))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("%w: %w", captcha.ErrEncode, err)
	}
	return buf.Bytes(), nil
}

// SliderCaptcha renders a slider puzzle from the encoded image in raw and
// returns the packed buffer described by Pack.
func (b *Bridge) SliderCaptcha(raw []byte) ([]byte, error) {
	slider, err := b.gen.Slider(raw)
	if err != nil {
		return nil, err
	}

	var piece, background bytes.Buffer
	if err := png.Encode(&piece, slider.Piece); err != nil {
		return nil, fmt.Errorf("%w: piece: %w", captcha.ErrEncode, err)
	}
	if err := png.Encode(&background, slider.Background); err != nil {
		return nil, fmt.Errorf("%w: background: %w", captcha.ErrEncode, err)
	}

	return Pack(int32(slider.Position.X), int32(slider.Position.Y), piece.Bytes(), background.Bytes()), nil
}

// RandomSlider renders a slider puzzle from a random pool image and unpacks it.
func (b *Bridge) RandomSlider(pool *Pool) (*SliderCaptcha, error) {
	raw, ok := pool.Random()
	if !ok {
		return nil, ErrEmptyPool
	}

	packed, err := b.SliderCaptcha(raw)
	if err != nil {
		return nil, err
	}
	return Unpack(packed)
}
