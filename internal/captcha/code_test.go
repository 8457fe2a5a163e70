package captcha

import (
	"strings"
	"testing"

	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Code(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "正常系: 4文字", text: "AB12"},
		{name: "正常系: 1文字", text: "Q"},
		{name: "正常系: 2文字", text: "xy"},
		{name: "正常系: 3文字", text: "AP0"},
		{name: "正常系: 8文字で左右にはみ出す", text: "ABCDEFGH"},
		{name: "正常系: 長い文字列", text: strings.Repeat("W", 40)},
		{name: "正常系: 空文字列", text: ""},
		{name: "正常系: 非ASCII", text: "éüñ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewGenerator(assets.Embedded(), random.New(5))

			img, err := gen.Code(tt.text)

			require.NoError(t, err)
			require.NotNil(t, img)
			assert.Equal(t, CodeWidth, img.Bounds().Dx())
			assert.Equal(t, CodeHeight, img.Bounds().Dy())

			// 白背景の上に描くので全ピクセル不透明
			for i := 3; i < len(img.Pix); i += 4 {
				if img.Pix[i] != 255 {
					t.Fatalf("pixel %d is not opaque", i/4)
				}
			}
		})
	}
}

func TestGenerator_CodeDrawsGlyphs(t *testing.T) {
	gen := NewGenerator(assets.Embedded(), random.New(9))

	img, err := gen.Code("AB12")
	require.NoError(t, err)

	// 文字領域には白以外のピクセルが多数ある
	colored := 0
	for y := 20; y < 90; y++ {
		for x := 20; x < 240; x++ {
			c := img.RGBAAt(x, y)
			if c.R != 255 || c.G != 255 || c.B != 255 {
				colored++
			}
		}
	}
	assert.Greater(t, colored, 1000)
}

func TestGenerator_CodeDeterministic(t *testing.T) {
	a, err := NewGenerator(assets.Embedded(), random.New(42)).Code("AB12")
	require.NoError(t, err)
	b, err := NewGenerator(assets.Embedded(), random.New(42)).Code("AB12")
	require.NoError(t, err)
	c, err := NewGenerator(assets.Embedded(), random.New(43)).Code("AB12")
	require.NoError(t, err)

	assert.Equal(t, a.Pix, b.Pix, "同じシードなら同じ画像")
	assert.NotEqual(t, a.Pix, c.Pix, "シードが違えば画像も違う")
}

func TestGenerator_CodeMissingGlyph(t *testing.T) {
	gen := NewGenerator(assets.Embedded(), random.New(1))

	img, err := gen.Code("AB中")

	assert.ErrorIs(t, err, ErrMissingGlyph)
	assert.Nil(t, img)
}
