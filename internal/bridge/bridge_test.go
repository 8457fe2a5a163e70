package bridge

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/png"
	"testing"

	"github.com/kyiku/captcha-engine/internal/assets"
	"github.com/kyiku/captcha-engine/internal/captcha"
	"github.com/kyiku/captcha-engine/internal/random"
	"github.com/kyiku/captcha-engine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBridge(seed int64) *Bridge {
	return New(captcha.NewGenerator(assets.Embedded(), random.New(seed)))
}

func TestBridge_CodeCaptcha(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "正常系: 4文字", text: "AB12"},
		{name: "正常系: 1文字", text: "z"},
		{name: "正常系: 長い文字列", text: "ABCDEFGHIJKL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := newTestBridge(3).CodeCaptcha(tt.text)

			require.NoError(t, err)

			img, format, err := image.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, "jpeg", format)
			assert.Equal(t, image.Rect(0, 0, captcha.CodeWidth, captcha.CodeHeight), img.Bounds())
		})
	}
}

func TestBridge_CodeCaptchaNormalizesText(t *testing.T) {
	composed, err := newTestBridge(11).CodeCaptcha("caf\u00e9")
	require.NoError(t, err)

	decomposed, err := newTestBridge(11).CodeCaptcha("cafe\u0301")
	require.NoError(t, err)

	assert.Equal(t, composed, decomposed)
}

func TestBridge_CodeCaptchaErrors(t *testing.T) {
	t.Run("異常系: グリフがない", func(t *testing.T) {
		data, err := newTestBridge(1).CodeCaptcha("中文")

		assert.ErrorIs(t, err, captcha.ErrMissingGlyph)
		assert.Nil(t, data)
	})

	t.Run("異常系: フォントがない", func(t *testing.T) {
		b := New(captcha.NewGenerator(testutil.NewMapProvider(nil), random.New(1)))

		data, err := b.CodeCaptcha("AB12")

		assert.ErrorIs(t, err, captcha.ErrAssetMissing)
		assert.Nil(t, data)
	})
}

func TestBridge_SliderCaptcha(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "正常系: 1280x720 JPEG", input: testutil.CreateTestJPEG(1280, 720)},
		{name: "正常系: 720x280 PNG", input: testutil.CreateTestPNG(720, 280)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := newTestBridge(8).SliderCaptcha(tt.input)
			require.NoError(t, err)
			require.Greater(t, len(buf), HeaderSize)

			x := int32(binary.LittleEndian.Uint32(buf[0:4]))
			y := int32(binary.LittleEndian.Uint32(buf[4:8]))
			n := int32(binary.LittleEndian.Uint32(buf[8:12]))
			assert.GreaterOrEqual(t, x, int32(50))
			assert.LessOrEqual(t, x, int32(309))
			assert.GreaterOrEqual(t, y, int32(0))
			assert.LessOrEqual(t, y, int32(89))

			piece, err := png.Decode(bytes.NewReader(buf[HeaderSize : HeaderSize+int(n)]))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 50, 50), piece.Bounds())

			background, err := png.Decode(bytes.NewReader(buf[HeaderSize+int(n):]))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 360, 140), background.Bounds())
		})
	}
}

func TestBridge_SliderCaptchaInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "異常系: 空", input: []byte{}},
		{name: "異常系: 画像でない", input: []byte("hello")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := newTestBridge(1).SliderCaptcha(tt.input)

			assert.ErrorIs(t, err, captcha.ErrDecode)
			assert.Nil(t, buf)
		})
	}
}

func TestBridge_RandomSlider(t *testing.T) {
	t.Run("正常系: プールから生成", func(t *testing.T) {
		pool := NewPool(random.New(2))
		pool.Load(testutil.CreateTestJPEG(800, 600))

		got, err := newTestBridge(4).RandomSlider(pool)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.X, 50)
		assert.LessOrEqual(t, got.X, 309)
		assert.GreaterOrEqual(t, got.Y, 0)
		assert.LessOrEqual(t, got.Y, 89)

		cutout, err := png.Decode(bytes.NewReader(got.Cutout))
		require.NoError(t, err)
		assert.Equal(t, 50, cutout.Bounds().Dx())

		background, err := png.Decode(bytes.NewReader(got.Background))
		require.NoError(t, err)
		assert.Equal(t, 360, background.Bounds().Dx())
	})

	t.Run("異常系: 空のプール", func(t *testing.T) {
		got, err := newTestBridge(4).RandomSlider(NewPool(nil))

		assert.ErrorIs(t, err, ErrEmptyPool)
		assert.Nil(t, got)
	})

	t.Run("異常系: 壊れた画像", func(t *testing.T) {
		pool := NewPool(nil)
		pool.Load([]byte("broken"))

		got, err := newTestBridge(4).RandomSlider(pool)

		assert.ErrorIs(t, err, captcha.ErrDecode)
		assert.Nil(t, got)
	})
}
