package captcha

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlyphBlockWidth(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{name: "0文字", count: 0, want: 0},
		{name: "1文字: 間隔なし", count: 1, want: 48},
		{name: "2文字: 間隔なし", count: 2, want: 96},
		{name: "3文字: 間隔1つ分", count: 3, want: 159},
		{name: "4文字: 間隔2つ分", count: 4, want: 222},
		{name: "8文字", count: 8, want: 474},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GlyphBlockWidth(tt.count))
		})
	}
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wantStart int
	}{
		{name: "1文字", count: 1, wantStart: 101},
		{name: "2文字", count: 2, wantStart: 77},
		{name: "3文字", count: 3, wantStart: 45},
		{name: "4文字", count: 4, wantStart: 14},
		{name: "5文字: 左端からはみ出す", count: 5, wantStart: -17},
		{name: "8文字: 負の開始位置", count: 8, wantStart: -112},
		{name: "9文字: 奇数幅はゼロ方向に切り捨て", count: 9, wantStart: -143},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startX, startY, stepX := Layout(tt.count)

			assert.Equal(t, tt.wantStart, startX)
			assert.Equal(t, 17, startY)
			assert.Equal(t, 63, stepX)
		})
	}
}
