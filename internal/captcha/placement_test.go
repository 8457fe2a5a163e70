package captcha

import (
	"image"
	"testing"

	"github.com/kyiku/captcha-engine/internal/random"
	"github.com/stretchr/testify/assert"
)

func TestRandomPosition_Range(t *testing.T) {
	rng := random.New(11)
	work := image.Rect(0, 0, SliderWidth, SliderHeight)

	minX, maxX, maxY := SliderWidth, 0, 0
	for i := 0; i < 5000; i++ {
		p := RandomPosition(rng)

		assert.GreaterOrEqual(t, p.X, PieceWidth)
		assert.LessOrEqual(t, p.X, 619)
		assert.GreaterOrEqual(t, p.Y, 0)
		assert.LessOrEqual(t, p.Y, 179)
		assert.True(t, p.Bounds().In(work), "ピースは画像内に収まるべき: %+v", p)

		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	// 範囲全体に分布する
	assert.Less(t, minX, 120)
	assert.Greater(t, maxX, 580)
	assert.Greater(t, maxY, 150)
}

func TestRandomPosition_Randomness(t *testing.T) {
	rng := random.NewDefault()

	positions := make(map[Position]bool)
	for i := 0; i < 20; i++ {
		positions[RandomPosition(rng)] = true
	}

	assert.Greater(t, len(positions), 5, "20回の生成で5種類以上の位置が出るべき")
}

func TestPosition_Bounds(t *testing.T) {
	p := Position{X: 150, Y: 40}

	assert.Equal(t, image.Rect(150, 40, 250, 140), p.Bounds())
}

func TestPosition_Scaled(t *testing.T) {
	tests := []struct {
		name string
		p    Position
		want Position
	}{
		{name: "偶数", p: Position{X: 100, Y: 0}, want: Position{X: 50, Y: 0}},
		{name: "奇数は切り捨て", p: Position{X: 619, Y: 179}, want: Position{X: 309, Y: 89}},
		{name: "最小", p: Position{X: 101, Y: 1}, want: Position{X: 50, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Scaled(Scale))
		})
	}
}
