package captcha

import (
	"image"

	"github.com/kyiku/captcha-engine/internal/random"
)

// Position is the top-left corner of the puzzle piece on the working image.
type Position struct {
	X int
	Y int
}

// RandomPosition picks a piece position on the 720x280 working image.
// X starts one piece width in from the left edge. Both ranges are shortened
// by an independent jitter in [0, 10) on every call.
func RandomPosition(rng *random.Generator) Position {
	x := PieceWidth + rng.Intn(SliderWidth-PieceWidth-PieceWidth-rng.Intn(10))
	y := rng.Intn(SliderHeight - PieceHeight - rng.Intn(10))
	return Position{X: x, Y: y}
}

// Bounds returns the piece rectangle at this position.
func (p Position) Bounds() image.Rectangle {
	return image.Rect(p.X, p.Y, p.X+PieceWidth, p.Y+PieceHeight)
}

// Scaled divides both coordinates by factor.
func (p Position) Scaled(factor int) Position {
	return Position{X: p.X / factor, Y: p.Y / factor}
}
