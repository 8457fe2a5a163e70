package captcha

// GlyphBlockWidth returns the width of n glyphs laid out side by side.
// The interval is only added for blocks longer than two glyphs.
func GlyphBlockWidth(n int) int {
	width := FontWidth * n
	if n > 2 {
		width += FontInterval * (n - 2)
	}
	return width
}

// Layout returns the top-left corner of the first glyph and the horizontal
// step between glyphs. startX is not clamped and goes negative for long text.
func Layout(n int) (startX, startY, stepX int) {
	startX = (CodeWidth-GlyphBlockWidth(n))/2 - 5
	startY = (CodeHeight-FontSize)/2 + 5
	stepX = FontWidth + FontInterval
	return startX, startY, stepX
}
