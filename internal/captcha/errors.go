package captcha

import "errors"

// Errors returned by the generator. Callers test them with errors.Is.
var (
	// ErrDecode is returned when the input image cannot be decoded.
	ErrDecode = errors.New("failed to decode image")
	// ErrAssetMissing is returned when a required resource cannot be resolved.
	ErrAssetMissing = errors.New("asset missing")
	// ErrAssetInvalid is returned when a resource resolves but has the wrong format or size.
	ErrAssetInvalid = errors.New("asset invalid")
	// ErrFontLoad is returned when the font bytes cannot be parsed.
	ErrFontLoad = errors.New("failed to load font")
	// ErrMissingGlyph is returned when the font has no glyph for a character.
	ErrMissingGlyph = errors.New("missing glyph")
	// ErrEncode is returned when an output image cannot be serialized.
	ErrEncode = errors.New("failed to encode image")
	// ErrIO is returned for buffer failures at the boundary.
	ErrIO = errors.New("captcha io error")
)
