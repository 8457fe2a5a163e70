package bridge

import (
	"encoding/binary"
	"fmt"

	"github.com/kyiku/captcha-engine/internal/captcha"
)

// HeaderSize is the length of the X, Y and piece length prefix.
const HeaderSize = 12

// SliderCaptcha is an unpacked slider challenge.
type SliderCaptcha struct {
	X          int
	Y          int
	Background []byte
	Cutout     []byte
}

// Pack lays out a slider challenge as
//
//	[0,4)    X, int32 little endian
//	[4,8)    Y, int32 little endian
//	[8,12)   N = len(piece), int32 little endian
//	[12,12+N) piece PNG
//	[12+N,)  background PNG
func Pack(x, y int32, piece, background []byte) []byte {
	buf := make([]byte, HeaderSize, HeaderSize+len(piece)+len(background))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(x))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(int32(len(piece))))

	buf = append(buf, piece...)
	buf = append(buf, background...)
	return buf
}

// Unpack splits a buffer produced by Pack. The returned slices share
// memory with buf.
func Unpack(buf []byte) (*SliderCaptcha, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: buffer too short: %d bytes", captcha.ErrIO, len(buf))
	}

	x := int32(binary.LittleEndian.Uint32(buf[0:4]))
	y := int32(binary.LittleEndian.Uint32(buf[4:8]))
	n := int32(binary.LittleEndian.Uint32(buf[8:12]))

	if n < 0 || int64(n) > int64(len(buf)-HeaderSize) {
		return nil, fmt.Errorf("%w: invalid piece length %d", captcha.ErrIO, n)
	}

	end := HeaderSize + int(n)
	return &SliderCaptcha{
		X:          int(x),
		Y:          int(y),
		Cutout:     buf[HeaderSize:end],
		Background: buf[end:],
	}, nil
}
