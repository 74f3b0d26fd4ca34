package picking

import "github.com/go-gl/mathgl/mgl32"

const (
	// NoHit is the id a pick reports when no pickable object covers the pixel. Objects drawn
	// with it, such as the dish, can never be picked.
	NoHit uint32 = 0

	// IDLimit is one past the largest id representable in the RGB channels of an 8-bit
	// framebuffer.
	IDLimit uint32 = 1 << 24

	// MaxID is the largest encodable id.
	MaxID = IDLimit - 1
)

// sentinel is the color of ids that cannot be encoded. It decodes to NoHit.
var sentinel = mgl32.Vec4{0, 0, 0, 1}

// IDToColor encodes an id into an opaque flat color: the low byte in red, the next in green and
// the next in blue, each scaled to [0, 1].
//
// Parameters:
//   - id: the id to encode
//
// Returns:
//   - mgl32.Vec4: the color, or (0, 0, 0, 1) for ids >= IDLimit
func IDToColor(id uint32) mgl32.Vec4 {
	if id >= IDLimit {
		return sentinel
	}
	return mgl32.Vec4{
		float32(id&0xff) / 255,
		float32((id>>8)&0xff) / 255,
		float32((id>>16)&0xff) / 255,
		1,
	}
}

// ColorToID decodes a pixel read back from the framebuffer. Alpha is ignored.
//
// Parameters:
//   - px: the RGBA bytes of the pixel
//
// Returns:
//   - uint32: R | G<<8 | B<<16
func ColorToID(px [4]byte) uint32 {
	return uint32(px[0]) | uint32(px[1])<<8 | uint32(px[2])<<16
}
