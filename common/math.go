// Package common contains small helpers and shared values used throughout the engine. They are plain
// functions and values, not interface-wrapped structs.
package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// SphereVector returns the homogeneous point on the unit sphere at azimuth theta and polar angle phi.
// Y is the pole axis: phi = 0 yields (0, 1, 0, 1).
//
// Parameters:
//   - theta: azimuth in radians, measured in the XZ plane from +X toward +Z
//   - phi: polar angle in radians, measured from +Y
//
// Returns:
//   - mgl32.Vec4: the point (cos(theta)*sin(phi), cos(phi), sin(theta)*sin(phi), 1)
func SphereVector(theta, phi float32) mgl32.Vec4 {
	return mgl32.Vec4{
		math32.Cos(theta) * math32.Sin(phi),
		math32.Cos(phi),
		math32.Sin(theta) * math32.Sin(phi),
		1,
	}
}

// ComposeModel builds a model matrix as translate × scale × rotate, starting from identity.
// The product is rebuilt from its parts every call so repeated edits never accumulate drift.
//
// Parameters:
//   - translation: world-space offset
//   - scale: per-axis scale factors
//   - rotation: a rotation matrix applied in object space
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ComposeModel(translation, scale mgl32.Vec3, rotation mgl32.Mat4) mgl32.Mat4 {
	model := mgl32.Ident4()
	model = model.Mul4(mgl32.Translate3D(translation[0], translation[1], translation[2]))
	model = model.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	return model.Mul4(rotation)
}

// ColorToBytes quantizes a floating point RGBA color into 8-bit channels the way a fixed-function
// framebuffer does: each channel is clamped to [0, 1] and rounded to the nearest of 256 levels.
//
// Parameters:
//   - c: the color to quantize
//
// Returns:
//   - [4]byte: the RGBA bytes
func ColorToBytes(c mgl32.Vec4) [4]byte {
	var out [4]byte
	for i := range out {
		v := mgl32.Clamp(c[i], 0, 1)
		out[i] = uint8(math32.Floor(v*255 + 0.5))
	}
	return out
}
