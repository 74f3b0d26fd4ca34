package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Attributes are the per-vertex arrays derived from a Mesh, indexed identically to Mesh.Points.
type Attributes struct {
	// Colors holds one RGBA gradient color per point.
	Colors []mgl32.Vec4

	// Normals holds one unit normal per point.
	Normals []mgl32.Vec3
}

// GradientMatrix builds the affine transform that maps a unit-sphere point to its gradient color.
// The point's Y coordinate is remapped from [-1, 1] to t in [0, 1] and the result is
// start + (stop - start) * t on all four channels. X and Z do not contribute.
//
// Parameters:
//   - start: the color at the bottom pole (y = -1)
//   - stop: the color at the top pole (y = 1)
//
// Returns:
//   - mgl32.Mat4: the gradient transform, applied as GradientMatrix(start, stop).Mul4x1(point)
func GradientMatrix(start, stop mgl32.Vec4) mgl32.Mat4 {
	half := stop.Sub(start).Mul(0.5)
	offset := start.Add(half)

	var m mgl32.Mat4
	m.SetCol(1, half)
	m.SetCol(3, offset)
	return m
}

// BuildAttributes derives colors and normals for every point of m. The arrays are always rebuilt
// in full; calling it twice on the same inputs yields identical results.
// The normal of a point on a unit sphere centred at the origin is the point itself.
//
// Parameters:
//   - m: the mesh whose points are sampled
//   - colorStart: the gradient color at y = -1
//   - colorStop: the gradient color at y = 1
//
// Returns:
//   - Attributes: colors and normals with len == len(m.Points)
func BuildAttributes(m Mesh, colorStart, colorStop mgl32.Vec4) Attributes {
	gradient := GradientMatrix(colorStart, colorStop)

	attrs := Attributes{
		Colors:  make([]mgl32.Vec4, len(m.Points)),
		Normals: make([]mgl32.Vec3, len(m.Points)),
	}
	for i, p := range m.Points {
		attrs.Colors[i] = gradient.Mul4x1(p)
		attrs.Normals[i] = p.Vec3()
	}
	return attrs
}

// Clone returns a deep copy of the attribute arrays.
func (a Attributes) Clone() Attributes {
	return Attributes{
		Colors:  append([]mgl32.Vec4(nil), a.Colors...),
		Normals: append([]mgl32.Vec3(nil), a.Normals...),
	}
}
