package mesh

import (
	"fmt"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MaxDepth is the deepest subdivision the engine accepts. Depth 8 already yields 262144 faces;
// every further level quadruples memory.
const MaxDepth = 8

// UnitTolerance is the allowed deviation of a mesh point from unit length.
const UnitTolerance = 1e-5

// Mesh is a triangulated unit sphere. Points are homogeneous (w = 1) and Indices holds one
// triple per triangle, wound so every face points away from the origin.
type Mesh struct {
	// Points are the vertex positions on the unit sphere.
	Points []mgl32.Vec4

	// Indices are the triangle corners, three per face, each < len(Points).
	Indices []uint32
}

// edgeKey identifies an undirected edge by its two endpoint indices.
type edgeKey uint64

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey(uint64(a)<<32 | uint64(b))
}

// CheckDepth reports whether depth can be passed to BuildIcosphere without exceeding the
// supported range.
//
// Parameters:
//   - depth: the requested subdivision depth
//
// Returns:
//   - error: a wrapped common.ErrConfiguration when depth is negative or above MaxDepth
func CheckDepth(depth int) error {
	if depth < 0 || depth > MaxDepth {
		return fmt.Errorf("%w: subdivision depth %d outside [0, %d]", common.ErrConfiguration, depth, MaxDepth)
	}
	return nil
}

// Tetrahedron returns the seed mesh: a regular tetrahedron inscribed in the unit sphere with its
// first vertex on the +Y pole.
//
// Returns:
//   - Mesh: four points and four outward-facing triangles
func Tetrahedron() Mesh {
	phi := math32.Acos(-1.0 / 3.0)
	return Mesh{
		Points: []mgl32.Vec4{
			common.SphereVector(0, 0),
			common.SphereVector(0, phi),
			common.SphereVector(2*math32.Pi/3, phi),
			common.SphereVector(4*math32.Pi/3, phi),
		},
		Indices: []uint32{
			0, 2, 1,
			0, 1, 3,
			0, 3, 2,
			1, 2, 3,
		},
	}
}

// BuildIcosphere subdivides the tetrahedron seed depth times. Each step splits every triangle
// into four, placing one shared vertex on the midpoint of each edge and projecting it back onto
// the unit sphere. The result is deterministic for a given depth.
// A negative depth is treated as zero; callers bound depth with CheckDepth.
//
// Parameters:
//   - depth: the number of subdivision steps
//
// Returns:
//   - Mesh: a closed sphere with 2+2*4^depth points and 4*4^depth faces
func BuildIcosphere(depth int) Mesh {
	m := Tetrahedron()
	for i := 0; i < depth; i++ {
		m = subdivide(m)
	}
	return m
}

// subdivide performs one refinement step.
func subdivide(m Mesh) Mesh {
	faces := len(m.Indices) / 3
	// A closed triangle mesh has 3F/2 edges, each producing exactly one new point.
	points := make([]mgl32.Vec4, len(m.Points), len(m.Points)+faces*3/2)
	copy(points, m.Points)
	midpoints := make(map[edgeKey]uint32, faces*3/2)

	midpoint := func(a, b uint32) uint32 {
		key := newEdgeKey(a, b)
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		mid := points[a].Vec3().Add(points[b].Vec3()).Mul(0.5).Normalize()
		idx := uint32(len(points))
		points = append(points, mid.Vec4(1))
		midpoints[key] = idx
		return idx
	}

	indices := make([]uint32, 0, len(m.Indices)*4)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]

		ab := midpoint(a, b)
		bc := midpoint(b, c)
		ca := midpoint(c, a)

		indices = append(indices,
			a, ab, ca,
			b, bc, ab,
			c, ca, bc,
			ab, bc, ca,
		)
	}

	return Mesh{Points: points, Indices: indices}
}

// TriangleCount returns the number of faces.
func (m Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone returns a deep copy so the caller can own the arrays exclusively.
func (m Mesh) Clone() Mesh {
	return Mesh{
		Points:  append([]mgl32.Vec4(nil), m.Points...),
		Indices: append([]uint32(nil), m.Indices...),
	}
}

// Validate checks the structural invariants: a whole number of triangles, every index in range,
// and every point on the unit sphere within UnitTolerance.
//
// Returns:
//   - error: a description of the first violated invariant, or nil
func (m Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh: index count %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Points) {
			return fmt.Errorf("mesh: index %d at position %d out of range (%d points)", idx, i, len(m.Points))
		}
	}
	for i, p := range m.Points {
		if l := p.Vec3().Len(); math32.Abs(l-1) > UnitTolerance {
			return fmt.Errorf("mesh: point %d has length %v", i, l)
		}
	}
	return nil
}
