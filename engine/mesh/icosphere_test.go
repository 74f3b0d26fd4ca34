package mesh

import (
	"errors"
	"testing"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pow4(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 4
	}
	return v
}

func TestBuildIcosphereCounts(t *testing.T) {
	for depth := 0; depth <= 6; depth++ {
		m := BuildIcosphere(depth)

		assert.Equal(t, 4*pow4(depth), m.TriangleCount(), "faces at depth %d", depth)
		assert.Equal(t, 2+2*pow4(depth), len(m.Points), "points at depth %d", depth)
		require.NoError(t, m.Validate(), "depth %d", depth)
	}
}

func TestBuildIcosphereDepthZeroIsSeed(t *testing.T) {
	m := BuildIcosphere(0)
	seed := Tetrahedron()

	assert.Equal(t, seed, m)
	assert.Equal(t, []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3}, m.Indices)
	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, m.Points[0])
	assert.Equal(t, BuildIcosphere(-3), m)
}

func TestBuildIcospherePointsOnUnitSphere(t *testing.T) {
	m := BuildIcosphere(5)
	for i, p := range m.Points {
		assert.InDelta(t, 1.0, p.Vec3().Len(), UnitTolerance, "point %d", i)
		assert.Equal(t, float32(1), p[3], "point %d w", i)
	}
}

func TestBuildIcosphereIsClosed(t *testing.T) {
	for depth := 0; depth <= 4; depth++ {
		m := BuildIcosphere(depth)

		edges := map[edgeKey]int{}
		directed := map[[2]uint32]int{}
		for i := 0; i < len(m.Indices); i += 3 {
			tri := [3]uint32{m.Indices[i], m.Indices[i+1], m.Indices[i+2]}
			for k := 0; k < 3; k++ {
				a, b := tri[k], tri[(k+1)%3]
				edges[newEdgeKey(a, b)]++
				directed[[2]uint32{a, b}]++
			}
		}

		assert.Len(t, edges, 6*pow4(depth), "edge count at depth %d", depth)
		for key, n := range edges {
			assert.Equal(t, 2, n, "edge %x at depth %d", key, depth)
		}
		// Consistent winding: every directed edge is used once, its reverse by the neighbour.
		for e, n := range directed {
			assert.Equal(t, 1, n, "directed edge %v at depth %d", e, depth)
			assert.Equal(t, 1, directed[[2]uint32{e[1], e[0]}], "reverse of %v at depth %d", e, depth)
		}
	}
}

func TestBuildIcosphereFacesPointOutward(t *testing.T) {
	m := BuildIcosphere(3)
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Points[m.Indices[i]].Vec3()
		b := m.Points[m.Indices[i+1]].Vec3()
		c := m.Points[m.Indices[i+2]].Vec3()

		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3.0)
		assert.Greater(t, normal.Dot(centroid), float32(0), "face %d", i/3)
	}
}

func TestBuildIcosphereDeterministic(t *testing.T) {
	assert.Equal(t, BuildIcosphere(4), BuildIcosphere(4))
}

func TestCheckDepth(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		ok    bool
	}{
		{"zero", 0, true},
		{"default", 5, true},
		{"max", MaxDepth, true},
		{"too deep", MaxDepth + 1, false},
		{"negative", -1, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckDepth(tc.depth)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, common.ErrConfiguration))
		})
	}
}

func TestMeshValidateRejectsBadIndex(t *testing.T) {
	m := Tetrahedron()
	m.Indices[4] = 9
	assert.Error(t, m.Validate())

	m = Tetrahedron()
	m.Points[2] = mgl32.Vec4{0.5, 0, 0, 1}
	assert.Error(t, m.Validate())

	m = Tetrahedron()
	m.Indices = m.Indices[:5]
	assert.Error(t, m.Validate())
}

func TestMeshCloneIsIndependent(t *testing.T) {
	m := BuildIcosphere(1)
	c := m.Clone()
	c.Points[0] = mgl32.Vec4{}
	c.Indices[0] = 99

	assert.Equal(t, mgl32.Vec4{0, 1, 0, 1}, m.Points[0])
	assert.NotEqual(t, uint32(99), m.Indices[0])
}

func TestSeedIsRegularTetrahedron(t *testing.T) {
	m := Tetrahedron()
	want := math32.Sqrt(8.0 / 3.0)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			d := m.Points[i].Vec3().Sub(m.Points[j].Vec3()).Len()
			assert.InDelta(t, want, d, 1e-5, "edge %d-%d", i, j)
		}
	}
}
