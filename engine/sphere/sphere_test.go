package sphere

import (
	"errors"
	"testing"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/buffer_provider"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/software_backend"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, size int) renderer.Renderer {
	t.Helper()
	r, err := renderer.NewRenderer(software_backend.NewSoftwareBackend(), size, size)
	require.NoError(t, err)
	r.SetView(mgl32.Ident4())
	r.SetProjection(mgl32.Ident4())
	return r
}

func TestNewSphereDefaults(t *testing.T) {
	r := newRenderer(t, 8)
	s, err := NewSphere(r, WithResolution(2))
	require.NoError(t, err)

	assert.Equal(t, uint32(0), s.ID())
	assert.True(t, s.Enabled())
	assert.False(t, s.Dirty())
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, float32(1), s.Radius())
	assert.Equal(t, Lighting{Ambient: 0.3, Diffuse: 0.5, Specular: 0.5}, s.Lighting())

	start, stop := s.Colors()
	assert.Equal(t, DefaultColorStart, start)
	assert.Equal(t, DefaultColorStop, stop)

	assert.Equal(t, 4, r.LiveBuffers())
	impl := s.(*sphere)
	assert.Equal(t, len(s.Geometry().Mesh.Indices), impl.buffers.IndexCount())
	assert.Equal(t, 4*16*3, impl.buffers.IndexCount())
}

func TestNewSphereRejectsDepth(t *testing.T) {
	r := newRenderer(t, 8)
	_, err := NewSphere(r, WithResolution(mesh.MaxDepth+1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	assert.Equal(t, 0, r.LiveBuffers())
}

func TestNewSphereRejectsBrokenGeometry(t *testing.T) {
	r := newRenderer(t, 8)
	g, err := mesh.Build(mesh.Request{Depth: 1})
	require.NoError(t, err)
	g.Attributes.Colors = g.Attributes.Colors[:1]

	_, err = NewSphere(r, WithGeometry(g))
	assert.True(t, errors.Is(err, common.ErrConfiguration))
	assert.Equal(t, 0, r.LiveBuffers())
}

func TestWithGeometryClonesPrebuiltMesh(t *testing.T) {
	r := newRenderer(t, 8)
	red := mgl32.Vec4{1, 0, 0, 1}
	g, err := mesh.Build(mesh.Request{Depth: 1, ColorStart: red, ColorStop: red})
	require.NoError(t, err)

	s, err := NewSphere(r, WithGeometry(g), WithID(7))
	require.NoError(t, err)

	assert.Equal(t, 1, s.Depth())
	start, _ := s.Colors()
	assert.Equal(t, red, start)
	assert.Equal(t, uint32(7), s.ID())

	g.Mesh.Points[0] = mgl32.Vec4{}
	assert.NotEqual(t, mgl32.Vec4{}, s.Geometry().Mesh.Points[0])
}

func TestTransformStateMachine(t *testing.T) {
	r := newRenderer(t, 8)
	s, err := NewSphere(r, WithResolution(0), WithCenter(mgl32.Vec3{0.5, 0, 0}), WithRadius(0.07))
	require.NoError(t, err)
	assert.False(t, s.Dirty())

	s.SetRadius(0.1)
	assert.True(t, s.Dirty())

	want := common.ComposeModel(mgl32.Vec3{0.5, 0, 0}, mgl32.Vec3{0.1, 0.1, 0.1}, mgl32.Ident4())
	assert.Equal(t, want, s.ModelMatrix())
	assert.False(t, s.Dirty())

	rot := mgl32.HomogRotate3DY(0.3)
	s.SetTransform(TransformUpdate{Rotation: &rot})
	assert.True(t, s.Dirty())
	assert.Equal(t, mgl32.Vec3{0.5, 0, 0}, s.Translation())
	assert.Equal(t, rot, s.Rotation())
}

func TestRepeatedEditsDoNotDrift(t *testing.T) {
	r := newRenderer(t, 8)
	s, err := NewSphere(r, WithResolution(0), WithCenter(mgl32.Vec3{0.2, 0.3, 0.4}))
	require.NoError(t, err)

	radius := float32(0.07)
	for i := 0; i < 1000; i++ {
		radius += 0.0001
		s.SetRadius(radius)
		s.ModelMatrix()
	}

	fresh, err := NewSphere(r, WithResolution(0), WithCenter(mgl32.Vec3{0.2, 0.3, 0.4}), WithRadius(radius))
	require.NoError(t, err)
	assert.Equal(t, fresh.ModelMatrix(), s.ModelMatrix())
}

func TestSpheresNeverShareBuffers(t *testing.T) {
	r := newRenderer(t, 8)
	a, err := NewSphere(r, WithResolution(1))
	require.NoError(t, err)
	b, err := NewSphere(r, WithResolution(1))
	require.NoError(t, err)
	assert.Equal(t, 8, r.LiveBuffers())

	for _, kind := range []buffer_provider.BufferKind{
		buffer_provider.BufferPoints, buffer_provider.BufferColors,
		buffer_provider.BufferNormals, buffer_provider.BufferIndices,
	} {
		ha, _ := a.(*sphere).buffers.Buffer(kind)
		hb, _ := b.(*sphere).buffers.Buffer(kind)
		assert.NotEqual(t, ha, hb, kind.String())
	}
}

func TestDisposeReleasesBuffers(t *testing.T) {
	r := newRenderer(t, 8)
	keep, err := NewSphere(r, WithResolution(1))
	require.NoError(t, err)
	s, err := NewSphere(r, WithResolution(1))
	require.NoError(t, err)

	s.Dispose()
	assert.True(t, s.Disposed())
	assert.False(t, s.Enabled())
	assert.Equal(t, 4, r.LiveBuffers())

	s.Dispose()
	assert.Equal(t, 4, r.LiveBuffers())

	assert.True(t, errors.Is(s.Draw(), common.ErrDisposed))
	assert.True(t, errors.Is(s.SetColors(mgl32.Vec4{}, mgl32.Vec4{}), common.ErrDisposed))
	assert.NoError(t, keep.Draw())
}

func TestSetColorsRebuildsAttributes(t *testing.T) {
	r := newRenderer(t, 8)
	s, err := NewSphere(r, WithResolution(1))
	require.NoError(t, err)
	normals := append([]mgl32.Vec3(nil), s.Geometry().Attributes.Normals...)

	green := mgl32.Vec4{0, 1, 0, 1}
	require.NoError(t, s.SetColors(green, green))

	for i, c := range s.Geometry().Attributes.Colors {
		assert.InDelta(t, 1, c[1], 1e-6, "color %d", i)
	}
	assert.Equal(t, normals, s.Geometry().Attributes.Normals)
	assert.Equal(t, green, s.Geometry().Request.ColorStart)
}

func TestDrawCoversCenterOnly(t *testing.T) {
	r := newRenderer(t, 16)
	s, err := NewSphere(r, WithResolution(3), WithRadius(0.5))
	require.NoError(t, err)

	r.SetSingleColor(true, mgl32.Vec4{1, 0, 0, 1})
	r.BeginFrame()
	require.NoError(t, s.Draw())

	assert.Equal(t, [4]byte{255, 0, 0, 255}, r.ReadPixel(8, 8))
	assert.Equal(t, [4]byte{0, 0, 0, 0}, r.ReadPixel(0, 0))
	assert.Equal(t, [4]byte{0, 0, 0, 0}, r.ReadPixel(15, 15))
}
