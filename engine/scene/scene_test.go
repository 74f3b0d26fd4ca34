package scene

import (
	"errors"
	"testing"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/camera"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/picking"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/software_backend"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T, w, h int) renderer.Renderer {
	t.Helper()
	r, err := renderer.NewRenderer(software_backend.NewSoftwareBackend(), w, h)
	require.NoError(t, err)
	return r
}

func newSphere(t *testing.T, r renderer.Renderer, id uint32, center mgl32.Vec3, radius float32) sphere.Sphere {
	t.Helper()
	s, err := sphere.NewSphere(r, sphere.WithID(id), sphere.WithResolution(3), sphere.WithCenter(center), sphere.WithRadius(radius))
	require.NoError(t, err)
	return s
}

// newDishScene builds a 64x64 framebuffer behind a 128x128 window, as on a 2x display.
func newDishScene(t *testing.T) (Scene, renderer.Renderer) {
	t.Helper()
	r := newTestRenderer(t, 64, 64)
	dish, err := sphere.NewSphere(r, sphere.WithID(99), sphere.WithResolution(3), sphere.WithRadius(0.8))
	require.NoError(t, err)
	return NewScene("dish", camera.NewCamera(), r, WithDish(dish), WithWindowSize(128, 128)), r
}

func TestNewScenePanicsWithoutDependencies(t *testing.T) {
	r := newTestRenderer(t, 8, 8)
	assert.Panics(t, func() { NewScene("x", nil, r) })
	assert.Panics(t, func() { NewScene("x", camera.NewCamera(), nil) })
}

func TestNewSceneDefaults(t *testing.T) {
	s, _ := newDishScene(t)
	assert.Equal(t, "dish", s.Name())
	assert.False(t, s.Active())
	assert.NotNil(t, s.Light())
	assert.NotNil(t, s.Controller())
	assert.Equal(t, picking.NoHit, s.Dish().ID(), "dish is forced to the no-hit id")
	assert.Equal(t, float32(1), s.Camera().Aspect())
	assert.Equal(t, float32(59), s.Controller().ArcballRadius())
}

func TestAddGetRemove(t *testing.T) {
	s, r := newDishScene(t)
	a := newSphere(t, r, 3, mgl32.Vec3{0, 0, 0.8}, 0.1)
	b := newSphere(t, r, 7, mgl32.Vec3{0.8, 0, 0}, 0.1)

	require.NoError(t, s.Add(b))
	require.NoError(t, s.Add(a))
	assert.Equal(t, []uint32{3, 7}, s.IDs())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, a, s.Get(3))
	assert.Nil(t, s.Get(4))

	dup := newSphere(t, r, 3, mgl32.Vec3{}, 0.1)
	assert.True(t, errors.Is(s.Add(dup), common.ErrConfiguration))
	zero := newSphere(t, r, 0, mgl32.Vec3{}, 0.1)
	assert.True(t, errors.Is(s.Add(zero), common.ErrConfiguration))

	assert.True(t, s.Remove(3))
	assert.True(t, a.Disposed())
	assert.False(t, s.Remove(3))
	assert.Equal(t, []uint32{7}, s.IDs())
}

func TestSetDishDisposesPrevious(t *testing.T) {
	s, r := newDishScene(t)
	old := s.Dish()
	next := newSphere(t, r, 12, mgl32.Vec3{}, 0.5)

	s.SetDish(next)
	assert.True(t, old.Disposed())
	assert.Equal(t, picking.NoHit, next.ID())
	assert.Equal(t, next, s.Dish())
}

func TestDrawRendersDishOverClearColor(t *testing.T) {
	s, r := newDishScene(t)
	r.BeginFrame()
	require.NoError(t, s.Draw())

	center := r.ReadPixel(32, 32)
	assert.NotEqual(t, [4]byte{}, center)
	assert.Equal(t, byte(255), center[3], "dish alpha")
	assert.Equal(t, [4]byte{}, r.ReadPixel(0, 0))
}

func TestPickConvertsWindowCoordinates(t *testing.T) {
	s, r := newDishScene(t)
	require.NoError(t, s.Add(newSphere(t, r, 3, mgl32.Vec3{0, 0, 0.8}, 0.15)))
	require.NoError(t, s.Add(newSphere(t, r, 9, mgl32.Vec3{0, 0.5, 0.62}, 0.1)))

	tests := []struct {
		name   string
		x, y   float64
		wantID uint32
		hit    bool
	}{
		{"center bacterium", 64, 64, 3, true},
		{"upper bacterium", 64, 38.5, 9, true},
		{"dish below, mirror of upper", 64, 89.5, picking.NoHit, false},
		{"background", 2, 2, picking.NoHit, false},
		{"outside window", 500, 500, picking.NoHit, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, hit, err := s.Pick(tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.hit, hit)
		})
	}

	enabled, _ := r.SingleColor()
	assert.False(t, enabled)
}

func TestPickIgnoresDisabledSpheres(t *testing.T) {
	s, r := newDishScene(t)
	a := newSphere(t, r, 3, mgl32.Vec3{0, 0, 0.8}, 0.15)
	require.NoError(t, s.Add(a))

	a.SetEnabled(false)
	_, hit, err := s.Pick(64, 64)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestResize(t *testing.T) {
	s, r := newDishScene(t)
	s.Resize(200, 100, 400, 200)

	w, h := r.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
	assert.Equal(t, float32(2), s.Camera().Aspect())
	assert.Equal(t, float32(45), s.Controller().ArcballRadius())
}

func TestClearKeepsDishReleaseDropsAll(t *testing.T) {
	s, r := newDishScene(t)
	a := newSphere(t, r, 3, mgl32.Vec3{0, 0, 0.8}, 0.1)
	require.NoError(t, s.Add(a))
	assert.Equal(t, 8, r.LiveBuffers())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.True(t, a.Disposed())
	assert.NotNil(t, s.Dish())
	assert.Equal(t, 4, r.LiveBuffers())

	s.Release()
	assert.Nil(t, s.Dish())
	assert.Equal(t, 0, r.LiveBuffers())
}
