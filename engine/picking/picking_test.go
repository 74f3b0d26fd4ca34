package picking

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/software_backend"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorRoundTripAllIDs(t *testing.T) {
	for id := uint32(0); id < IDLimit; id++ {
		px := common.ColorToBytes(IDToColor(id))
		if got := ColorToID(px); got != id {
			t.Fatalf("id %d decoded as %d", id, got)
		}
	}
}

func TestColorEncoding(t *testing.T) {
	tests := []struct {
		name string
		id   uint32
		want [4]byte
	}{
		{"no hit", NoHit, [4]byte{0, 0, 0, 255}},
		{"low byte", 3, [4]byte{3, 0, 0, 255}},
		{"all channels", 0x0a0b0c, [4]byte{0x0c, 0x0b, 0x0a, 255}},
		{"max", MaxID, [4]byte{255, 255, 255, 255}},
		{"too large", IDLimit, [4]byte{0, 0, 0, 255}},
		{"far too large", 1 << 30, [4]byte{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, common.ColorToBytes(IDToColor(tt.id)))
		})
	}
	assert.Equal(t, uint32(5), ColorToID([4]byte{5, 0, 0, 0}), "alpha is ignored")
}

func TestNewRegistryRejectsRanges(t *testing.T) {
	tests := []struct {
		name         string
		first, count uint32
	}{
		{"touches no hit", 0, 15},
		{"empty", 3, 0},
		{"past limit", IDLimit - 2, 3},
		{"starts at limit", IDLimit, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.first, tt.count)
			assert.True(t, errors.Is(err, common.ErrConfiguration))
		})
	}

	r, err := NewRegistry(IDLimit-1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Capacity())
}

func TestRegistryExhaustionAndRelease(t *testing.T) {
	r, err := NewRegistry(3, 15, WithRand(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	assert.Equal(t, 15, r.Capacity())

	seen := map[uint32]bool{}
	for i := 0; i < 15; i++ {
		id, err := r.Acquire()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, id, uint32(3))
		assert.Less(t, id, uint32(18))
		assert.False(t, seen[id], "id %d handed out twice", id)
		assert.True(t, r.Held(id))
		seen[id] = true
	}
	assert.Equal(t, 0, r.Available())

	_, err = r.Acquire()
	assert.True(t, errors.Is(err, common.ErrPoolExhausted))

	assert.True(t, r.Release(9))
	assert.False(t, r.Release(9))
	assert.False(t, r.Release(NoHit))
	assert.False(t, r.Held(9))

	id, err := r.Acquire()
	require.NoError(t, err)
	assert.Equal(t, uint32(9), id)
}

func TestRegistryIsSeedable(t *testing.T) {
	draw := func() []uint32 {
		r, err := NewRegistry(3, 15, WithRand(rand.New(rand.NewPCG(42, 0))))
		require.NoError(t, err)
		var ids []uint32
		for i := 0; i < 15; i++ {
			id, _ := r.Acquire()
			ids = append(ids, id)
		}
		return ids
	}
	assert.Equal(t, draw(), draw())
}

func newScene(t *testing.T) renderer.Renderer {
	t.Helper()
	r, err := renderer.NewRenderer(software_backend.NewSoftwareBackend(), 32, 32)
	require.NoError(t, err)
	r.SetView(mgl32.Ident4())
	r.SetProjection(mgl32.Ident4())
	return r
}

func TestPickEndToEnd(t *testing.T) {
	r := newScene(t)
	a, err := sphere.NewSphere(r, sphere.WithID(3), sphere.WithResolution(3), sphere.WithRadius(0.3), sphere.WithCenter(mgl32.Vec3{-0.5, 0, 0}))
	require.NoError(t, err)
	b, err := sphere.NewSphere(r, sphere.WithID(7), sphere.WithResolution(3), sphere.WithRadius(0.3), sphere.WithCenter(mgl32.Vec3{0.5, 0, 0}))
	require.NoError(t, err)
	objects := []Pickable{a, b}

	visible := mgl32.Vec4{0.1, 0.2, 0.3, 0}
	r.SetClearColor(visible)

	// Column 8 maps to x = -0.47, column 24 to x = 0.53.
	id, hit, err := Pick(r, objects, 8, 16)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, uint32(3), id)

	id, hit, err = Pick(r, objects, 24, 16)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, uint32(7), id)

	id, hit, err = Pick(r, objects, 16, 30)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, NoHit, id)

	enabled, _ := r.SingleColor()
	assert.False(t, enabled)
	assert.Equal(t, visible, r.ClearColor())
}

func TestPickFrontmostWinsAndDishNeverHits(t *testing.T) {
	r := newScene(t)
	dish, err := sphere.NewSphere(r, sphere.WithResolution(3), sphere.WithRadius(0.5))
	require.NoError(t, err)
	// With an identity projection smaller z is nearer, so the bacterium in front sits at -z.
	front, err := sphere.NewSphere(r, sphere.WithID(5), sphere.WithResolution(2), sphere.WithRadius(0.2), sphere.WithCenter(mgl32.Vec3{0, 0, -0.5}))
	require.NoError(t, err)

	for _, order := range [][]Pickable{{dish, front}, {front, dish}} {
		id, hit, err := Pick(r, order, 16, 16)
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, uint32(5), id)
	}

	// Row 10 lies on the dish but off the bacterium.
	id, hit, err := Pick(r, []Pickable{dish, front}, 16, 10)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, NoHit, id)

	front.SetEnabled(false)
	_, hit, err = Pick(r, []Pickable{dish, front}, 16, 16)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestPickRestoresStateOnDrawError(t *testing.T) {
	r := newScene(t)
	s, err := sphere.NewSphere(r, sphere.WithID(4), sphere.WithResolution(1))
	require.NoError(t, err)
	s.Dispose()
	s.SetEnabled(true)

	_, _, err = Pick(r, []Pickable{s}, 0, 0)
	assert.True(t, errors.Is(err, common.ErrDisposed))
	enabled, _ := r.SingleColor()
	assert.False(t, enabled)
	assert.Equal(t, mgl32.Vec4{}, r.ClearColor())
}
