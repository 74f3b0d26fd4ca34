package game

import (
	"errors"
	"testing"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testConfig is a seeded config without random spawns or absorption.
func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.DishDepth = 2
	cfg.BacteriumDepth = 2
	cfg.SpawnChance = 0
	cfg.ConsumePull = 0
	cfg.ConsumeShrink = 1e-6
	return cfg
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	s, err := NewSession(cfg)
	require.NoError(t, err)
	return s
}

// plant places a bacterium through the registry like a spawn would.
func plant(t *testing.T, s *Session, center mgl32.Vec3, radius float32) uint32 {
	t.Helper()
	id, err := s.registry.Acquire()
	require.NoError(t, err)
	require.NoError(t, s.colony.Add(id, center, radius))
	return id
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Lives = -1
	_, err := NewSession(cfg)
	assert.True(t, errors.Is(err, common.ErrConfiguration))
}

func TestNewSession(t *testing.T) {
	s := newTestSession(t, testConfig())
	assert.Equal(t, Running, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 2, s.Lives())
	assert.Equal(t, 15, s.Registry().Capacity())
	assert.Equal(t, 15, s.Registry().Available())

	for id := uint32(3); id < 18; id++ {
		colors, ok := s.Palette(id)
		require.True(t, ok, "id %d", id)
		assert.Equal(t, float32(0.8), colors.Start[3])
		assert.Equal(t, float32(0.8), colors.Stop[3])
	}
	_, ok := s.Palette(2)
	assert.False(t, ok)
}

func TestTickSpawnsUpToCap(t *testing.T) {
	cfg := testConfig()
	cfg.SpawnChance = 1
	cfg.GrowthIncrement = 0
	s := newTestSession(t, cfg)

	seen := map[uint32]bool{}
	for i := 0; i < cfg.MaxBacteria; i++ {
		res := s.Tick()
		require.NotZero(t, res.Spawned, "tick %d", i)
		assert.GreaterOrEqual(t, res.Spawned, cfg.FirstID)
		assert.Less(t, res.Spawned, cfg.FirstID+uint32(cfg.MaxBacteria))
		assert.False(t, seen[res.Spawned])
		seen[res.Spawned] = true

		b, ok := s.Colony().Get(res.Spawned)
		require.True(t, ok)
		assert.InDelta(t, 1, b.Center.Len(), 1e-5)
		assert.Equal(t, cfg.InitialRadius, b.Radius)
	}
	assert.Equal(t, 0, s.Registry().Available())

	assert.Zero(t, s.Tick().Spawned, "live cap reached")
}

func TestTickIsDeterministicForSeed(t *testing.T) {
	cfg := testConfig()
	cfg.SpawnChance = 0.5
	a := newTestSession(t, cfg)
	b := newTestSession(t, cfg)

	for i := 0; i < 40; i++ {
		assert.Equal(t, a.Tick(), b.Tick(), "tick %d", i)
	}
	assert.Equal(t, a.Colony().IDs(), b.Colony().IDs())
	for _, id := range a.Colony().IDs() {
		ca, _ := a.Palette(id)
		cb, _ := b.Palette(id)
		assert.Equal(t, ca, cb)
	}
}

func TestKill(t *testing.T) {
	cfg := testConfig()
	cfg.WinScore = 2
	s := newTestSession(t, cfg)
	a := plant(t, s, mgl32.Vec3{0, 0, 1}, 0.07)
	b := plant(t, s, mgl32.Vec3{0, 0, -1}, 0.07)

	assert.False(t, s.Kill(2), "unknown id")
	assert.True(t, s.Kill(a))
	assert.False(t, s.Kill(a), "already dead")
	assert.Equal(t, 1, s.Score())
	assert.False(t, s.Registry().Held(a))
	assert.Equal(t, Running, s.State())

	assert.True(t, s.Kill(b))
	assert.Equal(t, Won, s.State())
	assert.True(t, s.State().Over())
	assert.Equal(t, TickResult{}, s.Tick(), "a finished session does not tick")
}

func TestOvergrowthCostsLives(t *testing.T) {
	cfg := testConfig()
	cfg.SpawnChance = 1
	cfg.InitialRadius = 0.0995
	cfg.MaxRadius = 0.1
	cfg.GrowthIncrement = 0.001
	s := newTestSession(t, cfg)

	res := s.Tick()
	require.NotZero(t, res.Spawned)
	assert.Equal(t, []uint32{res.Spawned}, res.Overgrown)
	assert.Equal(t, 1, s.Lives())
	assert.False(t, res.Ended)
	assert.False(t, s.Registry().Held(res.Spawned), "the id returns to the pool")

	res = s.Tick()
	assert.Len(t, res.Overgrown, 1)
	assert.True(t, res.Ended)
	assert.Equal(t, 0, s.Lives())
	assert.Equal(t, Lost, s.State())
}

func TestPause(t *testing.T) {
	cfg := testConfig()
	cfg.SpawnChance = 1
	s := newTestSession(t, cfg)
	id := plant(t, s, mgl32.Vec3{0, 1, 0}, 0.07)

	s.SetPaused(true)
	assert.Equal(t, Paused, s.State())
	assert.Equal(t, TickResult{}, s.Tick())
	assert.False(t, s.Kill(id))

	s.SetPaused(false)
	assert.Equal(t, Running, s.State())
	assert.True(t, s.Kill(id))
}

func TestReset(t *testing.T) {
	cfg := testConfig()
	cfg.WinScore = 1
	s := newTestSession(t, cfg)
	before, _ := s.Palette(3)
	s.Kill(plant(t, s, mgl32.Vec3{1, 0, 0}, 0.07))
	plant(t, s, mgl32.Vec3{-1, 0, 0}, 0.07)
	require.Equal(t, Won, s.State())

	require.NoError(t, s.Reset())
	assert.Equal(t, Running, s.State())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, cfg.Lives, s.Lives())
	assert.Equal(t, 0, s.Colony().Len())
	assert.Equal(t, cfg.MaxBacteria, s.Registry().Available())
	after, _ := s.Palette(3)
	assert.NotEqual(t, before, after, "a new session gets a new palette")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "paused", Paused.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.False(t, Paused.Over())
}
