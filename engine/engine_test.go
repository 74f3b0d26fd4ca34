package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/camera"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/software_backend"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/scene"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow stays open for a fixed number of polls.
type fakeWindow struct {
	frames int
	polls  int
	swaps  int

	onResize func(int, int, int, int)
}

var _ window.Window = &fakeWindow{}

func (w *fakeWindow) SetUpdateCallback(func())                                        {}
func (w *fakeWindow) SetResizeCallback(cb func(int, int, int, int))                   { w.onResize = cb }
func (w *fakeWindow) SetKeyDownCallback(func(uint32))                                 {}
func (w *fakeWindow) SetKeyUpCallback(func(uint32))                                   {}
func (w *fakeWindow) SetMouseDownCallback(func(window.MouseButton, float64, float64)) {}
func (w *fakeWindow) SetMouseUpCallback(func(window.MouseButton, float64, float64))   {}
func (w *fakeWindow) SetMouseMoveCallback(func(float64, float64))                     {}
func (w *fakeWindow) PollEvents() bool {
	w.polls++
	return w.polls <= w.frames
}
func (w *fakeWindow) SwapBuffers()                { w.swaps++ }
func (w *fakeWindow) IsRunning() bool             { return w.polls < w.frames }
func (w *fakeWindow) Close() error                { return nil }
func (w *fakeWindow) ProcessMessages()            {}
func (w *fakeWindow) Width() int                  { return 32 }
func (w *fakeWindow) Height() int                 { return 32 }
func (w *fakeWindow) FramebufferSize() (int, int) { return 32, 32 }

// newTestEngine returns an engine whose clock advances by step on every read.
func newTestEngine(w window.Window, step time.Duration, options ...EngineBuilderOption) *engine {
	e := NewEngine(append([]EngineBuilderOption{WithWindow(w)}, options...)...).(*engine)
	now := time.Unix(0, 0)
	e.clock = func() time.Time {
		now = now.Add(step)
		return now
	}
	e.sleep = func(time.Duration) {}
	return e
}

func newTestScene(t *testing.T, active bool) (scene.Scene, renderer.Renderer) {
	t.Helper()
	r, err := renderer.NewRenderer(software_backend.NewSoftwareBackend(), 32, 32)
	require.NoError(t, err)
	dish, err := sphere.NewSphere(r, sphere.WithResolution(2), sphere.WithRadius(0.8))
	require.NoError(t, err)
	return scene.NewScene("test", camera.NewCamera(), r, scene.WithDish(dish), scene.WithActive(active)), r
}

func TestRunRequiresWindow(t *testing.T) {
	assert.Error(t, NewEngine().Run())
}

func TestRunStopsWhenWindowCloses(t *testing.T) {
	w := &fakeWindow{frames: 3}
	e := newTestEngine(w, time.Second/60)

	ticks, renders := 0, 0
	e.SetTickCallback(func(dt float32) {
		ticks++
		assert.InDelta(t, 1.0/60, dt, 1e-6)
		assert.True(t, e.Running())
	})
	e.SetRenderCallback(func(float32) { renders++ })

	require.NoError(t, e.Run())
	assert.Equal(t, 3, w.swaps)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 3, renders)
	assert.False(t, e.Running())
}

func TestQuitFromTickStopsAfterFrame(t *testing.T) {
	w := &fakeWindow{frames: 100}
	e := newTestEngine(w, time.Second/60)

	ticks := 0
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 2 {
			e.Quit()
		}
	})

	require.NoError(t, e.Run())
	assert.Equal(t, 2, ticks)
	assert.Equal(t, 2, w.swaps)
}

func TestStopCondition(t *testing.T) {
	w := &fakeWindow{frames: 100}
	frames := 0
	e := newTestEngine(w, time.Second/60, WithStopCondition(func() bool { return frames == 4 }))
	e.SetRenderCallback(func(float32) { frames++ })

	require.NoError(t, e.Run())
	assert.Equal(t, 4, w.swaps)
}

func TestTicksCatchUpWithinBound(t *testing.T) {
	w := &fakeWindow{frames: 2}
	e := newTestEngine(w, time.Second, WithTickRate(60))

	ticks := 0
	e.SetTickCallback(func(float32) { ticks++ })
	require.NoError(t, e.Run())
	assert.Equal(t, 2*maxTicksPerFrame, ticks)
}

func TestSetTickRate(t *testing.T) {
	e := NewEngine()
	e.SetTickRate(30)
	assert.Equal(t, time.Second/30, e.TickRate())
	e.SetTickRate(-1)
	assert.Equal(t, time.Second/60, e.TickRate())
}

func TestRunDrawsActiveScenes(t *testing.T) {
	active, ra := newTestScene(t, true)
	inactive, ri := newTestScene(t, false)
	w := &fakeWindow{frames: 1}
	e := newTestEngine(w, time.Second/60, WithScene(0, active), WithScene(1, inactive))

	require.NoError(t, e.Run())
	assert.NotEqual(t, [4]byte{}, ra.ReadPixel(16, 16))
	assert.Equal(t, [4]byte{}, ri.ReadPixel(16, 16))
	assert.Equal(t, 2, len(e.Scenes()))
	assert.Equal(t, active, e.Scene(0))
}

func TestRunStopsOnDrawError(t *testing.T) {
	s, _ := newTestScene(t, true)
	s.Dish().Dispose()
	s.Dish().SetEnabled(true)

	w := &fakeWindow{frames: 10}
	e := newTestEngine(w, time.Second/60, WithScene(0, s))
	err := e.Run()
	assert.True(t, errors.Is(err, common.ErrDisposed))
	assert.Equal(t, 0, w.swaps)
}

func TestResizeReachesScenes(t *testing.T) {
	s, r := newTestScene(t, true)
	w := &fakeWindow{}
	e := newTestEngine(w, time.Second/60, WithScene(0, s))
	require.NotNil(t, w.onResize)

	w.onResize(100, 50, 200, 100)
	width, height := r.Size()
	assert.Equal(t, 200, width)
	assert.Equal(t, 100, height)
	assert.Equal(t, float32(2), s.Camera().Aspect())

	e.RemoveScene(0)
	assert.Nil(t, e.Scene(0))
}
