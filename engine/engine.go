package engine

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/profiler"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/scene"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/window"
)

// maxTicksPerFrame bounds how many fixed ticks one frame may run to catch up after a stall.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Runs the whole frame on the calling thread, which owns the graphics context.
type engine struct {
	running bool
	quit    bool

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)
	stopCondition  func() bool

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	// clock returns the current time; replaced in tests.
	clock func() time.Time
	// sleep waits between frames when a frame limit is set; replaced in tests.
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It orchestrates the single-threaded frame loop and window management.
//
// Each frame: poll window events (pointer callbacks, including picks, run here), run the tick
// callback zero or more times at the fixed tick rate, draw every active scene, run the render
// callback, swap buffers and tick the profiler.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the fixed duration of one tick.
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic and simulation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame after the scenes draw
	// and before the buffer swap.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetStopCondition registers a predicate checked after every frame. Run returns once it
	// reports true.
	//
	// Parameters:
	//   - condition: the predicate, or nil to disable
	SetStopCondition(condition func() bool)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Active scenes are drawn in ascending key order into one frame.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run runs the frame loop on the calling thread until the window closes, Quit is called or
	// the stop condition holds.
	//
	// Returns:
	//   - error: the first scene draw failure, which also stops the loop
	Run() error

	// Running reports whether Run is executing.
	Running() bool

	// Quit stops the loop at the end of the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		scenes:           make(map[int]scene.Scene),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		clock:            time.Now,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.profiler = profiler.NewProfiler(profiler.WithObjectCounter(e.liveObjects))

	if e.window != nil {
		e.window.SetResizeCallback(func(windowWidth, windowHeight, framebufferWidth, framebufferHeight int) {
			for _, s := range e.scenes {
				s.Resize(windowWidth, windowHeight, framebufferWidth, framebufferHeight)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

// liveObjects counts registered spheres across every scene, for the profiler.
func (e *engine) liveObjects() int {
	n := 0
	for _, s := range e.scenes {
		n += s.Count()
	}
	return n
}

func (e *engine) Run() error {
	if e.window == nil {
		return fmt.Errorf("engine: Run requires a window")
	}

	e.running = true
	e.quit = false
	defer func() { e.running = false }()

	last := e.clock()
	var accumulator time.Duration

	for !e.quit {
		frameStart := e.clock()
		if !e.window.PollEvents() || e.quit {
			break
		}

		elapsed := frameStart.Sub(last)
		last = frameStart
		accumulator += elapsed
		if limit := e.engineTickRate * maxTicksPerFrame; accumulator > limit {
			accumulator = limit
		}
		for accumulator >= e.engineTickRate {
			accumulator -= e.engineTickRate
			if e.tickCallback != nil {
				e.tickCallback(float32(e.engineTickRate.Seconds()))
			}
		}

		if err := e.drawScenes(); err != nil {
			log.Printf("[Engine] stopping: %v", err)
			return err
		}

		if e.renderCallback != nil {
			e.renderCallback(float32(elapsed.Seconds()))
		}

		e.window.SwapBuffers()

		if e.profilingEnabled {
			e.profiler.Tick()
		}

		if e.stopCondition != nil && e.stopCondition() {
			break
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.clock().Sub(frameStart); remaining > 0 {
				e.sleep(remaining)
			}
		}
	}
	return nil
}

// drawScenes clears once through the first active scene's renderer and draws every active
// scene in ascending z-index order.
func (e *engine) drawScenes() error {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	cleared := false
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		if !cleared {
			s.Renderer().BeginFrame()
			cleared = true
		}
		if err := s.Draw(); err != nil {
			return fmt.Errorf("scene %q: %w", s.Name(), err)
		}
	}
	return nil
}

func (e *engine) Running() bool {
	return e.running
}

func (e *engine) Quit() {
	e.quit = true
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// A running loop picks the new rate up on its next frame.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

func (e *engine) TickRate() time.Duration {
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetStopCondition(condition func() bool) {
	e.stopCondition = condition
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
