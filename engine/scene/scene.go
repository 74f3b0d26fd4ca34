package scene

import (
	"fmt"
	"slices"
	"sync"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/camera"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/light"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/picking"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
)

// Scene owns everything drawn in one frame: the camera and its arcball controller, the point
// light, the renderer, an optional dish drawn with id 0 and the pickable spheres keyed by id.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access, although every call that touches the renderer must come
// from the thread that owns the graphics context.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the arcball controller bound to the camera.
	Controller() camera.ArcballController

	// Light returns the scene's point light.
	Light() light.Light

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Dish returns the sphere drawn behind every pickable object, or nil.
	Dish() sphere.Sphere

	// SetDish replaces the dish. The dish is forced to id picking.NoHit so a pick on it misses.
	// A previous dish is disposed.
	//
	// Parameters:
	//   - d: the new dish, or nil to remove it
	SetDish(d sphere.Sphere)

	// Add registers a sphere under its id.
	//
	// Parameters:
	//   - s: the sphere to add
	//
	// Returns:
	//   - error: a wrapped common.ErrConfiguration if the id is picking.NoHit or already taken
	Add(s sphere.Sphere) error

	// Get returns the sphere registered under id.
	//
	// Parameters:
	//   - id: the id to look up
	//
	// Returns:
	//   - sphere.Sphere: the sphere, or nil if absent
	Get(id uint32) sphere.Sphere

	// Remove unregisters and disposes the sphere under id.
	//
	// Parameters:
	//   - id: the id to remove
	//
	// Returns:
	//   - bool: false if no sphere was registered under id
	Remove(id uint32) bool

	// Count returns the number of registered spheres, excluding the dish.
	Count() int

	// IDs returns the registered ids in ascending order.
	IDs() []uint32

	// Draw draws the dish followed by every enabled sphere in id order into the current frame.
	// It does not clear; the frame is started with Renderer().BeginFrame().
	//
	// Returns:
	//   - error: the first draw failure
	Draw() error

	// Pick renders the id image and decodes the pixel under a window position. The visible
	// frame is overwritten, so callers draw again before presenting.
	//
	// Parameters:
	//   - windowX, windowY: pointer position in window coordinates, origin at the top-left
	//
	// Returns:
	//   - uint32: the id under the pointer, picking.NoHit on a miss
	//   - bool: true on a hit
	//   - error: the first draw failure
	Pick(windowX, windowY float64) (uint32, bool, error)

	// Resize propagates new window and framebuffer sizes to the renderer, the camera aspect and
	// the arcball. The two differ on high-DPI displays.
	//
	// Parameters:
	//   - windowWidth, windowHeight: window size in screen coordinates
	//   - framebufferWidth, framebufferHeight: framebuffer size in pixels
	Resize(windowWidth, windowHeight, framebufferWidth, framebufferHeight int)

	// Clear disposes and unregisters every sphere except the dish.
	Clear()

	// Release disposes every sphere including the dish.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam        camera.Camera
	controller camera.ArcballController
	lamp       light.Light
	r          renderer.Renderer

	dish     sphere.Sphere
	registry map[uint32]sphere.Sphere

	windowWidth  int
	windowHeight int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene around a camera and a renderer. Both are required and NewScene
// panics if either is nil. The window size defaults to the renderer's framebuffer size.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	w, h := r.Size()
	s := &scene{
		mu:           &sync.RWMutex{},
		name:         name,
		cam:          cam,
		r:            r,
		registry:     make(map[uint32]sphere.Sphere),
		windowWidth:  w,
		windowHeight: h,
	}
	for _, option := range options {
		option(s)
	}

	if s.lamp == nil {
		s.lamp = light.NewLight()
	}
	if s.controller == nil {
		s.controller = camera.NewArcballController(cam, camera.WithViewport(s.windowWidth, s.windowHeight))
	}
	if s.dish != nil {
		s.dish.SetID(picking.NoHit)
	}
	s.cam.SetAspect(float32(w) / float32(h))
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Controller() camera.ArcballController {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller
}

func (s *scene) Light() light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lamp
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Dish() sphere.Sphere {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dish
}

func (s *scene) SetDish(d sphere.Sphere) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dish != nil && s.dish != d {
		s.dish.Dispose()
	}
	if d != nil {
		d.SetID(picking.NoHit)
	}
	s.dish = d
}

func (s *scene) Add(sp sphere.Sphere) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := sp.ID()
	if id == picking.NoHit {
		return fmt.Errorf("%w: sphere id %d is reserved for the dish", common.ErrConfiguration, id)
	}
	if _, exists := s.registry[id]; exists {
		return fmt.Errorf("%w: sphere id %d already in the scene", common.ErrConfiguration, id)
	}
	s.registry[id] = sp
	return nil
}

func (s *scene) Get(id uint32) sphere.Sphere {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, exists := s.registry[id]
	if !exists {
		return false
	}
	delete(s.registry, id)
	sp.Dispose()
	return true
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) IDs() []uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedIDs()
}

// sortedIDs returns the registered ids in ascending order. Caller must hold s.mu.
func (s *scene) sortedIDs() []uint32 {
	ids := make([]uint32, 0, len(s.registry))
	for id := range s.registry {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// drawList returns the dish followed by the spheres in id order. Caller must hold s.mu.
func (s *scene) drawList() []picking.Pickable {
	list := make([]picking.Pickable, 0, len(s.registry)+1)
	if s.dish != nil {
		list = append(list, s.dish)
	}
	for _, id := range s.sortedIDs() {
		list = append(list, s.registry[id])
	}
	return list
}

// applyFrameUniforms writes the camera and light state shared by every draw. Caller must hold s.mu.
func (s *scene) applyFrameUniforms() {
	s.r.SetView(s.cam.ViewMatrix())
	s.r.SetProjection(s.cam.ProjectionMatrix())
	s.lamp.Apply(s.r)
}

func (s *scene) Draw() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.applyFrameUniforms()
	for _, obj := range s.drawList() {
		if !obj.Enabled() {
			continue
		}
		if err := obj.Draw(); err != nil {
			return fmt.Errorf("draw object %d: %w", obj.ID(), err)
		}
	}
	return nil
}

func (s *scene) Pick(windowX, windowY float64) (uint32, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fbWidth, fbHeight := s.r.Size()
	x := int(windowX * float64(fbWidth) / float64(max(s.windowWidth, 1)))
	y := fbHeight - 1 - int(windowY*float64(fbHeight)/float64(max(s.windowHeight, 1)))

	s.applyFrameUniforms()
	return picking.Pick(s.r, s.drawList(), x, y)
}

func (s *scene) Resize(windowWidth, windowHeight, framebufferWidth, framebufferHeight int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.windowWidth, s.windowHeight = max(windowWidth, 1), max(windowHeight, 1)
	s.r.Resize(framebufferWidth, framebufferHeight)
	w, h := s.r.Size()
	s.cam.SetAspect(float32(w) / float32(h))
	s.controller.SetViewport(s.windowWidth, s.windowHeight)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sp := range s.registry {
		sp.Dispose()
		delete(s.registry, id)
	}
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sp := range s.registry {
		sp.Dispose()
		delete(s.registry, id)
	}
	if s.dish != nil {
		s.dish.Dispose()
		s.dish = nil
	}
}
