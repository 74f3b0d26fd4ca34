package game

import (
	"fmt"
	"log"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/audio"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/scene"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// bacteriumSpecular keeps bacteria matte next to the glossy dish.
const bacteriumSpecular = 0.02

// Game mirrors a Session into a scene: one sphere per bacterium on top of the dish, picking on
// left click, arcball rotation on right drag and sound on kills and penalties.
// Every method must be called from the thread that owns the graphics context.
type Game interface {
	// Session returns the simulation state.
	Session() *Session

	// Scene returns the scene the game draws into.
	Scene() scene.Scene

	// Tick advances the session one step and syncs the scene. It matches the engine tick
	// callback signature.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick, unused by the fixed-step simulation
	Tick(deltaTime float32)

	// Step is Tick with the error surfaced.
	//
	// Returns:
	//   - error: the first sphere creation failure
	Step() error

	// Click picks at a window position and kills the bacterium under it.
	//
	// Parameters:
	//   - x, y: pointer position in window coordinates, origin at the top-left
	//
	// Returns:
	//   - uint32: the killed id, or 0
	//   - error: a draw failure during the pick
	Click(x, y float64) (uint32, error)

	// Restart resets the session and removes every bacterium.
	//
	// Returns:
	//   - error: a geometry build failure for the new palette
	Restart() error

	// Finished reports whether the session ended and the end screen has lingered long enough for
	// the frame loop to stop.
	Finished() bool

	// Bind routes window input to the game.
	//
	// Parameters:
	//   - w: the window
	Bind(w window.Window)

	HandleKeyDown(key uint32)
	HandleMouseDown(button window.MouseButton, x, y float64)
	HandleMouseUp(button window.MouseButton, x, y float64)
	HandleMouseMove(x, y float64)

	// Close releases every sphere and the audio player.
	Close() error
}

type game struct {
	cfg     Config
	session *Session
	scn     scene.Scene
	player  audio.Player
	builder *mesh.Builder

	// geometries holds the prebuilt mesh of every id for the current palette.
	geometries map[uint32]mesh.Geometry

	lingerTicks int
	ended       int
}

var _ Game = &game{}

// NewGame starts a session and prepares its geometry. Every bacterium mesh of the palette and the
// dish mesh are built up front on the builder's worker pool.
//
// Parameters:
//   - scn: the scene to draw into; its dish is replaced
//   - options: variadic list of GameBuilderOption functions to configure the Game
//
// Returns:
//   - Game: the game
//   - error: a wrapped common.ErrConfiguration for invalid tuning, or a geometry/upload failure
func NewGame(scn scene.Scene, options ...GameBuilderOption) (Game, error) {
	if scn == nil {
		return nil, fmt.Errorf("%w: game needs a scene", common.ErrConfiguration)
	}
	g := &game{
		cfg:         DefaultConfig(),
		scn:         scn,
		lingerTicks: -1,
	}
	for _, option := range options {
		option(g)
	}

	session, err := NewSession(g.cfg)
	if err != nil {
		return nil, err
	}
	g.session = session
	if g.player == nil {
		g.player = audio.NewRecordingPlayer()
	}
	if g.builder == nil {
		g.builder = mesh.NewBuilder(0)
	}
	if g.lingerTicks < 0 {
		g.lingerTicks = int(g.cfg.TickRate * 3)
	}

	dish, err := g.prebuild(true)
	if err != nil {
		return nil, err
	}
	scn.SetDish(dish)
	return g, nil
}

// prebuild builds the palette meshes and, when withDish is set, a new dish.
func (g *game) prebuild(withDish bool) (sphere.Sphere, error) {
	cfg := g.session.Config()
	ids := g.session.Registry().Capacity()
	reqs := make([]mesh.Request, 0, ids+1)
	order := make([]uint32, 0, ids)
	for i := 0; i < ids; i++ {
		id := cfg.FirstID + uint32(i)
		colors, _ := g.session.Palette(id)
		reqs = append(reqs, mesh.Request{Depth: cfg.BacteriumDepth, ColorStart: colors.Start, ColorStop: colors.Stop})
		order = append(order, id)
	}
	if withDish {
		reqs = append(reqs, mesh.Request{Depth: cfg.DishDepth, ColorStart: sphere.DefaultColorStart, ColorStop: sphere.DefaultColorStop})
	}

	built, err := g.builder.BuildBatch(reqs)
	if err != nil {
		return nil, fmt.Errorf("prebuild: %w", err)
	}
	g.geometries = make(map[uint32]mesh.Geometry, len(order))
	for i, id := range order {
		g.geometries[id] = built[i]
	}
	log.Printf("[Game] prebuilt %d meshes on %d workers", len(built), g.builder.Workers())

	if !withDish {
		return nil, nil
	}
	dish, err := sphere.NewSphere(g.scn.Renderer(), sphere.WithGeometry(built[len(built)-1]))
	if err != nil {
		return nil, fmt.Errorf("dish: %w", err)
	}
	return dish, nil
}

func (g *game) Session() *Session {
	return g.session
}

func (g *game) Scene() scene.Scene {
	return g.scn
}

func (g *game) Tick(float32) {
	if err := g.Step(); err != nil {
		log.Printf("[Game] tick: %v", err)
	}
}

func (g *game) Step() error {
	if g.session.State().Over() {
		g.ended++
		return nil
	}
	res := g.session.Tick()

	for _, id := range res.Removed() {
		g.scn.Remove(id)
	}
	if len(res.Overgrown) > 0 {
		g.player.Play(audio.EffectPenalty)
		log.Printf("[Game] %d overgrown, lives %d", len(res.Overgrown), g.session.Lives())
	}
	if res.Ended {
		g.player.Play(audio.EffectLose)
	}

	var err error
	if res.Spawned != 0 {
		err = g.addSphere(res.Spawned)
	}
	g.sync()
	return err
}

// addSphere creates the sphere of a newly spawned bacterium. On failure the bacterium is dropped
// from the session so the two stay in step.
func (g *game) addSphere(id uint32) error {
	b, _ := g.session.Colony().Get(id)
	geom, ok := g.geometries[id]
	if !ok {
		g.session.discard(id)
		return fmt.Errorf("%w: no mesh for bacterium %d", common.ErrConfiguration, id)
	}
	s, err := sphere.NewSphere(g.scn.Renderer(),
		sphere.WithGeometry(geom),
		sphere.WithID(id),
		sphere.WithCenter(b.Center),
		sphere.WithRadius(b.Radius),
		sphere.WithLighting(sphere.DefaultAmbient, sphere.DefaultDiffuse, bacteriumSpecular),
	)
	if err != nil {
		g.session.discard(id)
		return fmt.Errorf("bacterium %d: %w", id, err)
	}
	if err := g.scn.Add(s); err != nil {
		s.Dispose()
		g.session.discard(id)
		return err
	}
	return nil
}

// sync copies every bacterium's center and radius onto its sphere.
func (g *game) sync() {
	colony := g.session.Colony()
	for _, id := range colony.IDs() {
		s := g.scn.Get(id)
		if s == nil {
			continue
		}
		b, _ := colony.Get(id)
		scale := mgl32.Vec3{b.Radius, b.Radius, b.Radius}
		s.SetTransform(sphere.TransformUpdate{Translation: &b.Center, Scale: &scale})
	}
}

func (g *game) Click(x, y float64) (uint32, error) {
	if g.session.State() != Running {
		return 0, nil
	}
	id, hit, err := g.scn.Pick(x, y)
	if err != nil {
		return 0, err
	}
	if !hit || !g.session.Kill(id) {
		return 0, nil
	}
	g.scn.Remove(id)
	g.player.Play(audio.EffectPop)
	log.Printf("[Game] killed %d, score %d", id, g.session.Score())
	if g.session.State() == Won {
		g.player.Play(audio.EffectWin)
	}
	return id, nil
}

func (g *game) Restart() error {
	if err := g.session.Reset(); err != nil {
		return err
	}
	g.scn.Clear()
	g.ended = 0
	if _, err := g.prebuild(false); err != nil {
		return err
	}
	log.Printf("[Game] restarted")
	return nil
}

func (g *game) Finished() bool {
	return g.session.State().Over() && g.ended >= g.lingerTicks
}

func (g *game) Bind(w window.Window) {
	w.SetKeyDownCallback(g.HandleKeyDown)
	w.SetMouseDownCallback(g.HandleMouseDown)
	w.SetMouseUpCallback(g.HandleMouseUp)
	w.SetMouseMoveCallback(g.HandleMouseMove)
}

func (g *game) HandleKeyDown(key uint32) {
	ctl := g.scn.Controller()
	switch key {
	case common.KeyLeft:
		ctl.OrbitLeft()
	case common.KeyRight:
		ctl.OrbitRight()
	case common.KeyUp:
		ctl.OrbitUp()
	case common.KeyDown:
		ctl.OrbitDown()
	case common.KeyP:
		g.session.SetPaused(g.session.State() == Running)
	case common.KeySpace:
		g.session.SetPaused(false)
	case common.KeyR:
		if g.session.State().Over() {
			if err := g.Restart(); err != nil {
				log.Printf("[Game] restart: %v", err)
			}
		}
	}
}

func (g *game) HandleMouseDown(button window.MouseButton, x, y float64) {
	switch button {
	case window.MouseLeft:
		if _, err := g.Click(x, y); err != nil {
			log.Printf("[Game] pick: %v", err)
		}
	case window.MouseRight:
		g.scn.Controller().BeginDrag(float32(x), float32(y))
	}
}

func (g *game) HandleMouseUp(button window.MouseButton, _, _ float64) {
	if button == window.MouseRight {
		g.scn.Controller().EndDrag()
	}
}

func (g *game) HandleMouseMove(x, y float64) {
	if ctl := g.scn.Controller(); ctl.Dragging() {
		ctl.Drag(float32(x), float32(y))
	}
}

func (g *game) Close() error {
	g.scn.Release()
	return g.player.Close()
}
