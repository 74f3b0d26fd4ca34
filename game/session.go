package game

import (
	"log"
	"math/rand/v2"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/picking"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the phase of a session.
type State int

const (
	// Running sessions spawn, grow and accept kills.
	Running State = iota

	// Paused sessions keep their state but ignore ticks and kills.
	Paused

	// Won sessions reached the winning score.
	Won

	// Lost sessions ran out of lives.
	Lost
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the session reached a terminal state.
func (s State) Over() bool {
	return s == Won || s == Lost
}

// Colors is the gradient of one bacterium.
type Colors struct {
	Start, Stop mgl32.Vec4
}

// TickResult reports what changed during one Session.Tick.
type TickResult struct {
	// Spawned is the id of a new bacterium, or 0.
	Spawned uint32

	// Absorbed and Overgrown are the ids that left the colony.
	Absorbed  []uint32
	Overgrown []uint32

	// Ended is set on the tick the session became Won or Lost.
	Ended bool
}

// Removed returns every id that left the colony during the tick.
func (r TickResult) Removed() []uint32 {
	return append(append([]uint32(nil), r.Absorbed...), r.Overgrown...)
}

// Session holds the score, lives, colony and id registry of one game. It has no graphics
// dependency; Game mirrors it into a scene. Not safe for concurrent use.
type Session struct {
	cfg      Config
	rng      *rand.Rand
	registry picking.Registry
	colony   *Colony
	palette  map[uint32]Colors

	score int
	lives int
	state State
}

// NewSession validates cfg and starts a running session.
//
// Parameters:
//   - cfg: the tuning
//
// Returns:
//   - *Session: the session
//   - error: a wrapped common.ErrConfiguration if cfg is invalid
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	s := &Session{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		colony: NewColony(),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	log.Printf("[Game] session seed %d, ids %d..%d", seed, cfg.FirstID, cfg.FirstID+uint32(cfg.MaxBacteria)-1)
	return s, nil
}

// Reset starts over with full lives, no score, an empty colony and a fresh palette.
//
// Returns:
//   - error: a wrapped common.ErrConfiguration if the id range is unusable
func (s *Session) Reset() error {
	reg, err := picking.NewRegistry(s.cfg.FirstID, uint32(s.cfg.MaxBacteria),
		picking.WithRand(rand.New(rand.NewPCG(s.rng.Uint64(), s.rng.Uint64()))))
	if err != nil {
		return err
	}
	s.registry = reg
	s.colony.Clear()
	s.palette = s.newPalette()
	s.score = 0
	s.lives = s.cfg.Lives
	s.state = Running
	return nil
}

// newPalette assigns every id a random green-blue gradient.
func (s *Session) newPalette() map[uint32]Colors {
	p := make(map[uint32]Colors, s.cfg.MaxBacteria)
	color := func() mgl32.Vec4 {
		return mgl32.Vec4{0.2 * s.rng.Float32(), 0.5 + 0.5*s.rng.Float32(), s.rng.Float32(), s.cfg.Alpha}
	}
	for i := 0; i < s.cfg.MaxBacteria; i++ {
		p[s.cfg.FirstID+uint32(i)] = Colors{Start: color(), Stop: color()}
	}
	return p
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Score() int {
	return s.score
}

func (s *Session) Lives() int {
	return s.lives
}

func (s *Session) State() State {
	return s.state
}

// Colony exposes the simulation arena for reading.
func (s *Session) Colony() *Colony {
	return s.colony
}

// Registry exposes the id pool for reading.
func (s *Session) Registry() picking.Registry {
	return s.registry
}

// Palette returns the gradient of id.
func (s *Session) Palette(id uint32) (Colors, bool) {
	c, ok := s.palette[id]
	return c, ok
}

// SetPaused toggles between Running and Paused. Terminal sessions are unaffected.
func (s *Session) SetPaused(paused bool) {
	switch {
	case paused && s.state == Running:
		s.state = Paused
	case !paused && s.state == Paused:
		s.state = Running
	}
}

// Tick advances a running session: at most one spawn, then one colony step. Ids of bacteria
// that leave the colony return to the pool and each overgrown bacterium costs a life.
//
// Returns:
//   - TickResult: what changed
func (s *Session) Tick() TickResult {
	var res TickResult
	if s.state != Running {
		return res
	}

	if s.colony.Len() < s.cfg.MaxBacteria && s.rng.Float64() < s.cfg.SpawnChance {
		res.Spawned = s.spawn()
	}

	step := s.colony.Step(s.cfg)
	res.Absorbed, res.Overgrown = step.Absorbed, step.Overgrown
	for _, id := range res.Removed() {
		s.registry.Release(id)
	}

	s.lives = max(s.lives-len(res.Overgrown), 0)
	if s.lives == 0 {
		s.state = Lost
		res.Ended = true
		log.Printf("[Game] lost with score %d", s.score)
	}
	return res
}

func (s *Session) spawn() uint32 {
	id, err := s.registry.Acquire()
	if err != nil {
		// Only common.ErrPoolExhausted is expected while the live cap equals the pool size.
		log.Printf("[Game] cannot spawn: %v", err)
		return 0
	}

	var center mgl32.Vec3
	for center.Len() < 1e-3 {
		center = mgl32.Vec3{s.rng.Float32() - 0.5, s.rng.Float32() - 0.5, s.rng.Float32() - 0.5}
	}
	if err := s.colony.Add(id, center, s.cfg.InitialRadius); err != nil {
		s.registry.Release(id)
		log.Printf("[Game] cannot spawn: %v", err)
		return 0
	}
	return id
}

// Kill removes a bacterium the player clicked and scores it.
//
// Parameters:
//   - id: the picked id
//
// Returns:
//   - bool: false if the session is not running or id is not a live bacterium
func (s *Session) Kill(id uint32) bool {
	if s.state != Running || !s.colony.Remove(id) {
		return false
	}
	s.registry.Release(id)
	s.score++
	if s.score >= s.cfg.WinScore {
		s.state = Won
		log.Printf("[Game] won with score %d", s.score)
	}
	return true
}

// discard drops a bacterium without scoring and returns its id to the pool.
func (s *Session) discard(id uint32) {
	if s.colony.Remove(id) {
		s.registry.Release(id)
	}
}
