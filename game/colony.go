package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Bacterium is the simulation state of one bacterium. Centers lie on the dish surface.
type Bacterium struct {
	ID     uint32
	Center mgl32.Vec3
	Radius float32

	// ConsumedBy is the id of the consumer, or 0 while the bacterium is free.
	ConsumedBy uint32
}

// Consumed reports whether another bacterium is absorbing this one.
func (b Bacterium) Consumed() bool {
	return b.ConsumedBy != 0
}

// Overlaps reports whether two bacteria intersect: |c_a - c_b| < r_a + r_b.
func (b Bacterium) Overlaps(o Bacterium) bool {
	return b.Center.Sub(o.Center).Len() < b.Radius+o.Radius
}

// StepResult lists the bacteria that left the colony during one Step.
type StepResult struct {
	// Absorbed are consumed bacteria that vanished into their consumer.
	Absorbed []uint32

	// Overgrown are bacteria that reached the size threshold.
	Overgrown []uint32
}

// Colony is an arena of bacteria keyed by id together with the consumer to consumed relation.
// A bacterium has at most one consumer and a consumer is never itself consumed.
// Not safe for concurrent use.
type Colony struct {
	arena    map[uint32]*Bacterium
	consumes map[uint32]map[uint32]struct{}
}

// NewColony creates an empty colony.
func NewColony() *Colony {
	return &Colony{
		arena:    make(map[uint32]*Bacterium),
		consumes: make(map[uint32]map[uint32]struct{}),
	}
}

// Add places a new free bacterium.
//
// Parameters:
//   - id: a nonzero id not already in the colony
//   - center: the position; it is projected onto the dish surface
//   - radius: the starting radius
//
// Returns:
//   - error: a wrapped common.ErrConfiguration for id 0, a duplicate id or a zero center
func (c *Colony) Add(id uint32, center mgl32.Vec3, radius float32) error {
	if id == 0 {
		return fmt.Errorf("%w: bacterium id 0 is reserved", common.ErrConfiguration)
	}
	if _, ok := c.arena[id]; ok {
		return fmt.Errorf("%w: bacterium %d already exists", common.ErrConfiguration, id)
	}
	if center.Len() == 0 {
		return fmt.Errorf("%w: bacterium %d has no direction", common.ErrConfiguration, id)
	}
	c.arena[id] = &Bacterium{ID: id, Center: center.Normalize(), Radius: radius}
	return nil
}

// Get returns a copy of the bacterium under id.
func (c *Colony) Get(id uint32) (Bacterium, bool) {
	b, ok := c.arena[id]
	if !ok {
		return Bacterium{}, false
	}
	return *b, true
}

// Len returns the number of bacteria, consumed ones included.
func (c *Colony) Len() int {
	return len(c.arena)
}

// IDs returns every id in ascending order.
func (c *Colony) IDs() []uint32 {
	return slices.Sorted(maps.Keys(c.arena))
}

// Consumed returns the ids id is absorbing, in ascending order.
func (c *Colony) Consumed(id uint32) []uint32 {
	return slices.Sorted(maps.Keys(c.consumes[id]))
}

// Remove deletes a bacterium. Anything it was absorbing is set free again.
//
// Parameters:
//   - id: the id to remove
//
// Returns:
//   - bool: false if id was not in the colony
func (c *Colony) Remove(id uint32) bool {
	b, ok := c.arena[id]
	if !ok {
		return false
	}
	if b.Consumed() {
		delete(c.consumes[b.ConsumedBy], id)
		if len(c.consumes[b.ConsumedBy]) == 0 {
			delete(c.consumes, b.ConsumedBy)
		}
	}
	for victim := range c.consumes[id] {
		c.arena[victim].ConsumedBy = 0
	}
	delete(c.consumes, id)
	delete(c.arena, id)
	return true
}

// Clear removes every bacterium.
func (c *Colony) Clear() {
	clear(c.arena)
	clear(c.consumes)
}

// consume records that eater absorbs victim. The victim's own victims move to eater.
func (c *Colony) consume(eater, victim uint32) {
	if c.consumes[eater] == nil {
		c.consumes[eater] = make(map[uint32]struct{})
	}
	for v := range c.consumes[victim] {
		c.arena[v].ConsumedBy = eater
		c.consumes[eater][v] = struct{}{}
	}
	delete(c.consumes, victim)
	c.arena[victim].ConsumedBy = eater
	c.consumes[eater][victim] = struct{}{}
}

// Step advances the colony by one tick: free bacteria grow and overgrown ones leave, free
// bacteria that overlap are paired with the lower id consuming the higher, and consumed bacteria
// shrink toward their consumer until they vanish. Iteration is in id order so the outcome does
// not depend on creation order.
//
// Parameters:
//   - cfg: the growth and consumption tuning
//
// Returns:
//   - StepResult: the ids removed during the step
func (c *Colony) Step(cfg Config) StepResult {
	var res StepResult
	ids := c.IDs()

	for _, id := range ids {
		b := c.arena[id]
		if b.Consumed() {
			continue
		}
		b.Radius += cfg.GrowthIncrement
		if b.Radius >= cfg.MaxRadius-1e-6 {
			c.Remove(id)
			res.Overgrown = append(res.Overgrown, id)
		}
	}

	ids = c.IDs()
	for i, a := range ids {
		if c.arena[a].Consumed() {
			continue
		}
		for _, b := range ids[i+1:] {
			if c.arena[b].Consumed() {
				continue
			}
			if c.arena[a].Overlaps(*c.arena[b]) {
				c.consume(a, b)
			}
		}
	}

	for _, id := range ids {
		b := c.arena[id]
		if !b.Consumed() {
			continue
		}
		eater := c.arena[b.ConsumedBy]
		b.Radius -= cfg.ConsumeShrink
		pulled := b.Center.Add(eater.Center.Sub(b.Center).Mul(cfg.ConsumePull))
		if pulled.Len() > 0 {
			b.Center = pulled.Normalize()
		}
		if b.Radius <= 0 || distance(b.Center, eater.Center)+b.Radius <= eater.Radius {
			c.Remove(id)
			res.Absorbed = append(res.Absorbed, id)
		}
	}
	return res
}

func distance(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return math32.Sqrt(d.Dot(d))
}
