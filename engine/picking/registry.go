package picking

import (
	"fmt"
	"math/rand/v2"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
)

type registry struct {
	first uint32
	count uint32

	// free lists the ids not currently held, in no particular order.
	free []uint32

	// held is the set of ids owned by live objects.
	held map[uint32]struct{}

	rng *rand.Rand
}

// Registry is a pool of object ids over a contiguous range. An id is held by at most one live
// object; Acquire picks uniformly at random from the free ids.
type Registry interface {
	// Acquire takes a free id.
	//
	// Returns:
	//   - uint32: the id
	//   - error: a wrapped common.ErrPoolExhausted when every id is held
	Acquire() (uint32, error)

	// Release returns an id to the pool.
	//
	// Parameters:
	//   - id: the id to release
	//
	// Returns:
	//   - bool: false if the id was not held, in which case nothing changes
	Release(id uint32) bool

	// Held reports whether the id is currently held.
	Held(id uint32) bool

	// Available returns the number of free ids.
	Available() int

	// Capacity returns the size of the range.
	Capacity() int
}

var _ Registry = &registry{}

// NewRegistry creates a pool over [first, first+count).
//
// Parameters:
//   - first: the lowest id, must be > NoHit
//   - count: the number of ids, at least 1; the range must end at or below IDLimit
//   - options: variadic list of RegistryBuilderOption functions to configure the Registry
//
// Returns:
//   - Registry: the pool with every id free
//   - error: a wrapped common.ErrConfiguration for an invalid range
func NewRegistry(first, count uint32, options ...RegistryBuilderOption) (Registry, error) {
	if first == NoHit {
		return nil, fmt.Errorf("%w: id range must not include %d", common.ErrConfiguration, NoHit)
	}
	if count == 0 || first >= IDLimit || count > IDLimit-first {
		return nil, fmt.Errorf("%w: id range [%d, %d+%d) does not fit below %d", common.ErrConfiguration, first, first, count, IDLimit)
	}

	r := &registry{
		first: first,
		count: count,
		free:  make([]uint32, 0, count),
		held:  make(map[uint32]struct{}),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	for id := first; id-first < count; id++ {
		r.free = append(r.free, id)
	}
	return r, nil
}

func (r *registry) Acquire() (uint32, error) {
	if len(r.free) == 0 {
		return NoHit, fmt.Errorf("%w: all %d ids held", common.ErrPoolExhausted, r.count)
	}
	i := r.rng.IntN(len(r.free))
	id := r.free[i]
	last := len(r.free) - 1
	r.free[i] = r.free[last]
	r.free = r.free[:last]
	r.held[id] = struct{}{}
	return id, nil
}

func (r *registry) Release(id uint32) bool {
	if _, ok := r.held[id]; !ok {
		return false
	}
	delete(r.held, id)
	r.free = append(r.free, id)
	return true
}

func (r *registry) Held(id uint32) bool {
	_, ok := r.held[id]
	return ok
}

func (r *registry) Available() int {
	return len(r.free)
}

func (r *registry) Capacity() int {
	return int(r.count)
}
