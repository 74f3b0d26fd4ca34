package mesh

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// Request describes one sphere geometry to build.
type Request struct {
	// Depth is the subdivision depth, bounded by CheckDepth.
	Depth int

	// ColorStart and ColorStop are the gradient endpoints passed to BuildAttributes.
	ColorStart, ColorStop mgl32.Vec4
}

// Geometry is a built mesh together with its derived attributes and the request that produced them.
type Geometry struct {
	Request    Request
	Mesh       Mesh
	Attributes Attributes
}

// Clone returns a deep copy so a renderable can own its arrays exclusively.
func (g Geometry) Clone() Geometry {
	return Geometry{Request: g.Request, Mesh: g.Mesh.Clone(), Attributes: g.Attributes.Clone()}
}

// Build constructs the geometry for a single request on the calling goroutine.
//
// Parameters:
//   - req: the geometry to build
//
// Returns:
//   - Geometry: the mesh and its attributes
//   - error: a wrapped common.ErrConfiguration if the depth is out of range
func Build(req Request) (Geometry, error) {
	if err := CheckDepth(req.Depth); err != nil {
		return Geometry{}, err
	}
	m := BuildIcosphere(req.Depth)
	return Geometry{Request: req, Mesh: m, Attributes: BuildAttributes(m, req.ColorStart, req.ColorStop)}, nil
}

// Builder builds many independent geometries on a bounded pool of reusable goroutines.
// It performs CPU work only; uploading the results to the GPU stays on the render thread.
type Builder struct {
	pool    worker.DynamicWorkerPool
	workers int
}

// NewBuilder creates a Builder backed by a worker pool.
//
// Parameters:
//   - workers: the number of pool goroutines; values <= 0 use NumCPU-1 (at least 1)
//
// Returns:
//   - *Builder: the builder
func NewBuilder(workers int) *Builder {
	if workers <= 0 {
		workers = max(runtime.NumCPU()-1, 1)
	}
	return &Builder{
		pool:    worker.NewDynamicWorkerPool(workers, 64, 1*time.Second),
		workers: workers,
	}
}

// Workers returns the configured pool size.
func (b *Builder) Workers() int {
	return b.workers
}

// BuildBatch builds every request concurrently and blocks until all are done. The result slice
// is index-aligned with reqs; each entry owns its own arrays.
//
// Parameters:
//   - reqs: the geometries to build
//
// Returns:
//   - []Geometry: one geometry per request
//   - error: the first failure, with the offending request index
func (b *Builder) BuildBatch(reqs []Request) ([]Geometry, error) {
	out := make([]Geometry, len(reqs))
	errs := make([]error, len(reqs))

	// pool.Wait blocks until workers idle-exit, so a WaitGroup is the per-batch barrier.
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		idx, r := i, req
		b.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				out[idx], errs[idx] = Build(r)
				return nil, errs[idx]
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("mesh: request %d: %w", i, err)
		}
	}
	return out, nil
}
