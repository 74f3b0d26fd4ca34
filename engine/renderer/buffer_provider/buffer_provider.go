package buffer_provider

import (
	"fmt"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
)

// BufferKind names one of the logical arrays a renderable keeps on the GPU.
type BufferKind int

const (
	// BufferPoints holds vec4 positions.
	BufferPoints BufferKind = iota

	// BufferColors holds vec4 colors.
	BufferColors

	// BufferNormals holds vec3 normals.
	BufferNormals

	// BufferIndices holds uint32 triangle indices.
	BufferIndices

	bufferKindCount
)

// String returns the lower-case name of the kind.
func (k BufferKind) String() string {
	switch k {
	case BufferPoints:
		return "points"
	case BufferColors:
		return "colors"
	case BufferNormals:
		return "normals"
	case BufferIndices:
		return "indices"
	default:
		return fmt.Sprintf("BufferKind(%d)", int(k))
	}
}

// bufferProvider is the unexported implementation of BufferProvider.
type bufferProvider struct {
	// label is a debug label added for convenience.
	label string

	r renderer.Renderer

	// buffers holds one live handle per kind until Release.
	buffers [bufferKindCount]renderer.BufferHandle

	// indexCount is the number of indices the renderable draws.
	indexCount int

	released bool
}

// BufferProvider owns exactly one GPU buffer handle per logical array of a renderable.
//
// Usage pattern:
//  1. The renderable creates a provider with NewBufferProvider, which allocates all four handles
//  2. It uploads the CPU arrays with Write or WriteBuffers, and sets the index count
//  3. Each frame it looks the handles up with Buffer and binds them for the draw
//  4. Dispose calls Release, after which every lookup fails with common.ErrReleased
type BufferProvider interface {
	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// Buffer returns the handle of one array.
	//
	// Parameters:
	//   - kind: the array to look up
	//
	// Returns:
	//   - renderer.BufferHandle: the live handle
	//   - error: a wrapped common.ErrReleased after Release
	Buffer(kind BufferKind) (renderer.BufferHandle, error)

	// Write replaces the whole contents of one array. Indices go to the element array target.
	//
	// Parameters:
	//   - kind: the array to replace
	//   - data: the raw bytes
	//
	// Returns:
	//   - error: a wrapped common.ErrReleased after Release
	Write(kind BufferKind, data []byte) error

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetIndexCount sets the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)

	// Released reports whether Release has been called.
	Released() bool

	// Release deletes all four handles. Calling it again does nothing.
	//
	// Returns:
	//   - int: the number of handles deleted by this call
	Release() int
}

var _ BufferProvider = &bufferProvider{}

// NewBufferProvider allocates the four buffer handles of a renderable on r.
//
// Parameters:
//   - r: the renderer the handles belong to
//   - options: a variadic list of options to configure the provider
//
// Returns:
//   - BufferProvider: a new provider holding four live, empty buffers
func NewBufferProvider(r renderer.Renderer, options ...BufferProviderOption) BufferProvider {
	p := &bufferProvider{r: r}
	for _, opt := range options {
		opt(p)
	}
	for k := range p.buffers {
		p.buffers[k] = r.CreateBuffer()
	}
	return p
}

func (p *bufferProvider) Label() string {
	return p.label
}

func (p *bufferProvider) Buffer(kind BufferKind) (renderer.BufferHandle, error) {
	if p.released {
		return 0, fmt.Errorf("%w: %s buffer of %q", common.ErrReleased, kind, p.label)
	}
	if kind < 0 || kind >= bufferKindCount {
		return 0, fmt.Errorf("unknown buffer kind %s", kind)
	}
	return p.buffers[kind], nil
}

func (p *bufferProvider) Write(kind BufferKind, data []byte) error {
	h, err := p.Buffer(kind)
	if err != nil {
		return err
	}
	return p.r.Upload(h, data, kind == BufferIndices)
}

func (p *bufferProvider) IndexCount() int {
	return p.indexCount
}

func (p *bufferProvider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *bufferProvider) Released() bool {
	return p.released
}

func (p *bufferProvider) Release() int {
	if p.released {
		return 0
	}
	p.released = true
	deleted := 0
	for k, h := range p.buffers {
		if p.r.DeleteBuffer(h) {
			deleted++
		}
		p.buffers[k] = 0
	}
	p.indexCount = 0
	return deleted
}
