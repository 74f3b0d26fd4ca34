// Package software_backend executes the sphere program on the CPU. It implements the same
// RendererBackend calls as the OpenGL backend, with a depth-tested RGBA8 framebuffer, so the
// renderer, picking and scene code can run headless.
package software_backend

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// program is a linked vertex/fragment pair with its resolved names and current uniform values.
type program struct {
	attribs  map[string]int32
	uniforms map[string]int32
	values   map[int32]any
}

// buffer is a CPU copy of an uploaded buffer.
type buffer struct {
	data   []byte
	target renderer.BufferTarget
}

// binding feeds a float buffer into a vertex input slot.
type binding struct {
	buffer     renderer.BufferHandle
	components int32
}

// softwareBackend is the implementation of the SoftwareBackend interface.
type softwareBackend struct {
	width  int
	height int

	// color holds RGBA8 pixels row by row, starting with the bottom row.
	color []byte
	depth []float32

	clearColor mgl32.Vec4

	programs    map[renderer.ProgramHandle]*program
	current     *program
	nextProgram renderer.ProgramHandle

	buffers    map[renderer.BufferHandle]*buffer
	nextBuffer renderer.BufferHandle
	bindings   map[int32]binding

	trianglesDrawn int
}

// SoftwareBackend is a RendererBackend that rasterizes on the CPU.
type SoftwareBackend interface {
	renderer.RendererBackend

	// Image returns a copy of the color buffer with the usual top-left image origin.
	//
	// Returns:
	//   - *image.RGBA: the current frame
	Image() *image.RGBA

	// TrianglesDrawn returns the number of triangles submitted since the backend was created.
	TrianglesDrawn() int
}

var _ SoftwareBackend = &softwareBackend{}

// NewSoftwareBackend creates a CPU backend.
//
// Parameters:
//   - options: variadic list of SoftwareBackendOption functions to configure the backend
//
// Returns:
//   - SoftwareBackend: the backend with a cleared framebuffer
func NewSoftwareBackend(options ...SoftwareBackendOption) SoftwareBackend {
	b := &softwareBackend{
		width:    1,
		height:   1,
		programs: make(map[renderer.ProgramHandle]*program),
		buffers:  make(map[renderer.BufferHandle]*buffer),
		bindings: make(map[int32]binding),
	}
	for _, opt := range options {
		opt(b)
	}
	b.Viewport(b.width, b.height)
	return b
}

func (b *softwareBackend) CompileProgram(vertexSource, fragmentSource string) (renderer.ProgramHandle, error) {
	vertex, err := shader.NewShader("vertex", shader.ShaderTypeVertex, vertexSource)
	if err != nil {
		return 0, fmt.Errorf("compile vertex shader: %w", err)
	}
	fragment, err := shader.NewShader("fragment", shader.ShaderTypeFragment, fragmentSource)
	if err != nil {
		return 0, fmt.Errorf("compile fragment shader: %w", err)
	}

	// Linking fails when a fragment input has no matching vertex output.
	for _, in := range fragment.Inputs() {
		out, ok := vertex.Lookup(shader.DeclarationOut, in.Name)
		if !ok || out.Type != in.Type {
			return 0, fmt.Errorf("link program: fragment input %q has no matching vertex output", in.Name)
		}
	}

	p := &program{
		attribs:  make(map[string]int32),
		uniforms: make(map[string]int32),
		values:   make(map[int32]any),
	}
	for i, in := range vertex.Inputs() {
		p.attribs[in.Name] = int32(i)
	}
	for _, s := range []shader.Shader{vertex, fragment} {
		for _, u := range s.Uniforms() {
			if _, ok := p.uniforms[u.Name]; !ok {
				p.uniforms[u.Name] = int32(len(p.uniforms))
			}
		}
	}

	b.nextProgram++
	b.programs[b.nextProgram] = p
	return b.nextProgram, nil
}

func (b *softwareBackend) UseProgram(h renderer.ProgramHandle) {
	b.current = b.programs[h]
}

func (b *softwareBackend) DeleteProgram(h renderer.ProgramHandle) {
	if p, ok := b.programs[h]; ok {
		if b.current == p {
			b.current = nil
		}
		delete(b.programs, h)
	}
}

func (b *softwareBackend) AttribLocation(h renderer.ProgramHandle, name string) int32 {
	if p, ok := b.programs[h]; ok {
		if loc, ok := p.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

func (b *softwareBackend) UniformLocation(h renderer.ProgramHandle, name string) int32 {
	if p, ok := b.programs[h]; ok {
		if loc, ok := p.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (b *softwareBackend) CreateBuffer() renderer.BufferHandle {
	b.nextBuffer++
	b.buffers[b.nextBuffer] = &buffer{}
	return b.nextBuffer
}

func (b *softwareBackend) DeleteBuffer(h renderer.BufferHandle) {
	delete(b.buffers, h)
	for slot, bind := range b.bindings {
		if bind.buffer == h {
			delete(b.bindings, slot)
		}
	}
}

func (b *softwareBackend) UploadBuffer(h renderer.BufferHandle, target renderer.BufferTarget, data []byte) {
	buf, ok := b.buffers[h]
	if !ok {
		return
	}
	buf.data = append(buf.data[:0], data...)
	buf.target = target
}

func (b *softwareBackend) VertexAttribPointer(h renderer.BufferHandle, slot int32, components int32) {
	if slot < 0 {
		return
	}
	b.bindings[slot] = binding{buffer: h, components: components}
}

func (b *softwareBackend) setUniform(location int32, v any) {
	if b.current == nil || location < 0 {
		return
	}
	b.current.values[location] = v
}

func (b *softwareBackend) UniformMatrix4(location int32, m mgl32.Mat4) {
	b.setUniform(location, m)
}

func (b *softwareBackend) Uniform4(location int32, v mgl32.Vec4) {
	b.setUniform(location, v)
}

func (b *softwareBackend) Uniform3(location int32, v mgl32.Vec3) {
	b.setUniform(location, v)
}

func (b *softwareBackend) Uniform1(location int32, v float32) {
	b.setUniform(location, v)
}

func (b *softwareBackend) ClearColor(c mgl32.Vec4) {
	b.clearColor = c
}

func (b *softwareBackend) Clear() {
	px := common.ColorToBytes(b.clearColor)
	for i := 0; i < len(b.color); i += 4 {
		copy(b.color[i:i+4], px[:])
	}
	for i := range b.depth {
		b.depth[i] = 1
	}
}

func (b *softwareBackend) ReadPixel(x, y int) [4]byte {
	var px [4]byte
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return px
	}
	i := (y*b.width + x) * 4
	copy(px[:], b.color[i:i+4])
	return px
}

func (b *softwareBackend) Viewport(width, height int) {
	b.width, b.height = max(width, 1), max(height, 1)
	b.color = make([]byte, b.width*b.height*4)
	b.depth = make([]float32, b.width*b.height)
	for i := range b.depth {
		b.depth[i] = 1
	}
}

func (b *softwareBackend) Release() {
	clear(b.programs)
	clear(b.buffers)
	clear(b.bindings)
	b.current = nil
}

func (b *softwareBackend) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	stride := b.width * 4
	for y := 0; y < b.height; y++ {
		src := b.color[y*stride : (y+1)*stride]
		dst := img.Pix[(b.height-1-y)*img.Stride:]
		copy(dst[:stride], src)
	}
	return img
}

func (b *softwareBackend) TrianglesDrawn() int {
	return b.trianglesDrawn
}

// fetch reads vertex i of the float buffer bound to slot. Missing components default to
// (0, 0, 0, 1) as in OpenGL.
func (b *softwareBackend) fetch(slot int32, i uint32) mgl32.Vec4 {
	v := mgl32.Vec4{0, 0, 0, 1}
	bind, ok := b.bindings[slot]
	if !ok {
		return v
	}
	buf, ok := b.buffers[bind.buffer]
	if !ok {
		return v
	}
	base := int(i) * int(bind.components) * 4
	for c := 0; c < int(bind.components) && c < 4; c++ {
		off := base + c*4
		if off+4 > len(buf.data) {
			break
		}
		v[c] = math.Float32frombits(binary.NativeEndian.Uint32(buf.data[off:]))
	}
	return v
}

func (p *program) mat4(name string) mgl32.Mat4 {
	if m, ok := p.values[p.location(name)].(mgl32.Mat4); ok {
		return m
	}
	return mgl32.Mat4{}
}

func (p *program) vec4(name string) mgl32.Vec4 {
	v, _ := p.values[p.location(name)].(mgl32.Vec4)
	return v
}

func (p *program) vec3(name string) mgl32.Vec3 {
	v, _ := p.values[p.location(name)].(mgl32.Vec3)
	return v
}

func (p *program) float(name string) float32 {
	v, _ := p.values[p.location(name)].(float32)
	return v
}

func (p *program) location(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}
