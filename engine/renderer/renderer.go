package renderer

import (
	"fmt"
	"sync"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	program ProgramHandle

	vertexSource   string
	fragmentSource string

	attribs  map[string]int32
	uniforms map[string]int32

	// buffers tracks every live handle created through this renderer.
	buffers map[BufferHandle]struct{}

	clearColor  mgl32.Vec4
	singleColor mgl32.Vec4
	oneColor    bool

	width  int
	height int
}

// Renderer is the GPU buffer manager and draw front end for the sphere program.
//
// It owns one linked program whose vertex inputs and uniforms are resolved once at construction;
// any name the program does not expose is a configuration error reported by NewRenderer rather
// than a silently dropped binding at draw time. Buffers are created, uploaded and bound through
// the Renderer so a handle that has been deleted can never be drawn again.
type Renderer interface {
	// Backend returns the low-level backend the renderer drives.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// AttribSlot returns the resolved slot for a vertex input name, or -1 if it is not part of
	// the program.
	//
	// Parameters:
	//   - name: the vertex input name, e.g. shader.AttribPoint
	//
	// Returns:
	//   - int32: the slot or -1
	AttribSlot(name string) int32

	// CreateBuffer allocates a new buffer handle.
	//
	// Returns:
	//   - BufferHandle: the handle, live until DeleteBuffer
	CreateBuffer() BufferHandle

	// DeleteBuffer frees a buffer handle.
	//
	// Parameters:
	//   - h: the handle to free
	//
	// Returns:
	//   - bool: false if h was not live, in which case nothing happens
	DeleteBuffer(h BufferHandle) bool

	// Upload replaces the whole contents of a buffer. Vertex data goes to the array target and
	// index data to the element array target.
	//
	// Parameters:
	//   - h: the destination buffer
	//   - data: the bytes to upload
	//   - isIndexData: true for uint32 triangle indices
	//
	// Returns:
	//   - error: a wrapped common.ErrReleased if h is not live
	Upload(h BufferHandle, data []byte, isIndexData bool) error

	// BindForDraw associates a float buffer with a vertex input slot for the next draw.
	//
	// Parameters:
	//   - h: the buffer to bind
	//   - slot: the resolved input slot, see AttribSlot
	//   - components: the input width, 3 or 4
	//
	// Returns:
	//   - error: a wrapped common.ErrConfiguration for a negative slot or unsupported width,
	//     or a wrapped common.ErrReleased if h is not live
	BindForDraw(h BufferHandle, slot int32, components int32) error

	// DrawIndexed draws count indices from the element buffer h as triangles using the buffers
	// bound by BindForDraw.
	//
	// Parameters:
	//   - h: the element buffer
	//   - count: the number of indices
	//
	// Returns:
	//   - error: a wrapped common.ErrReleased if h is not live
	DrawIndexed(h BufferHandle, count int) error

	// SetModelMatrix writes the model transform of the next draw.
	SetModelMatrix(m mgl32.Mat4)

	// SetView writes the camera view matrix.
	SetView(m mgl32.Mat4)

	// SetProjection writes the projection matrix.
	SetProjection(m mgl32.Mat4)

	// SetLight writes the point light position and color.
	//
	// Parameters:
	//   - position: the world-space light position
	//   - color: the light color
	SetLight(position, color mgl32.Vec3)

	// SetLighting writes the Phong coefficients of the next draw.
	//
	// Parameters:
	//   - ambient: the ambient factor
	//   - diffuse: the diffuse factor
	//   - specular: the specular factor
	SetLighting(ambient, diffuse, specular float32)

	// SetSingleColor toggles the single color override. While enabled every fragment is
	// exactly c, which is how picking encodes object identity.
	//
	// Parameters:
	//   - enabled: true to turn the override on
	//   - c: the flat color
	SetSingleColor(enabled bool, c mgl32.Vec4)

	// SingleColor reports the override state.
	//
	// Returns:
	//   - bool: true if the override is on
	//   - mgl32.Vec4: the flat color last set
	SingleColor() (bool, mgl32.Vec4)

	// ClearColor returns the color BeginFrame clears to.
	ClearColor() mgl32.Vec4

	// SetClearColor sets the color BeginFrame clears to.
	SetClearColor(c mgl32.Vec4)

	// BeginFrame clears the color and depth buffers.
	BeginFrame()

	// ReadPixel synchronously reads one pixel of the framebuffer, bottom-left origin.
	//
	// Parameters:
	//   - x: the column
	//   - y: the row, counted from the bottom
	//
	// Returns:
	//   - [4]byte: the RGBA bytes
	ReadPixel(x, y int) [4]byte

	// Resize updates the viewport after a framebuffer size change.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Size returns the current viewport size.
	Size() (int, int)

	// LiveBuffers returns the number of live buffer handles.
	LiveBuffers() int

	// Release deletes every live buffer and the program, then releases the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer compiles the sphere program on backend and resolves every vertex input and uniform
// it must expose. Construction fails fast if any of them is missing.
//
// Parameters:
//   - backend: the graphics backend, already bound to a current context
//   - width: the initial viewport width in pixels
//   - height: the initial viewport height in pixels
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: a wrapped common.ErrConfiguration on compile, link or resolution failure
func NewRenderer(backend RendererBackend, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	vs, fs := shader.SphereSources()
	r := &renderer{
		mu:             &sync.Mutex{},
		backend:        backend,
		vertexSource:   vs,
		fragmentSource: fs,
		attribs:        make(map[string]int32, len(shader.Attributes)),
		uniforms:       make(map[string]int32, len(shader.Uniforms)),
		buffers:        make(map[BufferHandle]struct{}),
	}
	for _, opt := range options {
		opt(r)
	}

	if err := r.checkContract(); err != nil {
		return nil, err
	}

	program, err := backend.CompileProgram(r.vertexSource, r.fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%w: sphere program: %v", common.ErrConfiguration, err)
	}
	r.program = program
	backend.UseProgram(program)

	for _, name := range shader.Attributes {
		loc := backend.AttribLocation(program, name)
		if loc < 0 {
			backend.DeleteProgram(program)
			return nil, fmt.Errorf("%w: vertex input %q not found in program", common.ErrConfiguration, name)
		}
		r.attribs[name] = loc
	}
	for _, name := range shader.Uniforms {
		loc := backend.UniformLocation(program, name)
		if loc < 0 {
			backend.DeleteProgram(program)
			return nil, fmt.Errorf("%w: uniform %q not found in program", common.ErrConfiguration, name)
		}
		r.uniforms[name] = loc
	}

	backend.Uniform1(r.uniforms[shader.UniformOneColor], 0)
	backend.ClearColor(r.clearColor)
	r.Resize(width, height)
	return r, nil
}

// checkContract parses both stages and verifies that every contract name is declared with the
// expected width before any backend work happens.
func (r *renderer) checkContract() error {
	vertex, err := shader.NewShader("sphere.vert", shader.ShaderTypeVertex, r.vertexSource)
	if err != nil {
		return err
	}
	fragment, err := shader.NewShader("sphere.frag", shader.ShaderTypeFragment, r.fragmentSource)
	if err != nil {
		return err
	}

	widths := map[string]int32{
		shader.AttribPoint:  4,
		shader.AttribColor:  4,
		shader.AttribNormal: 3,
	}
	for _, name := range shader.Attributes {
		d, ok := vertex.Lookup(shader.DeclarationIn, name)
		if !ok {
			return fmt.Errorf("%w: vertex shader does not declare input %q", common.ErrConfiguration, name)
		}
		if d.Components != widths[name] {
			return fmt.Errorf("%w: vertex input %q is %s, want %d components", common.ErrConfiguration, name, d.Type, widths[name])
		}
	}
	for _, name := range shader.Uniforms {
		_, inVertex := vertex.Lookup(shader.DeclarationUniform, name)
		_, inFragment := fragment.Lookup(shader.DeclarationUniform, name)
		if !inVertex && !inFragment {
			return fmt.Errorf("%w: program does not declare uniform %q", common.ErrConfiguration, name)
		}
	}
	return nil
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) AttribSlot(name string) int32 {
	if loc, ok := r.attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *renderer) CreateBuffer() BufferHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.backend.CreateBuffer()
	r.buffers[h] = struct{}{}
	return h
}

func (r *renderer) DeleteBuffer(h BufferHandle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.buffers[h]; !ok {
		return false
	}
	delete(r.buffers, h)
	r.backend.DeleteBuffer(h)
	return true
}

func (r *renderer) live(h BufferHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.buffers[h]; !ok {
		return fmt.Errorf("%w: buffer %d", common.ErrReleased, h)
	}
	return nil
}

func (r *renderer) Upload(h BufferHandle, data []byte, isIndexData bool) error {
	if err := r.live(h); err != nil {
		return err
	}
	target := BufferTargetArray
	if isIndexData {
		target = BufferTargetElementArray
	}
	r.backend.UploadBuffer(h, target, data)
	return nil
}

func (r *renderer) BindForDraw(h BufferHandle, slot int32, components int32) error {
	if slot < 0 {
		return fmt.Errorf("%w: unresolved vertex input slot for buffer %d", common.ErrConfiguration, h)
	}
	if components != 3 && components != 4 {
		return fmt.Errorf("%w: unsupported vertex input width %d", common.ErrConfiguration, components)
	}
	if err := r.live(h); err != nil {
		return err
	}
	r.backend.VertexAttribPointer(h, slot, components)
	return nil
}

func (r *renderer) DrawIndexed(h BufferHandle, count int) error {
	if err := r.live(h); err != nil {
		return err
	}
	r.backend.DrawIndexed(h, int32(count))
	return nil
}

func (r *renderer) SetModelMatrix(m mgl32.Mat4) {
	r.backend.UniformMatrix4(r.uniforms[shader.UniformModelMatrix], m)
}

func (r *renderer) SetView(m mgl32.Mat4) {
	r.backend.UniformMatrix4(r.uniforms[shader.UniformViewMatrix], m)
}

func (r *renderer) SetProjection(m mgl32.Mat4) {
	r.backend.UniformMatrix4(r.uniforms[shader.UniformProjectionMatrix], m)
}

func (r *renderer) SetLight(position, color mgl32.Vec3) {
	r.backend.Uniform3(r.uniforms[shader.UniformLightPoint], position)
	r.backend.Uniform3(r.uniforms[shader.UniformLightColor], color)
}

func (r *renderer) SetLighting(ambient, diffuse, specular float32) {
	r.backend.Uniform1(r.uniforms[shader.UniformLightAmbient], ambient)
	r.backend.Uniform1(r.uniforms[shader.UniformLightDiffuse], diffuse)
	r.backend.Uniform1(r.uniforms[shader.UniformLightSpecular], specular)
}

func (r *renderer) SetSingleColor(enabled bool, c mgl32.Vec4) {
	flag := float32(0)
	if enabled {
		flag = 1
	}
	r.oneColor = enabled
	r.singleColor = c
	r.backend.Uniform1(r.uniforms[shader.UniformOneColor], flag)
	r.backend.Uniform4(r.uniforms[shader.UniformSingleColor], c)
}

func (r *renderer) SingleColor() (bool, mgl32.Vec4) {
	return r.oneColor, r.singleColor
}

func (r *renderer) ClearColor() mgl32.Vec4 {
	return r.clearColor
}

func (r *renderer) SetClearColor(c mgl32.Vec4) {
	r.clearColor = c
	r.backend.ClearColor(c)
}

func (r *renderer) BeginFrame() {
	r.backend.Clear()
}

func (r *renderer) ReadPixel(x, y int) [4]byte {
	return r.backend.ReadPixel(x, y)
}

func (r *renderer) Resize(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
	r.backend.Viewport(r.width, r.height)
}

func (r *renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *renderer) LiveBuffers() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffers)
}

func (r *renderer) Release() {
	r.mu.Lock()
	for h := range r.buffers {
		r.backend.DeleteBuffer(h)
	}
	clear(r.buffers)
	r.mu.Unlock()

	r.backend.DeleteProgram(r.program)
	r.backend.Release()
}
