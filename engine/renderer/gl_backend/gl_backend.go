// Package gl_backend implements the RendererBackend on OpenGL 4.1 core.
package gl_backend

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// glBackend is the implementation of renderer.RendererBackend on a current OpenGL context.
type glBackend struct {
	vao      uint32
	programs map[renderer.ProgramHandle]struct{}
	buffers  map[renderer.BufferHandle]struct{}
}

var _ renderer.RendererBackend = &glBackend{}

// NewGLBackend loads the OpenGL function pointers and sets the fixed pipeline state: one vertex
// array object for the lifetime of the context, depth test LESS, no face culling.
// The context must be current on the calling thread, and every later call must come from it.
//
// Returns:
//   - renderer.RendererBackend: the backend
//   - error: an error if the GL functions could not be loaded
func NewGLBackend() (renderer.RendererBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	log.Printf("[Renderer] OpenGL %s, GLSL %s",
		gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	b := &glBackend{
		programs: make(map[renderer.ProgramHandle]struct{}),
		buffers:  make(map[renderer.BufferHandle]struct{}),
	}

	// The core profile refuses to draw without a bound vertex array object.
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	return b, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(sh, 1, csources, nil)
	free()
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(buf))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return sh, nil
}

func (b *glBackend) CompileProgram(vertexSource, fragmentSource string) (renderer.ProgramHandle, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}

	h := renderer.ProgramHandle(program)
	b.programs[h] = struct{}{}
	return h, nil
}

func (b *glBackend) UseProgram(p renderer.ProgramHandle) {
	gl.UseProgram(uint32(p))
}

func (b *glBackend) DeleteProgram(p renderer.ProgramHandle) {
	if _, ok := b.programs[p]; !ok {
		return
	}
	delete(b.programs, p)
	gl.DeleteProgram(uint32(p))
}

func (b *glBackend) AttribLocation(p renderer.ProgramHandle, name string) int32 {
	return gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
}

func (b *glBackend) UniformLocation(p renderer.ProgramHandle, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (b *glBackend) CreateBuffer() renderer.BufferHandle {
	var id uint32
	gl.GenBuffers(1, &id)
	h := renderer.BufferHandle(id)
	b.buffers[h] = struct{}{}
	return h
}

func (b *glBackend) DeleteBuffer(h renderer.BufferHandle) {
	if _, ok := b.buffers[h]; !ok {
		return
	}
	delete(b.buffers, h)
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

func glTarget(target renderer.BufferTarget) uint32 {
	if target == renderer.BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (b *glBackend) UploadBuffer(h renderer.BufferHandle, target renderer.BufferTarget, data []byte) {
	t := glTarget(target)
	gl.BindBuffer(t, uint32(h))
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(t, len(data), ptr, gl.STATIC_DRAW)
}

func (b *glBackend) VertexAttribPointer(h renderer.BufferHandle, slot int32, components int32) {
	if slot < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(h))
	gl.EnableVertexAttribArray(uint32(slot))
	gl.VertexAttribPointer(uint32(slot), components, gl.FLOAT, false, 0, nil)
}

func (b *glBackend) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *glBackend) Uniform4(location int32, v mgl32.Vec4) {
	gl.Uniform4fv(location, 1, &v[0])
}

func (b *glBackend) Uniform3(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (b *glBackend) Uniform1(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackend) DrawIndexed(h renderer.BufferHandle, count int32) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(h))
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (b *glBackend) ClearColor(c mgl32.Vec4) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
}

func (b *glBackend) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (b *glBackend) ReadPixel(x, y int) [4]byte {
	var px [4]byte
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

func (b *glBackend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *glBackend) Release() {
	for h := range b.buffers {
		b.DeleteBuffer(h)
	}
	for p := range b.programs {
		b.DeleteProgram(p)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}
