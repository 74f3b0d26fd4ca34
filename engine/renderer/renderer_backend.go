package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BufferHandle is an opaque reference to a GPU buffer. Zero is never a valid handle.
type BufferHandle uint32

// ProgramHandle is an opaque reference to a linked shader program. Zero is never a valid handle.
type ProgramHandle uint32

// BufferTarget selects the binding point a buffer is uploaded to.
type BufferTarget int

const (
	// BufferTargetArray holds per-vertex attribute data.
	BufferTargetArray BufferTarget = iota

	// BufferTargetElementArray holds uint32 triangle indices.
	BufferTargetElementArray
)

// RendererBackend is the low-level graphics API the Renderer drives. It mirrors the handful of
// OpenGL entry points the sphere program needs, so a hardware implementation is a thin wrapper
// and a software implementation can execute the same calls on the CPU.
//
// All methods must be called from the thread that owns the graphics context.
type RendererBackend interface {
	// CompileProgram compiles and links a vertex and fragment shader pair.
	//
	// Parameters:
	//   - vertexSource: GLSL vertex shader source
	//   - fragmentSource: GLSL fragment shader source
	//
	// Returns:
	//   - ProgramHandle: the linked program
	//   - error: the compiler or linker log on failure
	CompileProgram(vertexSource, fragmentSource string) (ProgramHandle, error)

	// UseProgram makes p the program for subsequent uniform writes and draws.
	UseProgram(p ProgramHandle)

	// DeleteProgram frees a program.
	DeleteProgram(p ProgramHandle)

	// AttribLocation resolves a vertex input name, or returns -1 if the program has no such input.
	AttribLocation(p ProgramHandle, name string) int32

	// UniformLocation resolves a uniform name, or returns -1 if the program has no such uniform.
	UniformLocation(p ProgramHandle, name string) int32

	// CreateBuffer allocates an empty buffer.
	CreateBuffer() BufferHandle

	// DeleteBuffer frees a buffer. Deleting an unknown handle is a no-op.
	DeleteBuffer(h BufferHandle)

	// UploadBuffer replaces the whole contents of h, bound at target, with data.
	UploadBuffer(h BufferHandle, target BufferTarget, data []byte)

	// VertexAttribPointer feeds the float buffer h into vertex input slot with the given width.
	VertexAttribPointer(h BufferHandle, slot int32, components int32)

	// UniformMatrix4 writes a column-major 4x4 matrix uniform of the current program.
	UniformMatrix4(location int32, m mgl32.Mat4)

	// Uniform4 writes a vec4 uniform of the current program.
	Uniform4(location int32, v mgl32.Vec4)

	// Uniform3 writes a vec3 uniform of the current program.
	Uniform3(location int32, v mgl32.Vec3)

	// Uniform1 writes a float uniform of the current program.
	Uniform1(location int32, v float32)

	// DrawIndexed draws count uint32 indices from the element buffer h as triangles.
	DrawIndexed(h BufferHandle, count int32)

	// ClearColor sets the color Clear fills the color buffer with.
	ClearColor(c mgl32.Vec4)

	// Clear resets the color buffer to the clear color and the depth buffer to the far plane.
	Clear()

	// ReadPixel synchronously reads one RGBA8 pixel of the current framebuffer. The origin is the
	// bottom-left corner. Coordinates outside the framebuffer read as zero.
	ReadPixel(x, y int) [4]byte

	// Viewport sets the framebuffer size in pixels.
	Viewport(width, height int)

	// Release frees every object the backend still owns.
	Release()
}
