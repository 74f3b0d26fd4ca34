package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the initial clear color. The default is transparent black.
//
// Parameters:
//   - c: the RGBA clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithShaderSources replaces the embedded sphere program. The sources must still declare every
// vertex input and uniform the renderer resolves, otherwise NewRenderer fails.
//
// Parameters:
//   - vertexSource: GLSL vertex shader source
//   - fragmentSource: GLSL fragment shader source
//
// Returns:
//   - RendererBuilderOption: a function that applies the shader sources option to a renderer
func WithShaderSources(vertexSource, fragmentSource string) RendererBuilderOption {
	return func(r *renderer) {
		r.vertexSource = vertexSource
		r.fragmentSource = fragmentSource
	}
}
