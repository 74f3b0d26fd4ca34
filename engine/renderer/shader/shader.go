package shader

import (
	_ "embed"
	"fmt"

	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/common"
)

// ShaderType identifies the pipeline stage a shader runs in.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage; its inputs are the per-vertex attributes.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage, paired with a vertex shader in a program.
	ShaderTypeFragment
)

// Names of the vertex inputs every sphere program declares.
const (
	AttribPoint  = "point"
	AttribColor  = "color"
	AttribNormal = "normal"
)

// Names of the uniforms every sphere program declares.
const (
	UniformModelMatrix      = "modelMatrix"
	UniformViewMatrix       = "viewMatrix"
	UniformProjectionMatrix = "projectionMatrix"
	UniformOneColor         = "oneColor"
	UniformSingleColor      = "single_color"
	UniformLightPoint       = "light_point"
	UniformLightColor       = "light_color"
	UniformLightAmbient     = "light_ambient"
	UniformLightDiffuse     = "light_diffuse"
	UniformLightSpecular    = "light_specular"
)

// Attributes lists the vertex inputs in the order the buffers are bound.
var Attributes = []string{AttribPoint, AttribColor, AttribNormal}

// Uniforms lists every uniform a renderer must be able to resolve.
var Uniforms = []string{
	UniformModelMatrix,
	UniformViewMatrix,
	UniformProjectionMatrix,
	UniformOneColor,
	UniformSingleColor,
	UniformLightPoint,
	UniformLightColor,
	UniformLightAmbient,
	UniformLightDiffuse,
	UniformLightSpecular,
}

//go:embed assets/sphere.vert
var sphereVertexSource string

//go:embed assets/sphere.frag
var sphereFragmentSource string

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	shaderType   ShaderType
	version      string
	declarations []Declaration
}

// Shader is a parsed GLSL stage. It keeps the source for the device compiler and the
// declarations extracted from it, so a backend without a real GLSL compiler can still
// resolve names and a renderer can check the contract before the first draw.
type Shader interface {
	// Key retrieves the unique identifier for this shader.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source retrieves the GLSL source code.
	//
	// Returns:
	//   - string: the source
	Source() string

	// ShaderType returns the stage of the shader.
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType

	// Version returns the #version directive value, e.g. "410 core".
	Version() string

	// Declarations returns every in, out and uniform declaration in source order.
	//
	// Returns:
	//   - []Declaration: the parsed declarations
	Declarations() []Declaration

	// Inputs returns the stage inputs.
	Inputs() []Declaration

	// Uniforms returns the uniform declarations.
	Uniforms() []Declaration

	// Lookup finds a declaration of the given kind by name.
	//
	// Parameters:
	//   - kind: the storage qualifier to match
	//   - name: the variable name
	//
	// Returns:
	//   - Declaration: the declaration if found
	//   - bool: true if found
	Lookup(kind DeclarationKind, name string) (Declaration, bool)
}

var _ Shader = &shader{}

// NewShader parses a GLSL stage from source.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage
//   - source: the GLSL source
//
// Returns:
//   - Shader: the parsed shader
//   - error: a wrapped common.ErrConfiguration if the source has no #version directive or no main
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	cleaned := stripComments(source)
	version, ok := parseVersion(cleaned)
	if !ok {
		return nil, fmt.Errorf("%w: shader %s has no #version directive", common.ErrConfiguration, key)
	}
	if !mainRegex.MatchString(cleaned) {
		return nil, fmt.Errorf("%w: shader %s has no main function", common.ErrConfiguration, key)
	}
	return &shader{
		key:          key,
		source:       source,
		shaderType:   shaderType,
		version:      version,
		declarations: parseDeclarations(cleaned),
	}, nil
}

// SphereSources returns the embedded vertex and fragment sources of the sphere program.
//
// Returns:
//   - string: the vertex source
//   - string: the fragment source
func SphereSources() (string, string) {
	return sphereVertexSource, sphereFragmentSource
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Version() string {
	return s.version
}

func (s *shader) Declarations() []Declaration {
	return s.declarations
}

func (s *shader) Inputs() []Declaration {
	return s.filter(DeclarationIn)
}

func (s *shader) Uniforms() []Declaration {
	return s.filter(DeclarationUniform)
}

func (s *shader) Lookup(kind DeclarationKind, name string) (Declaration, bool) {
	for _, d := range s.declarations {
		if d.Kind == kind && d.Name == name {
			return d, true
		}
	}
	return Declaration{}, false
}

func (s *shader) filter(kind DeclarationKind) []Declaration {
	var out []Declaration
	for _, d := range s.declarations {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}
