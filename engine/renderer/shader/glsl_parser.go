package shader

import (
	"regexp"
	"strings"
)

// DeclarationKind is the storage qualifier of a global GLSL variable.
type DeclarationKind string

const (
	// DeclarationIn is a stage input; in a vertex shader it is a vertex attribute.
	DeclarationIn DeclarationKind = "in"

	// DeclarationOut is a stage output.
	DeclarationOut DeclarationKind = "out"

	// DeclarationUniform is a uniform shared by all invocations of a draw.
	DeclarationUniform DeclarationKind = "uniform"
)

// Declaration is one global variable parsed from GLSL source.
type Declaration struct {
	// Kind is the storage qualifier.
	Kind DeclarationKind

	// Type is the GLSL type name, e.g. "vec4" or "mat4".
	Type string

	// Name is the variable name.
	Name string

	// Components is the number of float components of the type, or 0 if the type is not a
	// float scalar, vector or square matrix.
	Components int32
}

// glslComponents maps GLSL float types to their component counts.
var glslComponents = map[string]int32{
	"float": 1,
	"vec2":  2,
	"vec3":  3,
	"vec4":  4,
	"mat2":  4,
	"mat3":  9,
	"mat4":  16,
}

var (
	// versionRegex captures the argument of the #version directive
	versionRegex = regexp.MustCompile(`(?m)^\s*#version\s+([^\n]+?)\s*$`)

	// mainRegex matches the entry point definition
	mainRegex = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)`)

	// declRegex captures qualifier, type and name list from a global declaration such as
	// "uniform vec3 light_point;" or "in vec4 point, color;". Layout and precision
	// qualifiers are skipped.
	declRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(?:flat\s+|smooth\s+|noperspective\s+)?(in|out|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+([\w\s,\[\]]+?)\s*;`)
)

// parseVersion returns the #version argument of cleaned source.
func parseVersion(source string) (string, bool) {
	match := versionRegex.FindStringSubmatch(source)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// parseDeclarations extracts every global in, out and uniform declaration from GLSL source.
// Only declarations at file scope are expected; GLSL forbids these qualifiers on locals.
//
// Parameters:
//   - source: GLSL source with comments already stripped
//
// Returns:
//   - []Declaration: the declarations in source order
func parseDeclarations(source string) []Declaration {
	var out []Declaration
	for _, match := range declRegex.FindAllStringSubmatch(source, -1) {
		kind := DeclarationKind(match[1])
		typ := match[2]
		for name := range strings.SplitSeq(match[3], ",") {
			name = strings.TrimSpace(name)
			if i := strings.IndexByte(name, '['); i >= 0 {
				name = strings.TrimSpace(name[:i])
			}
			if name == "" {
				continue
			}
			out = append(out, Declaration{
				Kind:       kind,
				Type:       typ,
				Name:       name,
				Components: glslComponents[typ],
			})
		}
	}
	return out
}

// stripComments removes line and block comments so they cannot produce false declarations.
//
// Parameters:
//   - source: raw GLSL source string
//
// Returns:
//   - string: source with comments removed
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

// stripLineComments removes single-line // comments.
func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes /* ... */ comments. GLSL block comments do not nest.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	inComment := false
	for i := 0; i < len(source); i++ {
		if i+1 < len(source) {
			if !inComment && source[i] == '/' && source[i+1] == '*' {
				inComment = true
				i++
				continue
			}
			if inComment && source[i] == '*' && source[i+1] == '/' {
				inComment = false
				i++
				continue
			}
		}
		if !inComment {
			sb.WriteByte(source[i])
		} else if source[i] == '\n' {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
