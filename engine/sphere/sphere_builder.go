package sphere

import (
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/mesh"
	"github.com/go-gl/mathgl/mgl32"
)

// SphereBuilderOption is a functional option for configuring a Sphere during construction.
type SphereBuilderOption func(*sphere)

// WithID sets the picking identity of the Sphere.
//
// Parameters:
//   - id: the id; 0 marks an object a pick can never report
//
// Returns:
//   - SphereBuilderOption: functional option to set the ID
func WithID(id uint32) SphereBuilderOption {
	return func(s *sphere) {
		s.id = id
	}
}

// WithCenter sets the initial translation.
//
// Parameters:
//   - c: the world-space center
//
// Returns:
//   - SphereBuilderOption: functional option to set the center
func WithCenter(c mgl32.Vec3) SphereBuilderOption {
	return func(s *sphere) {
		s.translation = c
	}
}

// WithRadius sets a uniform initial scale.
//
// Parameters:
//   - r: the radius
//
// Returns:
//   - SphereBuilderOption: functional option to set the radius
func WithRadius(r float32) SphereBuilderOption {
	return func(s *sphere) {
		s.scale = mgl32.Vec3{r, r, r}
	}
}

// WithColors sets the gradient endpoints. Ignored when WithGeometry supplies a prebuilt mesh.
//
// Parameters:
//   - start: the color at the bottom pole
//   - stop: the color at the top pole
//
// Returns:
//   - SphereBuilderOption: functional option to set the gradient
func WithColors(start, stop mgl32.Vec4) SphereBuilderOption {
	return func(s *sphere) {
		s.colorStart = start
		s.colorStop = stop
	}
}

// WithResolution sets the subdivision depth. Ignored when WithGeometry supplies a prebuilt mesh.
//
// Parameters:
//   - depth: the depth, checked against mesh.MaxDepth by NewSphere
//
// Returns:
//   - SphereBuilderOption: functional option to set the depth
func WithResolution(depth int) SphereBuilderOption {
	return func(s *sphere) {
		s.depth = depth
	}
}

// WithLighting sets the Phong coefficients.
//
// Parameters:
//   - ambient: the glow coefficient
//   - diffuse: the light scattering coefficient
//   - specular: the light reflection coefficient
//
// Returns:
//   - SphereBuilderOption: functional option to set the lighting
func WithLighting(ambient, diffuse, specular float32) SphereBuilderOption {
	return func(s *sphere) {
		s.lighting = Lighting{Ambient: ambient, Diffuse: diffuse, Specular: specular}
	}
}

// WithGeometry uses a prebuilt mesh instead of subdividing on construction. The geometry is
// cloned so the Sphere owns its arrays; depth and colors are taken from g.Request.
//
// Parameters:
//   - g: the geometry, typically from mesh.Builder.BuildBatch
//
// Returns:
//   - SphereBuilderOption: functional option to set the geometry
func WithGeometry(g mesh.Geometry) SphereBuilderOption {
	return func(s *sphere) {
		s.geometry = g.Clone()
		s.prebuilt = true
		s.depth = g.Request.Depth
		s.colorStart = g.Request.ColorStart
		s.colorStop = g.Request.ColorStop
	}
}
