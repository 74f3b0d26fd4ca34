package light

import (
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPosition places the light above, right of and in front of the dish.
var DefaultPosition = mgl32.Vec3{2, 2, 2}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	position  mgl32.Vec3
	color     mgl32.Vec3
	intensity float32
	enabled   bool
}

// Light is the single point light of a scene. Each sphere combines it with its own ambient,
// diffuse and specular coefficients in the Phong fragment stage.
type Light interface {
	// Position returns the world-space position of the light.
	//
	// Returns:
	//   - mgl32.Vec3: position as (x, y, z)
	Position() mgl32.Vec3

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar multiplier applied to the color.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light contributes to shading. The ambient term is scaled by
	// the light color too, so lit objects render black under a disabled light.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Radiance returns the color the shader receives: color × intensity, or black when disabled.
	//
	// Returns:
	//   - mgl32.Vec3: the effective color
	Radiance() mgl32.Vec3

	// SetPosition sets the world-space position.
	SetPosition(p mgl32.Vec3)

	// SetColor sets the RGB color.
	SetColor(c mgl32.Vec3)

	// SetIntensity sets the scalar multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)

	// Apply writes the light uniforms to the renderer.
	//
	// Parameters:
	//   - r: the renderer whose program receives the light
	Apply(r renderer.Renderer)
}

var _ Light = &lightImpl{}

// NewLight creates a white point light at (2, 2, 2).
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the newly created light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		position:  DefaultPosition,
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1,
		enabled:   true,
	}
	for _, opt := range options {
		opt(l)
	}
	return l
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) Radiance() mgl32.Vec3 {
	if !l.enabled {
		return mgl32.Vec3{}
	}
	return l.color.Mul(l.intensity)
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) Apply(r renderer.Renderer) {
	r.SetLight(l.position, l.Radiance())
}
