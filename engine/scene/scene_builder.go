package scene

import (
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/camera"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/light"
	"github.com/AhmadRazaJamal/Bacteria-Basher-3D-game/engine/sphere"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithLight sets the scene's point light. Defaults to light.NewLight().
//
// Parameters:
//   - l: the light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lamp = l
	}
}

// WithController sets the arcball controller. Defaults to one bound to the scene camera.
//
// Parameters:
//   - c: the controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithController(c camera.ArcballController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = c
	}
}

// WithDish sets the initial dish.
//
// Parameters:
//   - d: the dish sphere
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithDish(d sphere.Sphere) SceneBuilderOption {
	return func(s *scene) {
		s.dish = d
	}
}

// WithWindowSize sets the window size used to convert pointer positions to framebuffer pixels.
// Defaults to the renderer's framebuffer size.
//
// Parameters:
//   - width, height: window size in screen coordinates
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWindowSize(width, height int) SceneBuilderOption {
	return func(s *scene) {
		s.windowWidth = max(width, 1)
		s.windowHeight = max(height, 1)
	}
}
