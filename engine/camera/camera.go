package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Default view settings.
const (
	DefaultFovDegrees = 55.0
	DefaultNear       = 0.1
	DefaultFar        = 100.0
)

// DefaultEye is the camera position, three units in front of the dish.
var DefaultEye = mgl32.Vec3{0, 0, 3}

type cameraImpl struct {
	mu *sync.Mutex

	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
}

// Camera holds the perspective settings and the view matrix. The view starts as a look-at from
// the eye to the target and may then be replaced wholesale, for example by an arcball drag.
type Camera interface {
	// Eye returns the camera position used by the initial look-at.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space eye
	Eye() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space target
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// PivotDistance returns the distance from the eye to the target, the depth the arcball
	// rotates around.
	PivotDistance() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection × view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SetView replaces the view matrix.
	//
	// Parameters:
	//   - m: the new view matrix
	SetView(m mgl32.Mat4)

	// ResetView restores the look-at view from eye, target and up.
	ResetView()

	// SetFov sets the field of view in radians and recomputes the projection.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio and recomputes the projection.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes the projection.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection.
	SetFar(far float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera looking from (0, 0, 3) at the origin with a 55° field of view.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		eye:    DefaultEye,
		up:     mgl32.Vec3{0, 1, 0},
		fov:    mgl32.DegToRad(DefaultFovDegrees),
		aspect: 1.0,
		near:   DefaultNear,
		far:    DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.viewMatrix = c.lookAt()
	c.updateProjection()
	return c
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) PivotDistance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye.Sub(c.target).Len()
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) SetView(m mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = m
}

func (c *cameraImpl) ResetView() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMatrix = c.lookAt()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateProjection()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateProjection()
}

// lookAt builds the initial view. Caller must hold the mutex.
func (c *cameraImpl) lookAt() mgl32.Mat4 {
	return mgl32.LookAtV(c.eye, c.target, c.up)
}

// updateProjection recomputes the perspective matrix. Caller must hold the mutex.
func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}
