package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// arcballEpsilon matches the tolerance used to decide that a drag has not moved.
const arcballEpsilon = 1e-6

type arcballControllerImpl struct {
	mu *sync.Mutex

	camera Camera

	width  int
	height int
	margin float32

	dragging bool
	start    mgl32.Vec3
	stash    mgl32.Mat4

	orbitSpeed float32
}

// Compile-time interface compliance check
var _ ArcballController = &arcballControllerImpl{}

// NewArcballController creates a controller that rotates cam's view.
//
// Parameters:
//   - cam: the camera whose view is rotated
//   - options: functional options to configure the controller
//
// Returns:
//   - ArcballController: the newly created controller
func NewArcballController(cam Camera, options ...CameraControllerOption) ArcballController {
	ac := &arcballControllerImpl{
		mu:         &sync.Mutex{},
		camera:     cam,
		width:      800,
		height:     600,
		margin:     10,
		orbitSpeed: 0.03,
	}
	for _, option := range options {
		option(ac)
	}
	return ac
}

// --- internal helpers ---

// radius returns the arcball radius. Caller must hold the mutex.
func (ac *arcballControllerImpl) radius() float32 {
	return (float32(min(ac.width, ac.height)) - ac.margin) / 2
}

// project maps a window position onto the unit arcball. Points outside the ball land on its
// silhouette. Caller must hold the mutex.
func (ac *arcballControllerImpl) project(x, y float32) mgl32.Vec3 {
	p := mgl32.Vec3{x - float32(ac.width)/2, float32(ac.height)/2 - y, 0}
	r := ac.radius()
	d2 := p[0]*p[0] + p[1]*p[1]
	if r2 := r * r; d2 < r2 {
		p[2] = math32.Sqrt(r2 - d2)
	}
	if p.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return p.Normalize()
}

// aboutPivot wraps a rotation so it turns the scene about the camera target.
func (ac *arcballControllerImpl) aboutPivot(rot mgl32.Mat4, view mgl32.Mat4) mgl32.Mat4 {
	d := ac.camera.PivotDistance()
	return mgl32.Translate3D(0, 0, -d).Mul4(rot).Mul4(mgl32.Translate3D(0, 0, d)).Mul4(view)
}

// orbit applies one orbit step to the live view. Caller must hold the mutex.
func (ac *arcballControllerImpl) orbit(angle float32, axis mgl32.Vec3) {
	view := ac.camera.ViewMatrix()
	ac.camera.SetView(ac.aboutPivot(mgl32.HomogRotate3D(angle, axis), view))
}

// --- ArcballController implementation ---

func (ac *arcballControllerImpl) BeginDrag(x, y float32) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.stash = ac.camera.ViewMatrix()
	ac.start = ac.project(x, y)
	ac.dragging = true
}

func (ac *arcballControllerImpl) Drag(x, y float32) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	if !ac.dragging {
		return
	}

	end := ac.project(x, y)
	axis := ac.start.Cross(end)
	if ac.start.ApproxEqualThreshold(end, arcballEpsilon) || axis.Len() < arcballEpsilon {
		ac.camera.SetView(ac.stash)
		return
	}
	angle := math32.Acos(mgl32.Clamp(ac.start.Dot(end), -1, 1))
	ac.camera.SetView(ac.aboutPivot(mgl32.HomogRotate3D(angle, axis.Normalize()), ac.stash))
}

func (ac *arcballControllerImpl) EndDrag() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.dragging = false
}

func (ac *arcballControllerImpl) Dragging() bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.dragging
}

func (ac *arcballControllerImpl) OrbitLeft() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.orbit(-ac.orbitSpeed, mgl32.Vec3{0, 1, 0})
}

func (ac *arcballControllerImpl) OrbitRight() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.orbit(ac.orbitSpeed, mgl32.Vec3{0, 1, 0})
}

func (ac *arcballControllerImpl) OrbitUp() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.orbit(-ac.orbitSpeed, mgl32.Vec3{1, 0, 0})
}

func (ac *arcballControllerImpl) OrbitDown() {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.orbit(ac.orbitSpeed, mgl32.Vec3{1, 0, 0})
}

func (ac *arcballControllerImpl) SetViewport(width, height int) {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	ac.width = width
	ac.height = height
}

func (ac *arcballControllerImpl) ArcballRadius() float32 {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.radius()
}

func (ac *arcballControllerImpl) OrbitSpeed() float32 {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.orbitSpeed
}
