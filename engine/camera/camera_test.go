package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVec3Near(t *testing.T, want, got mgl32.Vec3, msg string) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "%s component %d", msg, i)
	}
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, c.Eye())
	assert.Equal(t, mgl32.Vec3{}, c.Target())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, c.Up())
	assert.InDelta(t, 55*3.14159265/180, c.Fov(), 1e-5)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.InDelta(t, 3, c.PivotDistance(), 1e-6)

	assertVec3Near(t, mgl32.Vec3{0, 0, -3}, transformPoint(c.ViewMatrix(), mgl32.Vec3{}), "origin in view space")
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(55), 1, 0.1, 100), c.ProjectionMatrix())
}

func TestCameraSettersRecomputeProjection(t *testing.T) {
	c := NewCamera(WithAspect(2))
	before := c.ProjectionMatrix()

	c.SetAspect(1)
	assert.NotEqual(t, before, c.ProjectionMatrix())
	assert.Equal(t, mgl32.Perspective(c.Fov(), 1, 0.1, 100), c.ProjectionMatrix())

	c.SetFar(10)
	c.SetNear(1)
	c.SetFov(1)
	assert.Equal(t, mgl32.Perspective(1, 1, 1, 10), c.ProjectionMatrix())
	assert.Equal(t, c.ProjectionMatrix().Mul4(c.ViewMatrix()), c.ViewProjectionMatrix())
}

func TestSetViewAndReset(t *testing.T) {
	c := NewCamera()
	initial := c.ViewMatrix()

	c.SetView(mgl32.Ident4())
	assert.Equal(t, mgl32.Ident4(), c.ViewMatrix())

	c.ResetView()
	assert.Equal(t, initial, c.ViewMatrix())
}

func TestArcballRadius(t *testing.T) {
	ac := NewArcballController(NewCamera(), WithViewport(800, 600))
	assert.Equal(t, float32(295), ac.ArcballRadius())

	ac.SetViewport(100, 400)
	assert.Equal(t, float32(45), ac.ArcballRadius())
}

func TestDragFollowsPointerAndKeepsPivot(t *testing.T) {
	c := NewCamera()
	ac := NewArcballController(c, WithViewport(600, 600))

	ac.BeginDrag(300, 300)
	assert.True(t, ac.Dragging())
	ac.Drag(400, 300)

	view := c.ViewMatrix()
	assertVec3Near(t, mgl32.Vec3{0, 0, -3}, transformPoint(view, mgl32.Vec3{}), "pivot")

	front := transformPoint(view, mgl32.Vec3{0, 0, 1})
	assert.Greater(t, front[0], float32(0), "dish front follows a rightward drag")
	assert.InDelta(t, 0, front[1], 1e-5)

	ac.Drag(300, 200)
	front = transformPoint(c.ViewMatrix(), mgl32.Vec3{0, 0, 1})
	assert.Greater(t, front[1], float32(0), "dish front follows an upward drag")

	ac.EndDrag()
	assert.False(t, ac.Dragging())
	after := c.ViewMatrix()
	ac.Drag(0, 0)
	assert.Equal(t, after, c.ViewMatrix(), "drag without a press does nothing")
}

func TestDragBackToStartRestoresStash(t *testing.T) {
	c := NewCamera()
	ac := NewArcballController(c, WithViewport(600, 600))
	initial := c.ViewMatrix()

	ac.BeginDrag(250, 320)
	ac.Drag(420, 100)
	assert.NotEqual(t, initial, c.ViewMatrix())

	ac.Drag(250, 320)
	assert.Equal(t, initial, c.ViewMatrix())
}

func TestDragsAccumulate(t *testing.T) {
	c := NewCamera()
	ac := NewArcballController(c, WithViewport(600, 600))

	ac.BeginDrag(300, 300)
	ac.Drag(350, 300)
	ac.EndDrag()
	first := c.ViewMatrix()

	ac.BeginDrag(300, 300)
	ac.Drag(350, 300)
	ac.EndDrag()

	assert.NotEqual(t, first, c.ViewMatrix())
	front := transformPoint(c.ViewMatrix(), mgl32.Vec3{0, 0, 1})
	frontOnce := transformPoint(first, mgl32.Vec3{0, 0, 1})
	assert.Greater(t, front[0], frontOnce[0])
}

func TestOrbitStepsCancel(t *testing.T) {
	c := NewCamera()
	ac := NewArcballController(c, WithOrbitSpeed(0.1))
	initial := c.ViewMatrix()

	ac.OrbitLeft()
	front := transformPoint(c.ViewMatrix(), mgl32.Vec3{0, 0, 1})
	assert.Less(t, front[0], float32(0))
	ac.OrbitRight()

	ac.OrbitUp()
	front = transformPoint(c.ViewMatrix(), mgl32.Vec3{0, 0, 1})
	assert.Greater(t, front[1], float32(0))
	ac.OrbitDown()

	assert.True(t, initial.ApproxEqualThreshold(c.ViewMatrix(), 1e-5))
	assert.Equal(t, float32(0.1), ac.OrbitSpeed())
}
