package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// These tests exercise the platform-independent state without opening a GLFW window.

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("dish"), WithWidth(640), WithHeight(480),
		WithMinWidth(100), WithMinHeight(50), WithVSync(true),
	} {
		opt(w)
	}
	assert.Equal(t, "dish", w.title)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.Equal(t, 100, w.minWidth)
	assert.Equal(t, 50, w.minHeight)
	assert.True(t, w.vsync)
}

func TestResizedRecordsBothSizes(t *testing.T) {
	w := &engineWindow{}
	var got [4]int
	w.SetResizeCallback(func(ww, wh, fw, fh int) { got = [4]int{ww, wh, fw, fh} })

	w.resized(800, 600, 1600, 1200)
	assert.Equal(t, [4]int{800, 600, 1600, 1200}, got)
	fw, fh := w.FramebufferSize()
	assert.Equal(t, 1600, fw)
	assert.Equal(t, 1200, fh)
	assert.Equal(t, 800, w.Width())
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	assert.False(t, w.IsRunning())
	assert.False(t, w.PollEvents())
	assert.Error(t, w.Close())
	w.SwapBuffers()

	calls := 0
	w.SetUpdateCallback(func() { calls++ })
	w.ProcessMessages()
	assert.Equal(t, 0, calls)
}
