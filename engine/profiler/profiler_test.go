package profiler

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickLogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	now := time.Unix(0, 0)
	p := NewProfiler(WithInterval(time.Second), WithObjectCounter(func() int { return 7 }))
	p.now = func() time.Time { return now }
	p.lastTime = now

	for i := 0; i < 29; i++ {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = now.Add(time.Second)
	assert.True(t, p.Tick())

	out := buf.String()
	assert.Contains(t, out, "[Profiler] FPS:")
	assert.Contains(t, out, "Objects: 7")
	assert.False(t, p.Tick(), "frame count resets after logging")
}
