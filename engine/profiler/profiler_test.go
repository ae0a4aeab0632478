package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickSamplesOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithQuiet(true), WithInterval(500*time.Millisecond), WithClock(func() time.Time { return now }))

	for i := 0; i < 49; i++ {
		now = now.Add(10 * time.Millisecond)
		_, ok := p.Tick()
		require.False(t, ok, "frame %d", i)
	}

	now = now.Add(10 * time.Millisecond)
	s, ok := p.Tick()
	require.True(t, ok)
	assert.InDelta(t, 100, s.FPS, 0.01)
	assert.InDelta(t, 10, s.FrameTimeMs, 0.01)
	assert.Greater(t, s.SysMB, 0.0)

	now = now.Add(10 * time.Millisecond)
	_, ok = p.Tick()
	assert.False(t, ok, "counter resets after a sample")
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)

	p = NewProfiler(WithInterval(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
