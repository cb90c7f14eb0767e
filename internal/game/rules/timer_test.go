package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimerCountsDown(t *testing.T) {
	timer := NewTimer(500 * time.Millisecond)
	assert.False(t, timer.Expired())
	assert.True(t, timer.Running())

	timer.Update(200 * time.Millisecond)
	assert.False(t, timer.Expired())
	assert.Equal(t, 300*time.Millisecond, timer.Remaining())
	assert.InDelta(t, 0.4, timer.Progress(), 0.0001)

	timer.Update(400 * time.Millisecond)
	assert.True(t, timer.Expired())
	assert.False(t, timer.Running())
	assert.Equal(t, time.Duration(0), timer.Remaining())
}

func TestTimerResetAndStop(t *testing.T) {
	timer := NewTimer(time.Second)
	timer.Stop()
	assert.True(t, timer.Expired())

	timer.Reset()
	assert.False(t, timer.Expired())
	assert.Equal(t, time.Second, timer.Remaining())

	timer.Restart(2 * time.Second)
	timer.Update(time.Second)
	assert.Equal(t, time.Second, timer.Remaining())
}

func TestNilTimerIsExpired(t *testing.T) {
	var timer *Timer
	timer.Update(time.Second)
	assert.True(t, timer.Expired())
	assert.Equal(t, 1.0, timer.Progress())
}
