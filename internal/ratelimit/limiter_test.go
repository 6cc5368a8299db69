package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestTokenBucket_BurstThenRefill(t *testing.T) {
	clock := newFakeClock()
	b := newTokenBucket(2, 1, clock.now)

	assert.True(t, b.TryConsume(1))
	assert.True(t, b.TryConsume(1))
	assert.False(t, b.TryConsume(1))
	assert.Equal(t, time.Second, b.RetryAfter(1))

	clock.advance(500 * time.Millisecond)
	assert.False(t, b.TryConsume(1))
	assert.InDelta(t, 0.5, b.Available(), 1e-9)

	clock.advance(500 * time.Millisecond)
	assert.True(t, b.TryConsume(1))
}

func TestTokenBucket_CapacityIsCeiling(t *testing.T) {
	clock := newFakeClock()
	b := newTokenBucket(3, 10, clock.now)

	clock.advance(time.Hour)
	assert.InDelta(t, 3, b.Available(), 1e-9)

	assert.True(t, b.TryConsume(3))
	b.Reset()
	assert.InDelta(t, 3, b.Available(), 1e-9)
}

func TestLimiter_Allow(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(Config{RequestsPerMinute: 60, Burst: 2}, clock.now)

	ok, _ := l.Allow()
	assert.True(t, ok)
	ok, _ = l.Allow()
	assert.True(t, ok)

	ok, wait := l.Allow()
	assert.False(t, ok)
	assert.Equal(t, time.Second, wait)

	clock.advance(time.Second)
	ok, _ = l.Allow()
	assert.True(t, ok)

	assert.Equal(t, Stats{Allowed: 3, Blocked: 1}, l.Stats())
}

func TestLimiter_ZeroBurstMeansOne(t *testing.T) {
	l := newLimiter(Config{RequestsPerMinute: 1}, newFakeClock().now)
	ok, _ := l.Allow()
	assert.True(t, ok)
	ok, _ = l.Allow()
	assert.False(t, ok)
}

func TestNewLimiter_Disabled(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	assert.Nil(t, l)

	for i := 0; i < 100; i++ {
		ok, wait := l.Allow()
		assert.True(t, ok)
		assert.Zero(t, wait)
	}
	assert.Equal(t, Stats{}, l.Stats())
}
