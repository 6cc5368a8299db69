package ratelimit

import (
	"sync/atomic"
	"time"
)

// Config holds the chat limiter settings. RequestsPerMinute <= 0 disables
// limiting.
type Config struct {
	RequestsPerMinute int
	Burst             int
}

// DefaultConfig returns a disabled limiter configuration.
func DefaultConfig() Config {
	return Config{Burst: 1}
}

// Limiter admits or rejects requests. A nil *Limiter admits everything.
type Limiter struct {
	bucket *TokenBucket

	allowed atomic.Int64
	blocked atomic.Int64
}

// Stats is a snapshot of limiter counters.
type Stats struct {
	Allowed int64
	Blocked int64
}

// NewLimiter returns a limiter for cfg, or nil when limiting is disabled.
func NewLimiter(cfg Config) *Limiter {
	if cfg.RequestsPerMinute <= 0 {
		return nil
	}
	return newLimiter(cfg, time.Now)
}

func newLimiter(cfg Config, now func() time.Time) *Limiter {
	burst := float64(cfg.Burst)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		bucket: newTokenBucket(burst, float64(cfg.RequestsPerMinute)/60.0, now),
	}
}

// Allow reports whether one more request may proceed now. When it may not,
// the returned duration says when to retry.
func (l *Limiter) Allow() (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	if l.bucket.TryConsume(1) {
		l.allowed.Add(1)
		return true, 0
	}
	l.blocked.Add(1)
	return false, l.bucket.RetryAfter(1)
}

// Stats returns the counters since creation.
func (l *Limiter) Stats() Stats {
	if l == nil {
		return Stats{}
	}
	return Stats{Allowed: l.allowed.Load(), Blocked: l.blocked.Load()}
}
