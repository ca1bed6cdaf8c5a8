// Package ratelimit provides a per-client limiter for the financial
// operation class. The limiter is constructed once at startup and injected
// into the services that need it.
package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerMinute is the default financial-op rate limit.
	DefaultRequestsPerMinute = 30
	// DefaultBurstSize is the default burst size.
	DefaultBurstSize = 5
	// CleanupInterval is the interval for cleaning up stale limiters.
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters.
	LimiterTTL = 10 * time.Minute
)

// Limiter manages per-key rate limiting, keyed by the caller's network
// identity.
type Limiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	rateLimit float64
	burstSize int
	stopCh    chan struct{}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter with default settings for financial operations.
func New() *Limiter {
	return NewWithConfig(DefaultRequestsPerMinute, DefaultBurstSize)
}

// NewWithConfig creates a Limiter with custom configuration.
func NewWithConfig(requestsPerMinute, burstSize int) *Limiter {
	l := &Limiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: float64(requestsPerMinute) / 60.0,
		burstSize: burstSize,
		stopCh:    make(chan struct{}),
	}

	go l.cleanup()

	return l
}

// Allow checks whether a request from the given key is allowed. When the
// limit is exhausted it returns false and the delay after which the caller
// should retry.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, exists := l.limiters[key]
	if !exists {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(l.rateLimit), l.burstSize),
		}
		l.limiters[key] = entry
	}
	entry.lastSeen = time.Now()

	if entry.limiter.Allow() {
		return true, 0
	}

	// Approximate time until one token is replenished.
	retryAfter := time.Duration(1.0 / l.rateLimit * float64(time.Second))
	return false, retryAfter
}

// cleanup periodically removes stale limiters to prevent unbounded growth.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, entry := range l.limiters {
				if now.Sub(entry.lastSeen) > LimiterTTL {
					delete(l.limiters, key)
					log.Debug().Str("key", key).Msg("Cleaned up stale rate limiter")
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	close(l.stopCh)
}
