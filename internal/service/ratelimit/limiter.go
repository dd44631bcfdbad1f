package ratelimit

import (
	"context"
	"sync"
	"time"

	"FlipCheck/internal/domain/repository"
)

const pruneThreshold = 1024

// bucket counts its token in elapsed time: a full token is one interval.
type bucket struct {
	credit time.Duration
	last   time.Time
}

// Limiter is an in-memory token bucket per key. Each bucket holds one token
// and refills one token per interval.
type Limiter struct {
	mu       sync.Mutex
	m        map[string]*bucket
	interval time.Duration
	now      func() time.Time
}

func New(interval time.Duration) *Limiter {
	return &Limiter{m: make(map[string]*bucket), interval: interval, now: time.Now}
}

// Allow consumes the key's token if present. When denied it reports how long
// until the next token.
func (l *Limiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	if l.interval <= 0 {
		return true, 0, nil
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		if len(l.m) >= pruneThreshold {
			l.pruneLocked(now)
		}
		b = &bucket{credit: l.interval, last: now}
		l.m[key] = b
	}
	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.credit = min(l.interval, b.credit+elapsed)
		b.last = now
	}
	if b.credit >= l.interval {
		b.credit -= l.interval
		return true, 0, nil
	}
	return false, l.interval - b.credit, nil
}

// Prune drops full buckets so idle users do not accumulate. Allow also
// prunes once the map reaches pruneThreshold keys.
func (l *Limiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked(l.now())
}

func (l *Limiter) pruneLocked(now time.Time) {
	for k, b := range l.m {
		if now.Sub(b.last) >= l.interval {
			delete(l.m, k)
		}
	}
}

var _ repository.RateLimiter = (*Limiter)(nil)
