package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter spaces backend calls to perSecond on average and lets up to burst
// of them through back to back. It keeps the time the next call is due
// (generic cell rate algorithm) rather than a token count.
type Limiter struct {
	interval  time.Duration
	tolerance time.Duration
	now       func() time.Time

	mu  sync.Mutex
	due time.Time
}

// NewLimiter returns a limiter with a full burst available.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if burst < 1 {
		burst = 1
	}
	interval := time.Hour
	if perSecond > 0 {
		interval = time.Duration(float64(time.Second) / perSecond)
	}
	return &Limiter{
		interval:  interval,
		tolerance: time.Duration(burst-1) * interval,
		now:       time.Now,
	}
}

// reserve admits one call and returns 0, or returns how long until one may be admitted.
func (l *Limiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	due := l.due
	if due.Before(now) {
		due = now
	}
	if wait := due.Add(-l.tolerance).Sub(now); wait > 0 {
		return wait
	}
	l.due = due.Add(l.interval)
	return 0
}

// Wait blocks until the call is admitted or ctx is done. A caller that gives
// up holds no slot.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		wait := l.reserve()
		if wait == 0 {
			return nil
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
