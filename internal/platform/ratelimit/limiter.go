// Package ratelimit provides a sliding-window admission gate keyed by an
// arbitrary string, typically the client IP.
//
// This is a best-effort, single-process gate. When the service is replicated
// a shared limiter (Redis or similar) must front it instead; that is a
// deployment concern, not ours.
package ratelimit

import (
	"sync"
	"time"

	"rakugaki/internal/platform/logger"
)

// Config configures a Limiter
type Config struct {
	// MaxRequests is the number of requests allowed per key per window
	MaxRequests int
	// Window is the sliding window size
	Window time.Duration
	// CleanupInterval is how often expired records are purged.
	// Zero means use the window size.
	CleanupInterval time.Duration
}

// Result is the outcome of one admission check
type Result struct {
	// Allowed reports whether the request may proceed
	Allowed bool
	// Remaining is the quota left in the current window
	Remaining int
	// ResetAfter is the time until the window resets
	ResetAfter time.Duration
}

type record struct {
	count   int
	resetAt time.Time
}

// Limiter is a mutex-guarded sliding-window limiter with a background sweep.
// Construct with New and release with Close so the sweep goroutine stops.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record
	cfg     Config
	log     logger.Logger

	now  func() time.Time // seam for tests
	done chan struct{}
	wg   sync.WaitGroup
}

// New creates a Limiter and starts its cleanup sweep
func New(cfg Config, log logger.Logger) *Limiter {
	if cfg.MaxRequests <= 0 {
		panic("ratelimit: MaxRequests must be positive")
	}
	if cfg.Window <= 0 {
		panic("ratelimit: Window must be positive")
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = cfg.Window
	}
	l := &Limiter{
		records: make(map[string]*record),
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	l.wg.Add(1)
	go l.sweep()
	return l
}

// Check records an attempt for key and reports whether it is admitted
func (l *Limiter) Check(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]

	// no record yet, or the previous window elapsed: start fresh
	if !ok || now.After(rec.resetAt) {
		l.records[key] = &record{count: 1, resetAt: now.Add(l.cfg.Window)}
		return Result{
			Allowed:    true,
			Remaining:  l.cfg.MaxRequests - 1,
			ResetAfter: l.cfg.Window,
		}
	}

	if rec.count >= l.cfg.MaxRequests {
		return Result{
			Allowed:    false,
			Remaining:  0,
			ResetAfter: rec.resetAt.Sub(now),
		}
	}

	rec.count++
	return Result{
		Allowed:    true,
		Remaining:  l.cfg.MaxRequests - rec.count,
		ResetAfter: rec.resetAt.Sub(now),
	}
}

// Reset clears the record for one key
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.records, key)
	l.mu.Unlock()
}

// Clear drops all records
func (l *Limiter) Clear() {
	l.mu.Lock()
	l.records = make(map[string]*record)
	l.mu.Unlock()
}

// ActiveKeys reports how many keys currently hold a record
func (l *Limiter) ActiveKeys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Close stops the cleanup sweep. Safe to call once.
func (l *Limiter) Close() {
	close(l.done)
	l.wg.Wait()
}

// sweep purges expired records on the cleanup interval
func (l *Limiter) sweep() {
	defer l.wg.Done()
	t := time.NewTicker(l.cfg.CleanupInterval)
	defer t.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-t.C:
			l.purgeExpired()
		}
	}
}

func (l *Limiter) purgeExpired() {
	l.mu.Lock()
	now := l.now()
	purged := 0
	for k, rec := range l.records {
		if now.After(rec.resetAt) {
			delete(l.records, k)
			purged++
		}
	}
	l.mu.Unlock()
	if purged > 0 {
		l.log.Debug().Int("purged", purged).Msg("expired records purged")
	}
}
