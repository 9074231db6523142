// Package ratelimit implements a fixed-window admission limiter keyed by
// client identity.
//
// Windows live in process memory only. Losing them on restart is acceptable:
// this is a soft abuse guard in front of outbound email delivery, not a
// billing ledger.
package ratelimit

import (
	"sync"
	"time"

	"github.com/putrafajarh/mailgate/internal/pkg/clock"
)

// sweep the window map opportunistically once it grows past this many keys.
const sweepThreshold = 1024

// Decision is the outcome of an admission check.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// RetryAfter is how long the client should wait before retrying when the
	// request was denied. Zero when Allowed.
	RetryAfter time.Duration
	// Remaining is the number of requests left in the current window.
	Remaining int
}

type window struct {
	start time.Time
	count int
}

// FixedWindow counts requests per client identity within a fixed interval and
// denies once the ceiling is exceeded.
//
// Each check is a single mutex-guarded read-modify-write, so concurrent
// admissions for the same identity cannot lose updates.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	size    time.Duration
	clock   clock.Clocker
}

// NewFixedWindow builds a limiter allowing max requests per size interval.
func NewFixedWindow(max int, size time.Duration, clk clock.Clocker) *FixedWindow {
	if max < 1 {
		max = 1
	}
	if size <= 0 {
		size = time.Minute
	}
	if clk == nil {
		clk = clock.New()
	}

	return &FixedWindow{
		windows: make(map[string]*window),
		max:     max,
		size:    size,
		clock:   clk,
	}
}

// Allow records one request for identity and decides whether it may proceed.
//
// A window that has fully elapsed (now - start >= size) is replaced by a fresh
// one, so the first request at exactly start+size is admitted again.
func (f *FixedWindow) Allow(identity string) Decision {
	now := f.clock.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	w, ok := f.windows[identity]
	if !ok || now.Sub(w.start) >= f.size {
		f.windows[identity] = &window{start: now, count: 1}
		f.sweepLocked(now)
		return Decision{Allowed: true, Remaining: f.max - 1}
	}

	w.count++
	if w.count > f.max {
		return Decision{
			Allowed:    false,
			RetryAfter: w.start.Add(f.size).Sub(now),
		}
	}

	return Decision{Allowed: true, Remaining: f.max - w.count}
}

// sweepLocked drops elapsed windows so idle identities do not pin memory
// forever. Called with the mutex held, and only when the map has grown.
func (f *FixedWindow) sweepLocked(now time.Time) {
	if len(f.windows) < sweepThreshold {
		return
	}

	for id, w := range f.windows {
		if now.Sub(w.start) >= f.size {
			delete(f.windows, id)
		}
	}
}
