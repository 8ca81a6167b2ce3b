// Package session implements the process-wide session guard: the single
// authoritative record of who is logged in and since when, with inactivity
// auto-lock and a sliding-window rate limiter for unmask operations.
//
// The guard is an explicitly constructed object handed to its consumers, not
// an ambient global. One mutex serializes every operation, so concurrent
// request handlers cannot lose updates to the activity timestamp, the
// principal, or the unmask event window.
package session

import (
	"sync"
	"time"
)

// Defaults applied by NewGuard when the corresponding option is zero.
const (
	DefaultInactivityTimeout = 60 * time.Second
	DefaultUnmaskQuota       = 5
	DefaultUnmaskWindow      = 60 * time.Second
)

// Options configures a Guard. Zero fields fall back to package defaults.
// Clock is injectable for tests; production code leaves it nil (time.Now).
type Options struct {
	InactivityTimeout time.Duration
	UnmaskQuota       int
	UnmaskWindow      time.Duration
	Clock             func() time.Time
}

// Guard tracks the authenticated principal, the last-activity timestamp,
// and the recent unmask events. The zero principal means Anonymous.
//
// State machine: Anonymous → Active (SetUser) → Locked (activity stale) →
// Anonymous (Clear). All methods are safe for concurrent use.
type Guard struct {
	mu sync.Mutex

	now func() time.Time

	principal    int64
	lastActivity time.Time

	inactivityTimeout time.Duration
	unmaskQuota       int
	unmaskWindow      time.Duration
	unmaskEvents      []time.Time
}

// NewGuard constructs a Guard with the given options.
func NewGuard(opts Options) *Guard {
	if opts.InactivityTimeout <= 0 {
		opts.InactivityTimeout = DefaultInactivityTimeout
	}
	if opts.UnmaskQuota <= 0 {
		opts.UnmaskQuota = DefaultUnmaskQuota
	}
	if opts.UnmaskWindow <= 0 {
		opts.UnmaskWindow = DefaultUnmaskWindow
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Guard{
		now:               opts.Clock,
		inactivityTimeout: opts.InactivityTimeout,
		unmaskQuota:       opts.UnmaskQuota,
		unmaskWindow:      opts.UnmaskWindow,
	}
}

// SetUser transitions the guard to Active: the principal is recorded and
// the activity timestamp refreshed.
func (g *Guard) SetUser(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.principal = id
	g.lastActivity = g.now()
}

// Touch refreshes the activity timestamp. It is a no-op while Anonymous.
func (g *Guard) Touch() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.principal == 0 {
		return
	}
	g.lastActivity = g.now()
}

// Clear unconditionally transitions to Anonymous, discarding the principal
// and the activity timestamp. The unmask window is kept: logging out does
// not refund the quota.
func (g *Guard) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.principal = 0
	g.lastActivity = time.Time{}
}

// IsLocked reports whether no activity was ever recorded or the last
// activity is older than the inactivity timeout.
func (g *Guard) IsLocked() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.lockedLocked()
}

// IsAuthenticated reports whether a principal is set and the session is not
// locked.
func (g *Guard) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.principal != 0 && !g.lockedLocked()
}

// Principal returns the authenticated principal. This is the authoritative
// identity check request handling relies on: the id is only revealed while
// the session is Active, otherwise ok is false.
func (g *Guard) Principal() (int64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.principal == 0 || g.lockedLocked() {
		return 0, false
	}
	return g.principal, true
}

// Tracks reports whether the guard currently holds the given principal,
// regardless of lock state. Request middleware uses it to tell "this user's
// session expired" apart from "the guard follows somebody else".
func (g *Guard) Tracks(id int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.principal == id
}

// CanUnmask prunes unmask events older than the window and reports whether
// the remaining count is below the quota. It does not consume quota; pair
// it with RecordUnmask, or use TryConsumeUnmask for the atomic form.
func (g *Guard) CanUnmask() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.pruneLocked() < g.unmaskQuota
}

// RecordUnmask appends the current timestamp to the tracked unmask events.
// The caller is responsible for calling it exactly once per granted
// disclosure, after CanUnmask returned true for the same operation.
func (g *Guard) RecordUnmask() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.unmaskEvents = append(g.unmaskEvents, g.now())
}

// TryConsumeUnmask checks the quota and records the event under a single
// lock acquisition, so two concurrent requests cannot both pass the check
// before either records. Returns false without recording when the quota is
// exhausted.
func (g *Guard) TryConsumeUnmask() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pruneLocked() >= g.unmaskQuota {
		return false
	}
	g.unmaskEvents = append(g.unmaskEvents, g.now())
	return true
}

// lockedLocked implements the lock predicate. Callers must hold g.mu.
func (g *Guard) lockedLocked() bool {
	if g.lastActivity.IsZero() {
		return true
	}
	return g.now().Sub(g.lastActivity) > g.inactivityTimeout
}

// pruneLocked drops unmask events older than the window and returns the
// retained count. Callers must hold g.mu.
func (g *Guard) pruneLocked() int {
	now := g.now()
	kept := g.unmaskEvents[:0]
	for _, t := range g.unmaskEvents {
		if now.Sub(t) <= g.unmaskWindow {
			kept = append(kept, t)
		}
	}
	g.unmaskEvents = kept
	return len(kept)
}
