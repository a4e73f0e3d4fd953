package stay

import (
	"context"
	"sync"
	"time"

	"flatguide/internal/clock"
)

// DefaultRefreshInterval is how often a running tracker re-derives the stage.
const DefaultRefreshInterval = 60 * time.Second

// Snapshot is one derivation together with the instant it was computed from.
// Verified is false only for the initial device-clock snapshot; once the
// official-time recompute has run, Verified stays true even when the fetch
// fell back to the device clock, so the UI never blocks on the time service.
type Snapshot struct {
	Derivation
	Now      time.Time `json:"now"`
	Verified bool      `json:"verified"`
}

// Tracker keeps the derived stay view fresh for the lifetime of one guest
// session. The first snapshot is computed synchronously from the device
// clock to avoid an incorrect flash, then the authoritative clock takes over
// on a fixed interval until the context is cancelled.
type Tracker struct {
	clk          clock.Clock
	checkInDate  string
	checkoutDate string
	interval     time.Duration

	mu      sync.RWMutex
	current Snapshot
}

type TrackerOption func(*Tracker)

func WithRefreshInterval(d time.Duration) TrackerOption {
	return func(t *Tracker) { t.interval = d }
}

func NewTracker(clk clock.Clock, checkInDate, checkoutDate string, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		clk:          clk,
		checkInDate:  checkInDate,
		checkoutDate: checkoutDate,
		interval:     DefaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(t)
	}

	now := time.Now()
	t.current = Snapshot{
		Derivation: Derive(now, checkInDate, checkoutDate),
		Now:        now,
	}
	return t
}

// Current returns the latest snapshot.
func (t *Tracker) Current() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Run recomputes immediately with the authoritative clock, then on every
// tick, until ctx is done. It blocks and is meant to run in its own
// goroutine.
func (t *Tracker) Run(ctx context.Context) {
	t.refresh(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.refresh(ctx)
		}
	}
}

func (t *Tracker) refresh(ctx context.Context) {
	now := t.clk.Now(ctx)
	snap := Snapshot{
		Derivation: Derive(now, t.checkInDate, t.checkoutDate),
		Now:        now,
		Verified:   true,
	}
	t.mu.Lock()
	t.current = snap
	t.mu.Unlock()
}
