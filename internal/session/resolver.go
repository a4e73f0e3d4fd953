// Package session decides which screen a page load should render: it reads
// the environment signals, resolves a reservation id, fetches and classifies
// the guest configuration, and keeps retrying through transient failures.
package session

import (
	"context"
	"errors"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"flatguide/internal/clock"
	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
)

const (
	// DefaultRetryDelay spaces the attempts of the reconnect loop.
	DefaultRetryDelay = 2 * time.Second

	// DefaultMinLoading is the floor under every non-short-circuit
	// resolution, run concurrently with the fetch so the loading screen
	// neither flashes nor lingers.
	DefaultMinLoading = 2000 * time.Millisecond
)

// shortCodeRe matches a bare reservation short code used as the whole path.
var shortCodeRe = regexp.MustCompile(`(?i)^[A-Z0-9]{6}$`)

// Signals are the environment inputs of one page load.
type Signals struct {
	// Path is the URL path, e.g. "/", "/admin" or "/ABC123".
	Path string
	// Query holds the parsed query string.
	Query url.Values
	// NativeShell is true when running inside the native app wrapper,
	// which is operator-only.
	NativeShell bool
}

// Resolution is the outcome of one bootstrap pass.
type Resolution struct {
	State domain.AppState
	// StripURL tells the client to history-replace the reservation id out
	// of the address bar. Cosmetic; only set on GUEST resolutions whose id
	// came from the URL.
	StripURL bool
}

// Observer sees every intermediate mode change (LOADING, RECONNECTING)
// before the terminal resolution. The UI layer drives its indicators off it.
type Observer func(domain.AppMode)

type Resolver struct {
	fetcher     ConfigFetcher
	store       SessionStore
	clk         clock.Clock
	retryDelay  time.Duration
	minLoading  time.Duration
	maxAttempts int
	observe     Observer
}

type Option func(*Resolver)

func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) { r.retryDelay = d }
}

func WithMinLoading(d time.Duration) Option {
	return func(r *Resolver) { r.minLoading = d }
}

// WithMaxAttempts caps the fetch attempts. Zero means unbounded, the
// product behavior: a guest must never be locked out by a network blip.
// The HTTP resolve endpoint uses 1 and lets the client call again.
func WithMaxAttempts(n int) Option {
	return func(r *Resolver) { r.maxAttempts = n }
}

func WithObserver(fn Observer) Option {
	return func(r *Resolver) { r.observe = fn }
}

func New(fetcher ConfigFetcher, store SessionStore, clk clock.Clock, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:    fetcher,
		store:      store,
		clk:        clk,
		retryDelay: DefaultRetryDelay,
		minLoading: DefaultMinLoading,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) notify(mode domain.AppMode) {
	if r.observe != nil {
		r.observe(mode)
	}
}

// Resolve runs one bootstrap pass. The only error it returns is context
// cancellation from the retry loop; every other failure maps to a mode.
func (r *Resolver) Resolve(ctx context.Context, sig Signals) (Resolution, error) {
	path := normalizePath(sig.Path)

	// Short-circuits decide the mode before any network call.
	if sig.NativeShell {
		return steady(domain.ModeAdmin), nil
	}
	if path == "/cms" || sig.Query.Get("mode") == "cms" {
		return steady(domain.ModeCMS), nil
	}
	if path == "/admin" {
		return steady(domain.ModeAdmin), nil
	}
	r.notify(domain.ModeLoading)
	started := time.Now()

	if path == "/lili" || path == "/flat-lili" {
		r.waitFloor(ctx, started)
		return steady(domain.ModeLiliLanding), nil
	}

	rid, fromURL := r.resolveRID(ctx, path, sig.Query)
	if rid == "" {
		r.waitFloor(ctx, started)
		return steady(domain.ModeLanding), nil
	}
	if fromURL {
		if err := r.store.Set(ctx, KeyLastRID, rid); err != nil {
			log.Printf("warn: persisting reservation id: %v", err)
		}
	}

	res, err := r.fetchAndClassify(ctx, rid, fromURL)
	if err != nil {
		return res, err
	}
	r.waitFloor(ctx, started)
	return res, nil
}

// resolveRID picks the reservation id: query parameter first, then a bare
// 6-character path segment, then the persisted id when not on the root path.
// The second return value reports whether the id came from the URL.
func (r *Resolver) resolveRID(ctx context.Context, path string, query url.Values) (string, bool) {
	if v := strings.TrimSpace(query.Get("rid")); v != "" {
		return v, true
	}

	seg := strings.Trim(path, "/")
	if seg != "" && !strings.Contains(seg, "/") && shortCodeRe.MatchString(seg) {
		return seg, true
	}

	if path != "/" {
		stored, err := r.store.Get(ctx, KeyLastRID)
		if err != nil {
			log.Printf("warn: reading persisted reservation id: %v", err)
			return "", false
		}
		return strings.TrimSpace(stored), false
	}
	return "", false
}

// fetchAndClassify runs the fetch with the reconnect loop, then applies the
// expiration and revocation rules. Attempts are strictly sequential: a retry
// is scheduled only after its predecessor has failed.
func (r *Resolver) fetchAndClassify(ctx context.Context, rid string, fromURL bool) (Resolution, error) {
	attempts := 0
	for {
		cfg, err := r.fetcher.Fetch(ctx, rid)
		if err == nil {
			return r.classify(ctx, cfg, fromURL), nil
		}
		if errors.Is(err, guestconfig.ErrNotFound) {
			r.clearPersisted(ctx)
			return steady(domain.ModeBlocked), nil
		}

		// Transient: expected to self-heal, so a warning, not an error.
		log.Printf("warn: guest config fetch failed, retrying: %v", err)
		attempts++
		if r.maxAttempts > 0 && attempts >= r.maxAttempts {
			return steady(domain.ModeReconnecting), nil
		}
		r.notify(domain.ModeReconnecting)

		select {
		case <-ctx.Done():
			return steady(domain.ModeReconnecting), ctx.Err()
		case <-time.After(r.retryDelay):
		}
	}
}

// classify applies the validation rules to a freshly fetched configuration.
// Both the automatic and the manual entry path run through here, so a
// revoked or expired reservation can never slip into GUEST mode.
func (r *Resolver) classify(ctx context.Context, cfg *domain.GuestConfig, fromURL bool) Resolution {
	if cfg.ManualDeactivation {
		r.clearPersisted(ctx)
		return steady(domain.ModeRevoked)
	}

	if cfg.CheckoutDate != "" {
		if day, err := domain.ParseCalendarDay(cfg.CheckoutDate); err == nil {
			grace := day.AddDate(0, 0, 1)
			expiration := time.Date(grace.Year(), grace.Month(), grace.Day(),
				23, 59, 59, int(999*time.Millisecond), grace.Location())
			if r.clk.Now(ctx).After(expiration) {
				r.clearPersisted(ctx)
				return steady(domain.ModeExpired)
			}
		}
	}

	return Resolution{
		State:    domain.AppState{Mode: domain.ModeGuest, Config: *cfg},
		StripURL: fromURL,
	}
}

func (r *Resolver) clearPersisted(ctx context.Context) {
	if err := r.store.Delete(ctx, KeyLastRID); err != nil {
		log.Printf("warn: clearing persisted reservation id: %v", err)
	}
}

// waitFloor sleeps out the remainder of the minimum loading window. The
// window is measured from resolution start, so fetch latency counts against
// it rather than adding to it.
func (r *Resolver) waitFloor(ctx context.Context, started time.Time) {
	remaining := r.minLoading - time.Since(started)
	if remaining <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(remaining):
	}
}

func steady(mode domain.AppMode) Resolution {
	return Resolution{State: domain.AppState{Mode: mode}}
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
