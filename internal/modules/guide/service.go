package guide

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"flatguide/internal/clock"
	"flatguide/internal/domain"
	"flatguide/internal/session"
	"flatguide/internal/stay"
	"flatguide/internal/store"
)

// Service backs the guest-facing endpoints. Each resolve call builds a
// session resolver over the caller's namespaced slice of the shared KV, the
// server-side stand-in for that client's localStorage.
type Service struct {
	source      ReservationSource
	clk         clock.Clock
	kv          store.KV
	events      EventPublisher
	globalAlert string
}

func NewService(source ReservationSource, clk clock.Clock, kv store.KV, events EventPublisher, globalAlert string) *Service {
	return &Service{
		source:      source,
		clk:         clk,
		kv:          kv,
		events:      events,
		globalAlert: globalAlert,
	}
}

func (s *Service) clientStore(clientID string) session.SessionStore {
	return store.Namespaced(s.kv, "guide:"+clientID+":")
}

// resolver builds a single-attempt resolver for one HTTP call. The retry
// loop and the perceived-loading floor belong to the browser session; over
// HTTP the client re-calls on RECONNECTING instead.
func (s *Service) resolver(clientID string) *session.Resolver {
	return session.New(
		s.source,
		s.clientStore(clientID),
		s.clk,
		session.WithMaxAttempts(1),
		session.WithMinLoading(0),
	)
}

func (s *Service) GetGuestConfig(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	if strings.TrimSpace(rid) == "" {
		return nil, ErrValidation
	}
	return s.source.Fetch(ctx, rid)
}

// ResolveSession runs one bootstrap pass for the given client signals.
func (s *Service) ResolveSession(ctx context.Context, clientID string, req ResolveSessionRequest) (session.Resolution, error) {
	query := url.Values{}
	for k, v := range req.Query {
		query.Set(k, v)
	}

	res, err := s.resolver(clientID).Resolve(ctx, session.Signals{
		Path:        req.Path,
		Query:       query,
		NativeShell: req.NativeShell,
	})
	if err != nil {
		return res, err
	}

	s.publishMode(ctx, res, req.Path)
	return res, nil
}

func (s *Service) publishMode(ctx context.Context, res session.Resolution, path string) {
	if s.events == nil {
		return
	}
	_ = s.events.ModeResolved(ctx, res.State.Config.RID, string(res.State.Mode), path)
}

func (s *Service) publishPageView(ctx context.Context, rid, path string) {
	if s.events == nil {
		return
	}
	_ = s.events.PageView(ctx, rid, path)
}

// ResolveManual handles the typed/pasted recovery code path.
func (s *Service) ResolveManual(ctx context.Context, clientID string, input string) (session.Resolution, error) {
	res, err := s.resolver(clientID).ResolveManual(ctx, input)
	if err != nil {
		return res, err
	}
	s.publishMode(ctx, res, "manual")
	return res, nil
}

// StayStatus derives the current stage for a reservation against the
// authoritative clock.
func (s *Service) StayStatus(ctx context.Context, rid string) (*StayStatusResponse, error) {
	cfg, err := s.GetGuestConfig(ctx, rid)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now(ctx)
	s.publishPageView(ctx, rid, "/stay-status")
	return &StayStatusResponse{
		Derivation: stay.Derive(now, cfg.CheckInDate, cfg.CheckoutDate),
		Now:        now,
	}, nil
}

// Alerts returns the alert texts the client has not dismissed yet.
func (s *Service) Alerts(ctx context.Context, clientID, rid string) (*AlertsResponse, error) {
	cfg, err := s.GetGuestConfig(ctx, rid)
	if err != nil {
		return nil, err
	}

	kv := s.clientStore(clientID)
	out := &AlertsResponse{}

	if s.globalAlert != "" {
		dismissed, err := kv.Get(ctx, session.KeyDismissedGlobal)
		if err != nil || dismissed != s.globalAlert {
			out.Global = s.globalAlert
		}
	}

	if cfg.GuestAlertActive && cfg.GuestAlertText != "" {
		key := session.KeyDismissedPersonalPrefix + cfg.GuestName
		dismissed, err := kv.Get(ctx, key)
		if err != nil || dismissed != cfg.GuestAlertText {
			out.Personal = cfg.GuestAlertText
		}
	}

	return out, nil
}

// DismissAlert records the exact dismissed text, so an alert whose text
// later changes shows up again.
func (s *Service) DismissAlert(ctx context.Context, clientID string, req DismissAlertRequest) error {
	kv := s.clientStore(clientID)
	switch req.Scope {
	case "global":
		return kv.Set(ctx, session.KeyDismissedGlobal, req.Text)
	case "personal":
		if req.GuestName == "" {
			return fmt.Errorf("%w: guestName required for personal scope", ErrValidation)
		}
		return kv.Set(ctx, session.KeyDismissedPersonalPrefix+req.GuestName, req.Text)
	default:
		return ErrValidation
	}
}
