package session

import (
	"context"

	"flatguide/internal/domain"
)

// ConfigFetcher loads one guest configuration by reservation id. It must
// return guestconfig.ErrNotFound for an unknown id; any other error is
// treated as transient and retried.
type ConfigFetcher interface {
	Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error)
}

// SessionStore is the persisted client-side state (the localStorage analog).
// Implementations may be unavailable; the resolver logs and carries on.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Persisted state layout.
const (
	KeyLastRID                 = "flat_lili_last_rid"
	KeyDismissedGlobal         = "flat_lili_dismissed_global"
	KeyDismissedPersonalPrefix = "flat_lili_dismissed_personal_"
)
