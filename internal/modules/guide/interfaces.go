package guide

import (
	"context"

	"flatguide/internal/domain"
)

// ReservationSource loads guest configurations. The API process plugs the
// gorm repository in here; a remote deployment could plug the HTTP client.
type ReservationSource interface {
	Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error)
}

// EventPublisher receives usage events. Implementations must be safe to call
// with a nil concrete value.
type EventPublisher interface {
	ModeResolved(ctx context.Context, rid, mode, path string) error
	PageView(ctx context.Context, rid, path string) error
}
