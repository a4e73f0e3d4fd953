package admin

import (
	"context"

	"flatguide/internal/domain"
)

// ReservationRepository is the write-side contract for the operator surface.
type ReservationRepository interface {
	GetByRID(ctx context.Context, rid string) (*domain.GuestConfig, error)
	Create(ctx context.Context, g *domain.GuestConfig) error
	Update(ctx context.Context, g *domain.GuestConfig) error
	Deactivate(ctx context.Context, rid string) error
}

type tokenIssuer interface {
	GenerateToken(username, role string) (string, error)
}
