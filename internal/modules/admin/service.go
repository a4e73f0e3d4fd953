package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
)

// Service implements the operator surface: login plus reservation
// management. There is a single operator account, configured through the
// environment; the concierge has no self-service signup.
type Service struct {
	reservations ReservationRepository
	jwt          tokenIssuer
	username     string
	passwordHash string
}

func NewService(reservations ReservationRepository, jwt tokenIssuer, username, passwordHash string) *Service {
	return &Service{
		reservations: reservations,
		jwt:          jwt,
		username:     username,
		passwordHash: passwordHash,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	if s.passwordHash == "" {
		return "", ErrLoginDisabled
	}
	if req.Username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwt.GenerateToken(s.username, "operator")
}

// UpsertReservation creates or replaces a reservation. A generated rid is a
// 6-character code a guest can read over the phone.
func (s *Service) UpsertReservation(ctx context.Context, req UpsertReservationRequest) (*domain.GuestConfig, error) {
	cfg := &domain.GuestConfig{
		RID:              strings.ToUpper(strings.TrimSpace(req.RID)),
		GuestName:        req.GuestName,
		Email:            req.Email,
		Phone:            req.Phone,
		Property:         domain.Property(req.Property),
		FlatNumber:       req.FlatNumber,
		LockCode:         req.LockCode,
		SafeCode:         req.SafeCode,
		WifiSSID:         req.WifiSSID,
		WifiPassword:     req.WifiPassword,
		WelcomeMessage:   req.WelcomeMessage,
		AdminNotes:       req.AdminNotes,
		CheckInDate:      req.CheckInDate,
		CheckoutDate:     req.CheckoutDate,
		CheckInTime:      req.CheckInTime,
		CheckOutTime:     req.CheckOutTime,
		IsReleased:       req.IsReleased,
		GuestAlertActive: req.GuestAlertActive,
		GuestAlertText:   req.GuestAlertText,
	}

	if err := cfg.ValidateStayWindow(); err != nil {
		return nil, ErrValidation
	}

	if cfg.RID == "" {
		cfg.RID = newRID()
		if err := s.reservations.Create(ctx, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	_, err := s.reservations.GetByRID(ctx, cfg.RID)
	switch {
	case err == nil:
		if err := s.reservations.Update(ctx, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, guestconfig.ErrNotFound):
		if err := s.reservations.Create(ctx, cfg); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	return cfg, nil
}

func (s *Service) GetReservation(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	return s.reservations.GetByRID(ctx, rid)
}

// DeactivateReservation revokes guest access immediately.
func (s *Service) DeactivateReservation(ctx context.Context, rid string) error {
	return s.reservations.Deactivate(ctx, rid)
}

func newRID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:6])
}
