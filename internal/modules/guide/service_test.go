package guide

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flatguide/internal/domain"
	"flatguide/internal/guestconfig"
	"flatguide/internal/stay"
	"flatguide/internal/store"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	args := m.Called(ctx, rid)
	if cfg := args.Get(0); cfg != nil {
		return cfg.(*domain.GuestConfig), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now(context.Context) time.Time { return f.t }

func liliConfig() *domain.GuestConfig {
	return &domain.GuestConfig{
		RID:          "LILI01",
		GuestName:    "Ana Souza",
		Property:     domain.PropertyFlatLili,
		CheckInDate:  "2024-03-01",
		CheckoutDate: "2024-03-05",
	}
}

func newTestService(source ReservationSource, now time.Time, globalAlert string) *Service {
	return NewService(source, fixedClock{t: now}, store.NewMemoryStore(), nil, globalAlert)
}

func TestResolveSession_GuestViaShortCode(t *testing.T) {
	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(liliConfig(), nil)
	s := newTestService(source, time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local), "")

	res, err := s.ResolveSession(context.Background(), "client-1", ResolveSessionRequest{Path: "/LILI01"})

	require.NoError(t, err)
	assert.Equal(t, domain.ModeGuest, res.State.Mode)
	assert.True(t, res.StripURL)
}

func TestResolveSession_ClientsDoNotShareStoredIDs(t *testing.T) {
	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(liliConfig(), nil)
	now := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)
	s := newTestService(source, now, "")

	// First client resolves via URL, which persists the id for that client.
	_, err := s.ResolveSession(context.Background(), "client-1", ResolveSessionRequest{Path: "/LILI01"})
	require.NoError(t, err)

	// Same client on a deep link falls back to its stored id.
	res, err := s.ResolveSession(context.Background(), "client-1", ResolveSessionRequest{Path: "/wifi-details"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeGuest, res.State.Mode)

	// A different client has no stored id and lands on the generic page.
	res, err = s.ResolveSession(context.Background(), "client-2", ResolveSessionRequest{Path: "/wifi-details"})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeLanding, res.State.Mode)
}

func TestResolveManual_UnifiedClassification(t *testing.T) {
	revoked := liliConfig()
	revoked.ManualDeactivation = true

	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(revoked, nil)
	s := newTestService(source, time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local), "")

	res, err := s.ResolveManual(context.Background(), "client-1", "LILI01")

	require.NoError(t, err)
	assert.Equal(t, domain.ModeRevoked, res.State.Mode)
}

func TestGetGuestConfig_RequiresRID(t *testing.T) {
	s := newTestService(new(mockSource), time.Now(), "")

	_, err := s.GetGuestConfig(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStayStatus_DerivesAgainstServiceClock(t *testing.T) {
	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(liliConfig(), nil)
	now := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)
	s := newTestService(source, now, "")

	status, err := s.StayStatus(context.Background(), "LILI01")

	require.NoError(t, err)
	assert.Equal(t, stay.StageMiddle, status.Stage)
	assert.True(t, status.PasswordReleased)
	assert.Equal(t, now, status.Now)
}

func TestStayStatus_UnknownReservation(t *testing.T) {
	source := new(mockSource)
	source.On("Fetch", mock.Anything, "NOPE00").Return(nil, guestconfig.ErrNotFound)
	s := newTestService(source, time.Now(), "")

	_, err := s.StayStatus(context.Background(), "NOPE00")
	assert.ErrorIs(t, err, guestconfig.ErrNotFound)
}

func TestAlerts_DismissalIsPerClientAndPerText(t *testing.T) {
	cfg := liliConfig()
	cfg.GuestAlertActive = true
	cfg.GuestAlertText = "The elevator is under maintenance."

	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(cfg, nil)
	s := newTestService(source, time.Now(), "Pool closed this weekend.")
	ctx := context.Background()

	alerts, err := s.Alerts(ctx, "client-1", "LILI01")
	require.NoError(t, err)
	assert.Equal(t, "Pool closed this weekend.", alerts.Global)
	assert.Equal(t, "The elevator is under maintenance.", alerts.Personal)

	require.NoError(t, s.DismissAlert(ctx, "client-1", DismissAlertRequest{
		Scope: "global",
		Text:  "Pool closed this weekend.",
	}))
	require.NoError(t, s.DismissAlert(ctx, "client-1", DismissAlertRequest{
		Scope:     "personal",
		GuestName: cfg.GuestName,
		Text:      cfg.GuestAlertText,
	}))

	alerts, err = s.Alerts(ctx, "client-1", "LILI01")
	require.NoError(t, err)
	assert.Empty(t, alerts.Global)
	assert.Empty(t, alerts.Personal)

	// Another client never dismissed anything.
	alerts, err = s.Alerts(ctx, "client-2", "LILI01")
	require.NoError(t, err)
	assert.Equal(t, "Pool closed this weekend.", alerts.Global)
	assert.Equal(t, "The elevator is under maintenance.", alerts.Personal)
}

// A dismissal records the exact text, so a reworded alert reappears.
func TestAlerts_ChangedTextReappears(t *testing.T) {
	source := new(mockSource)
	source.On("Fetch", mock.Anything, "LILI01").Return(liliConfig(), nil)
	s := newTestService(source, time.Now(), "Pool closed this weekend.")
	ctx := context.Background()

	require.NoError(t, s.DismissAlert(ctx, "client-1", DismissAlertRequest{
		Scope: "global",
		Text:  "Pool closed today.",
	}))

	alerts, err := s.Alerts(ctx, "client-1", "LILI01")
	require.NoError(t, err)
	assert.Equal(t, "Pool closed this weekend.", alerts.Global)
}

func TestDismissAlert_PersonalScopeRequiresGuestName(t *testing.T) {
	s := newTestService(new(mockSource), time.Now(), "")

	err := s.DismissAlert(context.Background(), "client-1", DismissAlertRequest{
		Scope: "personal",
		Text:  "whatever",
	})
	assert.ErrorIs(t, err, ErrValidation)
}
