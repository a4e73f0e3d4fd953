package guestconfig

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"flatguide/internal/domain"
)

// Repository is the document-store wrapper for reservations: postgres in
// production, sqlite in dev and tests.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AutoMigrate creates the reservations table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&reservationModel{})
}

type reservationModel struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	RID        string  `gorm:"column:rid;uniqueIndex"`
	GuestName  string  `gorm:"column:guest_name"`
	Email      *string `gorm:"column:email"`
	Phone      *string `gorm:"column:phone"`
	Property   string  `gorm:"column:property"`
	FlatNumber *string `gorm:"column:flat_number"`

	LockCode     *string `gorm:"column:lock_code"`
	SafeCode     *string `gorm:"column:safe_code"`
	WifiSSID     *string `gorm:"column:wifi_ssid"`
	WifiPassword *string `gorm:"column:wifi_password"`

	WelcomeMessage *string `gorm:"column:welcome_message"`
	AdminNotes     *string `gorm:"column:admin_notes"`

	CheckInDate  *string `gorm:"column:check_in_date"`
	CheckoutDate *string `gorm:"column:checkout_date"`
	CheckInTime  *string `gorm:"column:check_in_time"`
	CheckOutTime *string `gorm:"column:check_out_time"`

	IsReleased         bool    `gorm:"column:is_released"`
	ManualDeactivation bool    `gorm:"column:manual_deactivation"`
	GuestAlertActive   bool    `gorm:"column:guest_alert_active"`
	GuestAlertText     *string `gorm:"column:guest_alert_text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomain(m reservationModel) *domain.GuestConfig {
	return &domain.GuestConfig{
		RID:                m.RID,
		GuestName:          m.GuestName,
		Email:              strOrEmpty(m.Email),
		Phone:              strOrEmpty(m.Phone),
		Property:           domain.Property(m.Property),
		FlatNumber:         strOrEmpty(m.FlatNumber),
		LockCode:           strOrEmpty(m.LockCode),
		SafeCode:           strOrEmpty(m.SafeCode),
		WifiSSID:           strOrEmpty(m.WifiSSID),
		WifiPassword:       strOrEmpty(m.WifiPassword),
		WelcomeMessage:     strOrEmpty(m.WelcomeMessage),
		AdminNotes:         strOrEmpty(m.AdminNotes),
		CheckInDate:        strOrEmpty(m.CheckInDate),
		CheckoutDate:       strOrEmpty(m.CheckoutDate),
		CheckInTime:        strOrEmpty(m.CheckInTime),
		CheckOutTime:       strOrEmpty(m.CheckOutTime),
		IsReleased:         m.IsReleased,
		ManualDeactivation: m.ManualDeactivation,
		GuestAlertActive:   m.GuestAlertActive,
		GuestAlertText:     strOrEmpty(m.GuestAlertText),
	}
}

func toModel(g *domain.GuestConfig) reservationModel {
	return reservationModel{
		RID:                g.RID,
		GuestName:          g.GuestName,
		Email:              strOrNil(g.Email),
		Phone:              strOrNil(g.Phone),
		Property:           string(g.Property),
		FlatNumber:         strOrNil(g.FlatNumber),
		LockCode:           strOrNil(g.LockCode),
		SafeCode:           strOrNil(g.SafeCode),
		WifiSSID:           strOrNil(g.WifiSSID),
		WifiPassword:       strOrNil(g.WifiPassword),
		WelcomeMessage:     strOrNil(g.WelcomeMessage),
		AdminNotes:         strOrNil(g.AdminNotes),
		CheckInDate:        strOrNil(g.CheckInDate),
		CheckoutDate:       strOrNil(g.CheckoutDate),
		CheckInTime:        strOrNil(g.CheckInTime),
		CheckOutTime:       strOrNil(g.CheckOutTime),
		IsReleased:         g.IsReleased,
		ManualDeactivation: g.ManualDeactivation,
		GuestAlertActive:   g.GuestAlertActive,
		GuestAlertText:     strOrNil(g.GuestAlertText),
	}
}

func (r *Repository) GetByRID(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("rid = ?", rid).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, tx.Error
	}
	return toDomain(m), nil
}

// Fetch makes the repository usable directly as the session resolver's
// config fetcher when the API and the store run in one process.
func (r *Repository) Fetch(ctx context.Context, rid string) (*domain.GuestConfig, error) {
	return r.GetByRID(ctx, rid)
}

func (r *Repository) Create(ctx context.Context, g *domain.GuestConfig) error {
	m := toModel(g)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(tx.Error, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateRID
		}
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRID
		}
		return tx.Error
	}
	return nil
}

func (r *Repository) Update(ctx context.Context, g *domain.GuestConfig) error {
	m := toModel(g)
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("rid = ?", g.RID).
		Select("*").
		Omit("id", "rid", "created_at").
		Updates(m)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Deactivate flags the reservation as manually revoked.
func (r *Repository) Deactivate(ctx context.Context, rid string) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("rid = ?", rid).
		Update("manual_deactivation", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
