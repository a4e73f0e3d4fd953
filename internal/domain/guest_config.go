package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Property identifies which flat a reservation belongs to.
type Property string

const (
	PropertyFlatLili Property = "flat_lili"
	PropertyFlatLua  Property = "flat_lua"
	PropertyFlatSol  Property = "flat_sol"
)

// GuestConfig is one resolved reservation session. It is validated once at
// fetch time and treated as immutable for the rest of the session.
type GuestConfig struct {
	RID        string   `json:"rid" validate:"required,alphanum,min=3,max=20"`
	GuestName  string   `json:"guestName" validate:"required"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string   `json:"phone,omitempty"`
	Property   Property `json:"property" validate:"required,oneof=flat_lili flat_lua flat_sol"`
	FlatNumber string   `json:"flatNumber,omitempty"`

	LockCode     string `json:"lockCode,omitempty"`
	SafeCode     string `json:"safeCode,omitempty"`
	WifiSSID     string `json:"wifiSsid,omitempty"`
	WifiPassword string `json:"wifiPassword,omitempty"`

	WelcomeMessage string `json:"welcomeMessage,omitempty"`
	AdminNotes     string `json:"adminNotes,omitempty"`

	// Stay window. Dates are plain YYYY-MM-DD calendar days, times are
	// free-form text shown to the guest as-is.
	CheckInDate  string `json:"checkInDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckoutDate string `json:"checkoutDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckInTime  string `json:"checkInTime,omitempty"`
	CheckOutTime string `json:"checkOutTime,omitempty"`

	IsReleased         bool   `json:"isReleased"`
	ManualDeactivation bool   `json:"manualDeactivation"`
	GuestAlertActive   bool   `json:"guestAlertActive"`
	GuestAlertText     string `json:"guestAlertText,omitempty"`
}

// ValidateStayWindow enforces the one cross-field invariant: the checkout
// date, when present, must be on or after the check-in date.
func (g *GuestConfig) ValidateStayWindow() error {
	if g.CheckInDate == "" || g.CheckoutDate == "" {
		return nil
	}
	in, err := ParseCalendarDay(g.CheckInDate)
	if err != nil {
		return fmt.Errorf("checkInDate: %w", err)
	}
	out, err := ParseCalendarDay(g.CheckoutDate)
	if err != nil {
		return fmt.Errorf("checkoutDate: %w", err)
	}
	if out.Before(in) {
		return fmt.Errorf("checkoutDate %s is before checkInDate %s", g.CheckoutDate, g.CheckInDate)
	}
	return nil
}

// ParseCalendarDay parses a YYYY-MM-DD string into midnight of that calendar
// day in the host's local zone.
func ParseCalendarDay(s string) (time.Time, error) {
	return ParseCalendarDayIn(s, time.Local)
}

// ParseCalendarDayIn parses a YYYY-MM-DD string into midnight in loc. The
// string is split on "-" and the components assembled directly; feeding the
// combined string through an ISO parser would anchor it to UTC and shift the
// day for hosts west of Greenwich.
func ParseCalendarDayIn(s string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid calendar date %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}
