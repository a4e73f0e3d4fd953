// Package stay derives "where in the stay" the current moment falls for one
// reservation. Everything here is a pure function of calendar dates and a
// supplied now; nothing is persisted and nothing is mutated in place.
package stay

import (
	"math"
	"time"

	"flatguide/internal/domain"
)

// Stage classifies the current calendar day against the stay window.
type Stage string

const (
	StagePreCheckin   Stage = "pre_checkin"
	StageCheckin      Stage = "checkin"
	StageMiddle       Stage = "middle"
	StagePreCheckout  Stage = "pre_checkout"
	StageCheckout     Stage = "checkout"
	StagePostCheckout Stage = "post_checkout"
)

// Derivation is the full derived view of a stay at one instant. Each
// recomputation replaces the previous value wholesale.
type Derivation struct {
	Stage            Stage `json:"stayStage"`
	PasswordReleased bool  `json:"isPasswordReleased"`
	SingleNight      bool  `json:"isSingleNight"`
	CheckoutToday    bool  `json:"isCheckoutToday"`
}

// Derive classifies now against the check-in/checkout window. Dates arrive as
// YYYY-MM-DD strings straight from a validated GuestConfig; an absent
// check-in date means the guest is treated as already checked in with codes
// released. Comparisons happen on day-truncated values in now's own zone, so
// the answer tracks the calendar day of the reference clock rather than UTC.
func Derive(now time.Time, checkInDate, checkoutDate string) Derivation {
	loc := now.Location()
	today := truncate(now)

	checkIn, err := domain.ParseCalendarDayIn(checkInDate, loc)
	if checkInDate == "" || err != nil {
		return Derivation{
			Stage:            StageCheckin,
			PasswordReleased: true,
		}
	}

	d := Derivation{
		Stage:            deriveStage(today, checkIn, checkoutDate, loc),
		PasswordReleased: passwordReleased(now, checkIn),
		SingleNight:      singleNight(checkIn, checkoutDate, loc),
	}
	d.CheckoutToday = d.Stage == StageCheckout
	return d
}

func deriveStage(today, checkIn time.Time, checkoutDate string, loc *time.Location) Stage {
	if today.Before(checkIn) {
		return StagePreCheckin
	}
	if today.Equal(checkIn) {
		return StageCheckin
	}

	checkOut, err := domain.ParseCalendarDayIn(checkoutDate, loc)
	if checkoutDate == "" || err != nil {
		return StageMiddle
	}

	switch {
	case today.After(checkOut):
		return StagePostCheckout
	case today.Equal(checkOut):
		return StageCheckout
	case today.Equal(checkOut.AddDate(0, 0, -1)):
		return StagePreCheckout
	default:
		return StageMiddle
	}
}

// passwordReleased gates the lock/safe codes: released from midnight of the
// day before check-in, measured against the supplied (authoritative) now.
func passwordReleased(now time.Time, checkIn time.Time) bool {
	release := checkIn.AddDate(0, 0, -1)
	return !now.Before(release)
}

func singleNight(checkIn time.Time, checkoutDate string, loc *time.Location) bool {
	if checkoutDate == "" {
		return false
	}
	checkOut, err := domain.ParseCalendarDayIn(checkoutDate, loc)
	if err != nil {
		return false
	}
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	return nights == 1
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
