package stay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flatguide/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

// Walk a four-night stay day by day and check every stage appears exactly
// once, in order, with no stage revisited.
func TestDerive_StageWalkIsMonotonic(t *testing.T) {
	checkIn := "2024-03-01"
	checkOut := "2024-03-05"

	var seen []Stage
	for d := day(2024, time.February, 27); !d.After(day(2024, time.March, 7)); d = d.AddDate(0, 0, 1) {
		stage := Derive(d, checkIn, checkOut).Stage
		if len(seen) == 0 || seen[len(seen)-1] != stage {
			seen = append(seen, stage)
		}
	}

	assert.Equal(t, []Stage{
		StagePreCheckin,
		StageCheckin,
		StageMiddle,
		StagePreCheckout,
		StageCheckout,
		StagePostCheckout,
	}, seen)
}

func TestDerive_SingleNightSkipsMiddle(t *testing.T) {
	checkIn := "2024-03-01"
	checkOut := "2024-03-02"

	// Day 0 satisfies both "check-in day" and "day before checkout";
	// check-in must win.
	d0 := Derive(day(2024, time.March, 1), checkIn, checkOut)
	assert.Equal(t, StageCheckin, d0.Stage)
	assert.True(t, d0.SingleNight)

	d1 := Derive(day(2024, time.March, 2), checkIn, checkOut)
	assert.Equal(t, StageCheckout, d1.Stage)
	assert.True(t, d1.CheckoutToday)

	for d := day(2024, time.February, 28); !d.After(day(2024, time.March, 3)); d = d.AddDate(0, 0, 1) {
		assert.NotEqual(t, StageMiddle, Derive(d, checkIn, checkOut).Stage)
	}
}

func TestDerive_IsNotSingleNightForLongerStays(t *testing.T) {
	d := Derive(day(2024, time.March, 3), "2024-03-01", "2024-03-05")
	assert.False(t, d.SingleNight)
}

func TestDerive_PasswordReleaseBoundary(t *testing.T) {
	checkIn := "2024-03-10"

	before := time.Date(2024, time.March, 8, 23, 59, 59, 0, time.Local)
	assert.False(t, Derive(before, checkIn, "").PasswordReleased)

	// Exactly midnight of the day before check-in.
	boundary := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.Local)
	assert.True(t, Derive(boundary, checkIn, "").PasswordReleased)

	after := time.Date(2024, time.March, 9, 0, 0, 1, 0, time.Local)
	assert.True(t, Derive(after, checkIn, "").PasswordReleased)
}

func TestDerive_PasswordReleaseInNonLocalZone(t *testing.T) {
	zone := time.FixedZone("UTC-7", -7*3600)
	checkIn := "2024-03-10"

	boundary := time.Date(2024, time.March, 9, 0, 0, 0, 0, zone)
	assert.True(t, Derive(boundary, checkIn, "").PasswordReleased)

	before := time.Date(2024, time.March, 8, 23, 59, 59, 0, zone)
	assert.False(t, Derive(before, checkIn, "").PasswordReleased)
}

func TestDerive_NoCheckInDateDefaults(t *testing.T) {
	for _, now := range []time.Time{
		day(1999, time.January, 1),
		day(2024, time.March, 3),
		day(2099, time.December, 31),
	} {
		d := Derive(now, "", "2024-03-05")
		assert.Equal(t, StageCheckin, d.Stage)
		assert.True(t, d.PasswordReleased)
		assert.False(t, d.SingleNight)
	}
}

func TestDerive_NoCheckoutDateStaysMiddle(t *testing.T) {
	d := Derive(day(2030, time.June, 15), "2024-03-01", "")
	assert.Equal(t, StageMiddle, d.Stage)
}

func TestDerive_EndToEndScenarioValues(t *testing.T) {
	now := day(2024, time.March, 3)
	d := Derive(now, "2024-03-01", "2024-03-05")

	assert.Equal(t, StageMiddle, d.Stage)
	assert.True(t, d.PasswordReleased)
	assert.False(t, d.SingleNight)
	assert.False(t, d.CheckoutToday)
}

// Calendar-day parsing must be immune to the host zone: "2024-01-15" is
// January 15th no matter how far the zone is from UTC.
func TestParseCalendarDay_RoundTripAcrossZones(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+14", 14*3600),
	}

	for _, zone := range zones {
		parsed, err := domain.ParseCalendarDayIn("2024-01-15", zone)
		assert.NoError(t, err)
		assert.Equal(t, 2024, parsed.Year())
		assert.Equal(t, time.January, parsed.Month())
		assert.Equal(t, 15, parsed.Day())
		assert.Equal(t, 0, parsed.Hour())
		assert.Equal(t, zone, parsed.Location())
	}
}

func TestParseCalendarDay_RejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-01", "15/01/2024", "2024-13-01", "2024-01-32", "aa-bb-cc"} {
		_, err := domain.ParseCalendarDayIn(s, time.UTC)
		assert.Error(t, err, s)
	}
}
