package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

var (
	testDate  = types.DateString("2026-09-15")
	testStart = types.TimeString("10:00")
)

func TestHoldEntry_IsExpired(t *testing.T) {
	now := time.Date(2026, 9, 15, 9, 0, 0, 0, time.UTC)
	hold := HoldEntry{HoldExpiresAt: now.Add(5 * time.Minute)}

	assert.False(t, hold.IsExpired(now))
	assert.True(t, hold.IsExpired(now.Add(5*time.Minute)))
	assert.True(t, hold.IsExpired(now.Add(10*time.Minute)))
}

func TestVenueSlotState_FindAndRemoveHold(t *testing.T) {
	state := &VenueSlotState{VenueID: 1}

	assert.Nil(t, state.FindHold(testDate, testStart))
	assert.False(t, state.RemoveHold(testDate, testStart))

	state.AddHold(HoldEntry{Date: testDate, StartTime: testStart, UserID: 42})

	found := state.FindHold(testDate, testStart)
	assert.NotNil(t, found)
	assert.Equal(t, int64(42), found.UserID)

	// Другой слот того же дня не находится
	assert.Nil(t, state.FindHold(testDate, types.TimeString("11:00")))

	assert.True(t, state.RemoveHold(testDate, testStart))
	assert.Nil(t, state.FindHold(testDate, testStart))
	assert.False(t, state.RemoveHold(testDate, testStart))
}

func TestVenueSlotState_FindBooking(t *testing.T) {
	bookingID := uuid.New()
	state := &VenueSlotState{
		Bookings: []BookingEntry{
			{Date: testDate, StartTime: testStart, BookingID: bookingID},
		},
	}

	found := state.FindBooking(testDate, testStart)
	assert.NotNil(t, found)
	assert.Equal(t, bookingID, found.BookingID)

	assert.True(t, state.RemoveBooking(testDate, testStart))
	assert.Nil(t, state.FindBooking(testDate, testStart))
}

func TestVenueSlotState_PurgeExpiredHolds(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	state := &VenueSlotState{
		Held: []HoldEntry{
			{Date: testDate, StartTime: "10:00", HoldExpiresAt: now.Add(-time.Minute)},
			{Date: testDate, StartTime: "11:00", HoldExpiresAt: now.Add(3 * time.Minute)},
			{Date: testDate, StartTime: "12:00", HoldExpiresAt: now.Add(-time.Hour)},
		},
	}

	removed := state.PurgeExpiredHolds(now)

	assert.Equal(t, 2, removed)
	assert.Len(t, state.Held, 1)
	assert.Equal(t, types.TimeString("11:00"), state.Held[0].StartTime)
}

func TestVenueSlotState_PurgeExpiredHolds_NothingExpired(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	state := &VenueSlotState{
		Held: []HoldEntry{
			{Date: testDate, StartTime: "10:00", HoldExpiresAt: now.Add(time.Minute)},
		},
	}

	assert.Equal(t, 0, state.PurgeExpiredHolds(now))
	assert.Len(t, state.Held, 1)
}

func TestSlotConfig_IsWorkingDay(t *testing.T) {
	cfg := SlotConfig{DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday, time.Friday}}

	assert.True(t, cfg.IsWorkingDay(time.Monday))
	assert.False(t, cfg.IsWorkingDay(time.Sunday))
}

func TestSlotConfig_Location(t *testing.T) {
	cfg := SlotConfig{Timezone: "Europe/Moscow"}
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())

	// Пустая и некорректная зона деградируют в UTC
	assert.Equal(t, time.UTC, (&SlotConfig{}).Location())
	assert.Equal(t, time.UTC, (&SlotConfig{Timezone: "Nope/Nowhere"}).Location())
}
