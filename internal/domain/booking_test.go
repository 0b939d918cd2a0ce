package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

func TestBookingStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPendingPayment.IsValid())
	assert.True(t, StatusConfirmed.IsValid())
	assert.True(t, StatusCancelledByManager.IsValid())
	assert.False(t, BookingStatus("paid").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBooking_StatusHelpers(t *testing.T) {
	tests := []struct {
		status       BookingStatus
		pending      bool
		confirmed    bool
		terminal     bool
		cancellable  bool
	}{
		{StatusPendingPayment, true, false, false, true},
		{StatusConfirmed, false, true, false, true},
		{StatusCancelled, false, false, true, false},
		{StatusCancelledByManager, false, false, true, false},
		{StatusExpired, false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.pending, b.IsPendingPayment())
			assert.Equal(t, tt.confirmed, b.IsConfirmed())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.cancellable, b.CanBeCancelled())
		})
	}
}

func TestBooking_HoldExpired(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	// Без удержания срок истечь не может
	b := &Booking{}
	assert.False(t, b.HoldExpired(now))

	expiry := now.Add(5 * time.Minute)
	b.HoldExpiresAt = &expiry
	assert.False(t, b.HoldExpired(now))
	assert.True(t, b.HoldExpired(expiry))
	assert.True(t, b.HoldExpired(expiry.Add(time.Second)))
}

func TestBooking_StartDateTime(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	b := &Booking{
		Date:      types.DateString("2026-09-15"),
		StartTime: types.TimeString("18:00"),
	}

	got, err := b.StartDateTime(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 18, 0, 0, 0, loc), got)
}
