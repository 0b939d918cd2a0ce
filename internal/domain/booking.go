package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPendingPayment     BookingStatus = "pending_payment"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCancelled          BookingStatus = "cancelled"
	StatusCancelledByManager BookingStatus = "cancelled_by_manager"
	StatusExpired            BookingStatus = "expired"
)

// IsValid returns true for a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusCancelledByManager, StatusExpired:
		return true
	default:
		return false
	}
}

// Booking durable record of one booking attempt. Created together with a
// HoldEntry in pending_payment; every status transition is mirrored into the
// venue slot state by the reservation engine within the same transaction.
type Booking struct {
	ID        uuid.UUID
	VenueID   int64
	UserID    int64
	Date      types.DateString
	StartTime types.TimeString
	EndTime   types.TimeString

	BookingType BookingType
	Status      BookingStatus

	Amount        decimal.Decimal
	AdvanceAmount decimal.Decimal
	DueAmount     decimal.Decimal

	HoldExpiresAt        *time.Time
	PaymentTransactionID *string
	PaymentTimestamp     *time.Time

	CancellationReason *string
	CancelledAt        *time.Time
	ExpiredAt          *time.Time

	// Customer metadata for physical bookings taken at the reception desk
	CustomerName  *string
	CustomerPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPendingPayment returns true while the booking waits for payment
func (b *Booking) IsPendingPayment() bool {
	return b.Status == StatusPendingPayment
}

// IsConfirmed returns true if the booking has been paid or confirmed by a manager
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsTerminal returns true for statuses that allow no further transitions
// except cancellation of a confirmed booking
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled ||
		b.Status == StatusCancelledByManager ||
		b.Status == StatusExpired
}

// CanBeCancelled returns true if the booking may still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// HoldExpired returns true if the payment hold has lapsed at the given instant
func (b *Booking) HoldExpired(now time.Time) bool {
	return b.HoldExpiresAt != nil && !b.HoldExpiresAt.After(now)
}

// StartDateTime combines Date and StartTime in the given location
func (b *Booking) StartDateTime(loc *time.Location) (time.Time, error) {
	date, err := b.Date.Time(loc)
	if err != nil {
		return time.Time{}, err
	}
	return b.StartTime.At(date, loc)
}

// VenueBookingsFilter фильтр для выборки бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64
	StartDate       *types.DateString
	EndDate         *types.DateString
	Status          *BookingStatus
	IncludeInactive bool // включать отмененные и протухшие
}

// InactiveStatuses статусы, исключаемые из выборок по умолчанию
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCancelledByManager,
	StatusExpired,
}
