package expire_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	booking    *domain.Booking
	expireErr  error
	expireCall int
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) MarkExpired(ctx context.Context, id uuid.UUID) error {
	r.expireCall++
	return r.expireErr
}

type fakeEngine struct {
	released bool
}

func (e *fakeEngine) ReleaseHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	e.released = true
	return nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func pendingBooking(holdExpiresAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            uuid.New(),
		VenueID:       1,
		UserID:        42,
		Date:          types.DateString("2026-09-15"),
		StartTime:     types.TimeString("18:00"),
		Status:        domain.StatusPendingPayment,
		HoldExpiresAt: &holdExpiresAt,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, engine *fakeEngine) *UseCase {
	uc := NewUseCase(bookings, engine, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestExpireBooking_Success(t *testing.T) {
	booking := pendingBooking(testNow.Add(-time.Minute))
	bookings := &fakeBookingRepo{booking: booking}
	engine := &fakeEngine{}
	uc := newTestUseCase(bookings, engine)

	resp, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusExpired), resp.Status)
	assert.Equal(t, 1, bookings.expireCall)
	assert.True(t, engine.released)
}

func TestExpireBooking_HoldStillActive(t *testing.T) {
	// Срок проверяется по серверным часам, а не со слов клиента
	booking := pendingBooking(testNow.Add(2 * time.Minute))
	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeEngine{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrHoldNotYetExpired)
	assert.Equal(t, 0, bookings.expireCall)
}

func TestExpireBooking_NotPending(t *testing.T) {
	booking := pendingBooking(testNow.Add(-time.Minute))
	booking.Status = domain.StatusConfirmed
	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeEngine{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestExpireBooking_NotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeEngine{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: uuid.New()})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExpireBooking_ConcurrentStatusChange(t *testing.T) {
	booking := pendingBooking(testNow.Add(-time.Minute))
	bookings := &fakeBookingRepo{booking: booking, expireErr: bookingRepo.ErrStatusConflict}
	engine := &fakeEngine{}
	uc := newTestUseCase(bookings, engine)

	_, err := uc.Execute(context.Background(), &Request{BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.False(t, engine.released)
}
