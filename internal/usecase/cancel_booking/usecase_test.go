package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	ownerID   int64 = 42
	managerID int64 = 100
	venueID   int64 = 1
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	cancelErr error

	cancelledStatus domain.BookingStatus
	cancelledReason *string
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id uuid.UUID, status domain.BookingStatus, reason *string) error {
	if r.cancelErr != nil {
		return r.cancelErr
	}
	r.cancelledStatus = status
	r.cancelledReason = reason
	return nil
}

type fakeStateRepo struct {
	state *domain.VenueSlotState
}

func (r *fakeStateRepo) Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error) {
	copied := *r.state
	return &copied, nil
}

type fakeEngine struct {
	removeErr      error
	removedBooking bool
}

func (e *fakeEngine) RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	if e.removeErr != nil {
		return e.removeErr
	}
	e.removedBooking = true
	return nil
}

func (e *fakeEngine) ReleaseHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	return nil
}

type fakeIdentityClient struct {
	actor *identityservice.Actor
}

func (c *fakeIdentityClient) GetActor(ctx context.Context, userID int64) (*identityservice.Actor, error) {
	if c.actor == nil || c.actor.ID != userID {
		return nil, identityservice.ErrActorNotFound
	}
	return c.actor, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// rollbackTxManager воспроизводит откат транзакции: при ошибке возвращает
// запись бронирования к состоянию до вызова
type rollbackTxManager struct {
	bookings *fakeBookingRepo
}

func (m *rollbackTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	savedStatus := m.bookings.cancelledStatus
	savedReason := m.bookings.cancelledReason
	if err := fn(ctx); err != nil {
		m.bookings.cancelledStatus = savedStatus
		m.bookings.cancelledReason = savedReason
		return err
	}
	return nil
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// Бронирование на вторник 2026-09-15 18:00, окно отмены площадки 5 часов
func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:        uuid.New(),
		VenueID:   venueID,
		UserID:    ownerID,
		Date:      types.DateString("2026-09-15"),
		StartTime: types.TimeString("18:00"),
		Status:    domain.StatusConfirmed,
	}
}

func venueState() *domain.VenueSlotState {
	return &domain.VenueSlotState{
		VenueID: venueID,
		Config: domain.SlotConfig{
			StartTime:              "10:00",
			EndTime:                "22:00",
			SlotDurationMinutes:    60,
			DaysOfWeek:             []time.Weekday{time.Tuesday},
			Timezone:               "UTC",
			CancellationHoursLimit: 5,
		},
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	engine   *fakeEngine
}

func newFixture(booking *domain.Booking, actor *identityservice.Actor, now time.Time) *fixture {
	bookings := &fakeBookingRepo{booking: booking}
	engine := &fakeEngine{}
	uc := NewUseCase(
		bookings,
		&fakeStateRepo{state: venueState()},
		engine,
		&fakeIdentityClient{actor: actor},
		passthroughTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: now}
	return &fixture{uc: uc, bookings: bookings, engine: engine}
}

func TestCancelBooking_OwnerOutsideWindow(t *testing.T) {
	booking := confirmedBooking()
	// За 8 часов до слота при лимите в 5 часов - отмена разрешена
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, f.bookings.cancelledStatus)
	assert.True(t, f.engine.removedBooking)
}

func TestCancelBooking_OwnerInsideWindow(t *testing.T) {
	booking := confirmedBooking()
	// За 2 часа до слота при лимите в 5 часов - отмена запрещена
	now := time.Date(2026, 9, 15, 16, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrCancellationWindow)
	assert.False(t, f.engine.removedBooking)
}

func TestCancelBooking_ManagerIgnoresWindow(t *testing.T) {
	booking := confirmedBooking()
	now := time.Date(2026, 9, 15, 17, 30, 0, 0, time.UTC)
	manager := &identityservice.Actor{ID: managerID, ManagedVenueIDs: []int64{venueID}}
	f := newFixture(booking, manager, now)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: managerID, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByManager), resp.Status)
	assert.Equal(t, domain.StatusCancelledByManager, f.bookings.cancelledStatus)
	assert.True(t, f.engine.removedBooking)
}

func TestCancelBooking_StrangerDenied(t *testing.T) {
	booking := confirmedBooking()
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	// Пользователь существует, но не управляет площадкой
	stranger := &identityservice.Actor{ID: 77, ManagedVenueIDs: []int64{999}}
	f := newFixture(booking, stranger, now)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 77, BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancelBooking_NotFound(t *testing.T) {
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(confirmedBooking(), nil, now)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: uuid.New()})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_TerminalStatus(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusExpired
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)

	_, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestCancelBooking_ConcurrentStatusChange(t *testing.T) {
	booking := confirmedBooking()
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)
	f.bookings.cancelErr = bookingRepo.ErrStatusConflict

	_, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.False(t, f.engine.removedBooking)
}

func TestCancelBooking_SlotReleaseFailureRollsBack(t *testing.T) {
	booking := confirmedBooking()
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)
	f.uc.txManager = &rollbackTxManager{bookings: f.bookings}
	f.engine.removeErr = reservation.ErrContention

	_, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	// Слот не снят - отмена не зафиксирована
	assert.ErrorIs(t, err, ErrContention)
	assert.False(t, f.engine.removedBooking)
	assert.Empty(t, f.bookings.cancelledStatus)

	// Конкуренция спала - повтор доводит отмену до конца
	f.engine.removeErr = nil
	resp, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, f.bookings.cancelledStatus)
	assert.True(t, f.engine.removedBooking)
}

func TestCancelBooking_PendingPaymentCancellable(t *testing.T) {
	booking := confirmedBooking()
	booking.Status = domain.StatusPendingPayment
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	f := newFixture(booking, nil, now)

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: ownerID, BookingID: booking.ID})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
}
