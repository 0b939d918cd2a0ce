package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	userID  int64 = 42
	venueID int64 = 1
)

var testNow = time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)

type fakeStateRepo struct {
	state *domain.VenueSlotState
}

func (r *fakeStateRepo) Get(ctx context.Context, id int64) (*domain.VenueSlotState, error) {
	if r.state == nil || r.state.VenueID != id {
		return nil, venuestate.ErrVenueStateNotFound
	}
	copied := *r.state
	return &copied, nil
}

type fakeBookingRepo struct {
	createErr error
	created   *domain.Booking
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.CreatedAt = testNow
	r.created = b
	return b, nil
}

type fakeEngine struct {
	placeErr error

	placed   *domain.HoldEntry
	released bool
}

func (e *fakeEngine) PlaceHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, userID int64, bookingID uuid.UUID) (*domain.HoldEntry, error) {
	if e.placeErr != nil {
		return nil, e.placeErr
	}
	entry := domain.HoldEntry{
		Date: date, StartTime: startTime,
		UserID: userID, BookingID: bookingID,
		HoldExpiresAt: testNow.Add(5 * time.Minute),
		CreatedAt:     testNow,
	}
	e.placed = &entry
	return &entry, nil
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

// Площадка работает по вторникам 10:00-18:00, слот 60 минут,
// 1500 за слот, предоплата 50%
func venueState() *domain.VenueSlotState {
	return &domain.VenueSlotState{
		VenueID: venueID,
		Config: domain.SlotConfig{
			StartTime:           "10:00",
			EndTime:             "18:00",
			SlotDurationMinutes: 60,
			DaysOfWeek:          []time.Weekday{time.Tuesday},
			Timezone:            "UTC",
			PricePerSlot:        decimal.NewFromInt(1500),
			AdvancePercent:      50,
		},
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	engine   *fakeEngine
}

func newFixture() *fixture {
	bookings := &fakeBookingRepo{}
	engine := &fakeEngine{}
	uc := NewUseCase(&fakeStateRepo{state: venueState()}, bookings, engine, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return &fixture{uc: uc, bookings: bookings, engine: engine}
}

// Вторник на сетке площадки
func validRequest() *Request {
	return &Request{
		UserID:    userID,
		VenueID:   venueID,
		Date:      types.DateString("2026-09-15"),
		StartTime: types.TimeString("14:00"),
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingPayment), resp.Status)
	assert.Equal(t, types.TimeString("15:00"), resp.EndTime)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, resp.AdvanceAmount.Equal(decimal.NewFromInt(750)))
	assert.True(t, resp.DueAmount.Equal(decimal.NewFromInt(750)))
	assert.Equal(t, testNow.Add(5*time.Minute), resp.HoldExpiresAt)

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, resp.ID, f.bookings.created.ID)
	assert.Equal(t, domain.BookingTypeOnline, f.bookings.created.BookingType)
	// ID удержания и записи бронирования совпадают
	assert.Equal(t, resp.ID, f.engine.placed.BookingID)
}

func TestCreateBooking_FullAdvance(t *testing.T) {
	f := newFixture()
	state := venueState()
	state.Config.AdvancePercent = 100
	f.uc.stateRepo = &fakeStateRepo{state: state}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, resp.AdvanceAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, resp.DueAmount.IsZero())
}

func TestCreateBooking_VenueNotFound(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.VenueID = 999

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestCreateBooking_SlotNotOnGrid(t *testing.T) {
	tests := []struct {
		name      string
		date      types.DateString
		startTime types.TimeString
	}{
		{"non-working day", "2026-09-16", "14:00"}, // среда
		{"not aligned to grid", "2026-09-15", "14:30"},
		{"before working hours", "2026-09-15", "09:00"},
		{"slot does not fit before close", "2026-09-15", "17:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			req.Date = tt.date
			req.StartTime = tt.startTime

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrSlotNotOnGrid)
			assert.Nil(t, f.engine.placed)
		})
	}
}

func TestCreateBooking_SlotInPast(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = types.DateString("2026-09-08") // прошлый вторник

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.Nil(t, f.engine.placed)
}

func TestCreateBooking_EngineConflicts(t *testing.T) {
	tests := []struct {
		name      string
		engineErr error
		wantErr   error
	}{
		{"blocked", reservation.ErrSlotBlocked, ErrSlotBlocked},
		{"already booked", reservation.ErrSlotAlreadyBooked, ErrSlotAlreadyBooked},
		{"held by other", reservation.ErrSlotHeldByOther, ErrSlotHeldByOther},
		{"contention", reservation.ErrContention, ErrContention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.engine.placeErr = tt.engineErr

			_, err := f.uc.Execute(context.Background(), validRequest())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, f.bookings.created)
		})
	}
}

func TestCreateBooking_ReleasesHoldWhenCreateFails(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = errors.New("insert failed")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	// Компенсация: запись не создана, удержание снято
	assert.True(t, f.engine.released)
}

func TestCreateBooking_InvalidRequest(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.UserID = 0

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
