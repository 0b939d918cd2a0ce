package create_physical_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	managerID int64 = 100
	venueID   int64 = 1
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
	confirmErr error

	confirmedEntry *domain.BookingEntry
	removed        bool
}

func (e *fakeEngine) ConfirmBooking(ctx context.Context, venueID int64, details domain.BookingEntry) error {
	if e.confirmErr != nil {
		return e.confirmErr
	}
	e.confirmedEntry = &details
	return nil
}

func (e *fakeEngine) RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	e.removed = true
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

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

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
		},
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	engine   *fakeEngine
}

func newFixture(actor *identityservice.Actor) *fixture {
	bookings := &fakeBookingRepo{}
	engine := &fakeEngine{}
	uc := NewUseCase(
		&fakeStateRepo{state: venueState()},
		bookings,
		engine,
		&fakeIdentityClient{actor: actor},
		passthroughTxManager{},
		noopLogger{},
	)
	uc.timeProvider = &fixedTime{now: testNow}
	return &fixture{uc: uc, bookings: bookings, engine: engine}
}

func manager() *identityservice.Actor {
	return &identityservice.Actor{ID: managerID, ManagedVenueIDs: []int64{venueID}}
}

func validRequest() *Request {
	return &Request{
		ManagerID:    managerID,
		VenueID:      venueID,
		Date:         types.DateString("2026-09-15"),
		StartTime:    types.TimeString("14:00"),
		CustomerName: "Иван Петров",
	}
}

func TestCreatePhysicalBooking_Success(t *testing.T) {
	f := newFixture(manager())

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.BookingTypePhysical), resp.BookingType)
	assert.True(t, resp.Amount.IsZero())

	require.NotNil(t, f.engine.confirmedEntry)
	assert.Equal(t, domain.BookingTypePhysical, f.engine.confirmedEntry.BookingType)
	require.NotNil(t, f.engine.confirmedEntry.CustomerName)
	assert.Equal(t, "Иван Петров", *f.engine.confirmedEntry.CustomerName)

	require.NotNil(t, f.bookings.created)
	assert.Equal(t, f.engine.confirmedEntry.BookingID, f.bookings.created.ID)
	assert.Equal(t, domain.StatusConfirmed, f.bookings.created.Status)
}

func TestCreatePhysicalBooking_AmountRecordedAsIs(t *testing.T) {
	f := newFixture(manager())
	amount := decimal.NewFromInt(2000)
	req := validRequest()
	req.Amount = &amount

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Amount.Equal(amount))
	assert.True(t, f.bookings.created.DueAmount.IsZero())
}

func TestCreatePhysicalBooking_NotManagerDenied(t *testing.T) {
	stranger := &identityservice.Actor{ID: managerID, ManagedVenueIDs: []int64{999}}
	f := newFixture(stranger)

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, f.engine.confirmedEntry)
}

func TestCreatePhysicalBooking_SlotHeldByCustomer(t *testing.T) {
	// Живое удержание клиента не перезаписывается менеджерской записью
	f := newFixture(manager())
	f.engine.confirmErr = reservation.ErrSlotHeldByOther

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrSlotHeldByOther)
	assert.Nil(t, f.bookings.created)
}

func TestCreatePhysicalBooking_SlotNotOnGrid(t *testing.T) {
	f := newFixture(manager())
	req := validRequest()
	req.StartTime = "14:30"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotOnGrid)
}

func TestCreatePhysicalBooking_FreesSlotWhenCreateFails(t *testing.T) {
	f := newFixture(manager())
	f.bookings.createErr = errors.New("insert failed")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	// Компенсация: слот освобождён обратно
	assert.True(t, f.engine.removed)
}

func TestCreatePhysicalBooking_EmptyCustomerName(t *testing.T) {
	f := newFixture(manager())
	req := validRequest()
	req.CustomerName = ""

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidRequest)
}
