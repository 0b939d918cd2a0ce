package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/paymentgateway"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
	"github.com/m04kA/SVB-ReservationService/pkg/ptr"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	ownerID int64 = 42
	venueID int64 = 1
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	confirmErr   error
	confirmCalls int
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeBookingRepo) MarkConfirmed(ctx context.Context, id uuid.UUID, transactionID string, paidAt time.Time) error {
	r.confirmCalls++
	return r.confirmErr
}

type fakeEngine struct {
	confirmErr error

	confirmed bool
	removed   bool
}

func (e *fakeEngine) ConfirmBooking(ctx context.Context, venueID int64, details domain.BookingEntry) error {
	if e.confirmErr != nil {
		return e.confirmErr
	}
	e.confirmed = true
	return nil
}

func (e *fakeEngine) RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	e.removed = true
	return nil
}

type fakePaymentClient struct {
	result *paymentgateway.VerificationResult
	err    error
}

func (c *fakePaymentClient) VerifyPayment(ctx context.Context, transactionID string) (*paymentgateway.VerificationResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
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

var testNow = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

func pendingBooking() *domain.Booking {
	holdExpiry := testNow.Add(3 * time.Minute)
	return &domain.Booking{
		ID:            uuid.New(),
		VenueID:       venueID,
		UserID:        ownerID,
		Date:          types.DateString("2026-09-15"),
		StartTime:     types.TimeString("18:00"),
		Status:        domain.StatusPendingPayment,
		Amount:        decimal.NewFromInt(2000),
		AdvanceAmount: decimal.NewFromInt(1000),
		DueAmount:     decimal.NewFromInt(1000),
		HoldExpiresAt: &holdExpiry,
	}
}

func verifiedPayment(amount decimal.Decimal) *paymentgateway.VerificationResult {
	return &paymentgateway.VerificationResult{
		TransactionID: "txn-1",
		Verified:      true,
		Amount:        amount,
		Currency:      "RUB",
		PaidAt:        testNow,
	}
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookingRepo
	engine   *fakeEngine
	payments *fakePaymentClient
}

func newFixture(booking *domain.Booking, payment *paymentgateway.VerificationResult) *fixture {
	bookings := &fakeBookingRepo{booking: booking}
	engine := &fakeEngine{}
	payments := &fakePaymentClient{result: payment}
	uc := NewUseCase(bookings, engine, payments, passthroughTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return &fixture{uc: uc, bookings: bookings, engine: engine, payments: payments}
}

func request(booking *domain.Booking) *Request {
	return &Request{UserID: ownerID, BookingID: booking.ID, TransactionID: "txn-1"}
}

func TestConfirmPayment_Success(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))

	resp, err := f.uc.Execute(context.Background(), request(booking))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.True(t, f.engine.confirmed)
	assert.Equal(t, 1, f.bookings.confirmCalls)
}

func TestConfirmPayment_NotOwner(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 77, BookingID: booking.ID, TransactionID: "txn-1"})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, f.engine.confirmed)
}

func TestConfirmPayment_AlreadyConfirmedByOtherTransaction(t *testing.T) {
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	booking.PaymentTransactionID = ptr.Ptr("txn-999")
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Equal(t, 0, f.bookings.confirmCalls)
}

func TestConfirmPayment_DuplicateCallbackReplaysResponse(t *testing.T) {
	// Шлюз повторил колбэк по уже учтённой транзакции: отвечаем успехом,
	// не трогая ни запись, ни состояние слотов
	booking := pendingBooking()
	booking.Status = domain.StatusConfirmed
	paidAt := testNow.Add(-time.Minute)
	booking.PaymentTransactionID = ptr.Ptr("txn-1")
	booking.PaymentTimestamp = &paidAt
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))

	resp, err := f.uc.Execute(context.Background(), request(booking))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, paidAt, resp.PaymentTimestamp)
	assert.Equal(t, booking.AdvanceAmount, resp.AdvanceAmount)
	assert.False(t, f.engine.confirmed)
	assert.Equal(t, 0, f.bookings.confirmCalls)
}

func TestConfirmPayment_HoldExpired(t *testing.T) {
	booking := pendingBooking()
	expired := testNow.Add(-time.Second)
	booking.HoldExpiresAt = &expired
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.False(t, f.engine.confirmed)
}

func TestConfirmPayment_PaymentNotFound(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, nil)
	f.payments.err = paymentgateway.ErrPaymentNotFound

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrPaymentNotVerified)
}

func TestConfirmPayment_PaymentNotVerified(t *testing.T) {
	booking := pendingBooking()
	payment := verifiedPayment(booking.AdvanceAmount)
	payment.Verified = false
	f := newFixture(booking, payment)

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrPaymentNotVerified)
}

func TestConfirmPayment_AmountMismatch(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, verifiedPayment(decimal.NewFromInt(500)))

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrAmountMismatch)
	assert.False(t, f.engine.confirmed)
}

func TestConfirmPayment_SlotLost(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))
	f.engine.confirmErr = reservation.ErrSlotAlreadyBooked

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrSlotLost)
	assert.Equal(t, 0, f.bookings.confirmCalls)
}

func TestConfirmPayment_RollsBackSlotOnStatusConflict(t *testing.T) {
	booking := pendingBooking()
	f := newFixture(booking, verifiedPayment(booking.AdvanceAmount))
	f.bookings.confirmErr = bookingRepo.ErrStatusConflict

	_, err := f.uc.Execute(context.Background(), request(booking))

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	// Слот возвращён, состояние не разошлось с записью бронирования
	assert.True(t, f.engine.removed)
}
