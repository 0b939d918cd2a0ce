package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	paymentClient "github.com/m04kA/SVB-ReservationService/internal/integrations/paymentgateway"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case подтверждения оплаты бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	engine        ReservationEngine
	paymentClient PaymentGatewayClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engine ReservationEngine,
	paymentClient PaymentGatewayClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		engine:        engine,
		paymentClient: paymentClient,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute подтверждает оплату: проверяет транзакцию в платёжном шлюзе,
// переводит слот из удержанного в забронированный и фиксирует статус
// confirmed в записи бронирования. Повторный колбэк с той же транзакцией
// возвращает сохранённый успешный ответ, с другой - ErrAlreadyProcessed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: user=%d, booking=%s, transaction=%s", req.UserID, req.BookingID, req.TransactionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование и проверяем владельца
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking %s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: failed to get booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if booking.UserID != req.UserID {
		uc.logger.Warn("ConfirmPayment: user %d is not the owner of booking %s", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем статус и срок удержания
	if !booking.IsPendingPayment() {
		// Повторный колбэк шлюза по уже учтённой транзакции: отвечаем
		// успехом без побочных эффектов
		if booking.Status == domain.StatusConfirmed &&
			booking.PaymentTransactionID != nil && *booking.PaymentTransactionID == req.TransactionID {
			uc.logger.Info("ConfirmPayment: booking %s already confirmed by transaction %s, replaying response", booking.ID, req.TransactionID)
			var paidAt time.Time
			if booking.PaymentTimestamp != nil {
				paidAt = *booking.PaymentTimestamp
			}
			return uc.buildResponse(booking, paidAt), nil
		}
		uc.logger.Warn("ConfirmPayment: booking %s has status %s", req.BookingID, booking.Status)
		return nil, ErrAlreadyProcessed
	}
	now := uc.timeProvider.Now()
	if booking.HoldExpired(now) {
		uc.logger.Warn("ConfirmPayment: hold for booking %s expired at %s", req.BookingID, booking.HoldExpiresAt)
		return nil, ErrHoldExpired
	}

	// 4. Проверяем платёж в шлюзе
	verification, err := uc.paymentClient.VerifyPayment(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, paymentClient.ErrPaymentNotFound) {
			uc.logger.Warn("ConfirmPayment: transaction %s not found in gateway", req.TransactionID)
			return nil, ErrPaymentNotVerified
		}
		uc.logger.Error("ConfirmPayment: failed to verify transaction %s: %v", req.TransactionID, err)
		return nil, fmt.Errorf("%w: failed to verify payment: %v", ErrInternal, err)
	}
	if !verification.Verified {
		uc.logger.Warn("ConfirmPayment: transaction %s is not verified", req.TransactionID)
		return nil, ErrPaymentNotVerified
	}
	if !verification.Amount.Equal(booking.AdvanceAmount) {
		uc.logger.Warn("ConfirmPayment: transaction %s amount %s does not match advance %s",
			req.TransactionID, verification.Amount, booking.AdvanceAmount)
		return nil, ErrAmountMismatch
	}

	// 5. Переводим слот в забронированный
	entry := domain.BookingEntry{
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		BookingID:   booking.ID,
		BookingType: booking.BookingType,
	}
	if err := uc.engine.ConfirmBooking(ctx, booking.VenueID, entry); err != nil {
		return nil, uc.mapEngineError(err, booking.ID)
	}

	// 6. Фиксируем статус в записи бронирования
	paidAt := verification.PaidAt
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.bookingRepo.MarkConfirmed(txCtx, booking.ID, verification.TransactionID, paidAt)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			// Запись успели перевести в другой статус: возвращаем слот,
			// чтобы состояние не разошлось с бронированием
			uc.logger.Warn("ConfirmPayment: booking %s changed status concurrently, rolling back slot", booking.ID)
			if rbErr := uc.engine.RemoveBooking(ctx, booking.VenueID, booking.Date, booking.StartTime); rbErr != nil {
				uc.logger.Error("ConfirmPayment: failed to roll back slot for booking %s: %v", booking.ID, rbErr)
			}
			return nil, ErrAlreadyProcessed
		}
		uc.logger.Error("ConfirmPayment: failed to mark booking %s confirmed: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to mark booking confirmed: %v", ErrInternal, err)
	}

	uc.logger.Info("ConfirmPayment: booking %s confirmed, transaction %s", booking.ID, verification.TransactionID)
	return uc.buildResponse(booking, paidAt), nil
}

func (uc *UseCase) buildResponse(booking *domain.Booking, paidAt time.Time) *Response {
	return &Response{
		ID:               booking.ID,
		VenueID:          booking.VenueID,
		Date:             booking.Date,
		StartTime:        booking.StartTime,
		Status:           string(domain.StatusConfirmed),
		Amount:           booking.Amount,
		AdvanceAmount:    booking.AdvanceAmount,
		DueAmount:        booking.DueAmount,
		PaymentTimestamp: paidAt,
	}
}

func (uc *UseCase) mapEngineError(err error, bookingID uuid.UUID) error {
	switch {
	case errors.Is(err, reservation.ErrSlotAlreadyBooked):
		uc.logger.Warn("ConfirmPayment: slot for booking %s is taken by another booking", bookingID)
		return ErrSlotLost
	case errors.Is(err, reservation.ErrSlotHeldByOther):
		uc.logger.Warn("ConfirmPayment: slot for booking %s is held by another booking", bookingID)
		return ErrSlotLost
	case errors.Is(err, reservation.ErrSlotBlocked):
		uc.logger.Warn("ConfirmPayment: slot for booking %s was blocked", bookingID)
		return ErrSlotLost
	case errors.Is(err, reservation.ErrContention):
		return ErrContention
	default:
		uc.logger.Error("ConfirmPayment: failed to confirm slot for booking %s: %v", bookingID, err)
		return fmt.Errorf("%w: failed to confirm slot: %v", ErrInternal, err)
	}
}
