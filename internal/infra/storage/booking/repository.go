package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SVB-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Repository репозиторий долговременных записей бронирований
//
// Запись бронирования - отдельная сущность от слотового состояния площадки:
// слотовую запись мутирует только движок резервирования, а статусы здесь
// обновляются в той же транзакции, что и соответствующая мутация слота.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"venue_id",
	"user_id",
	"booking_date",
	"start_time",
	"end_time",
	"booking_type",
	"status",
	"amount",
	"advance_amount",
	"due_amount",
	"hold_expires_at",
	"payment_transaction_id",
	"payment_timestamp",
	"cancellation_reason",
	"cancelled_at",
	"expired_at",
	"customer_name",
	"customer_phone",
	"created_at",
	"updated_at",
}

// Create создает запись бронирования
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	bookingDate, err := b.Date.Time(time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - invalid booking date: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"venue_id",
			"user_id",
			"booking_date",
			"start_time",
			"end_time",
			"booking_type",
			"status",
			"amount",
			"advance_amount",
			"due_amount",
			"hold_expires_at",
			"customer_name",
			"customer_phone",
		).
		Values(
			b.ID,
			b.VenueID,
			b.UserID,
			bookingDate,
			b.StartTime,
			b.EndTime,
			b.BookingType,
			b.Status,
			b.Amount,
			b.AdvanceAmount,
			b.DueAmount,
			b.HoldExpiresAt,
			b.CustomerName,
			b.CustomerPhone,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByUserID получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByVenueWithFilter получает бронирования площадки с фильтрацией
// по периоду, статусу и включению неактивных записей
func (r *Repository) GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"venue_id": filter.VenueID})

	if filter.StartDate != nil {
		startDate, err := filter.StartDate.Time(time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByVenueWithFilter - invalid start date: %v", ErrBuildQuery, err)
		}
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": startDate})
	}
	if filter.EndDate != nil {
		endDate, err := filter.EndDate.Time(time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByVenueWithFilter - invalid end date: %v", ErrBuildQuery, err)
		}
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": endDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenueWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// MarkConfirmed переводит бронирование из pending_payment в confirmed
// и записывает данные платежа. Условный переход: если строка уже не в
// pending_payment, возвращает ErrStatusConflict
func (r *Repository) MarkConfirmed(ctx context.Context, id uuid.UUID, transactionID string, paidAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("payment_transaction_id", transactionID).
		Set("payment_timestamp", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPendingPayment}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "MarkConfirmed")
}

// Cancel переводит бронирование в отмененный статус с указанием причины
// Допустим только из pending_payment или confirmed
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, status domain.BookingStatus, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": []string{string(domain.StatusPendingPayment), string(domain.StatusConfirmed)},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "Cancel")
}

// MarkExpired переводит бронирование из pending_payment в expired
func (r *Repository) MarkExpired(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("expired_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPendingPayment}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - build update query: %v", ErrBuildQuery, err)
	}

	return r.execConditional(ctx, executor, query, args, "MarkExpired")
}

func (r *Repository) execConditional(ctx context.Context, executor DBExecutor, query string, args []interface{}, method string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, method, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBookingInto(scanner rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var bookingDate time.Time
	var createdAt, updatedAt sql.NullTime

	err := scanner.Scan(
		&b.ID,
		&b.VenueID,
		&b.UserID,
		&bookingDate,
		&b.StartTime,
		&b.EndTime,
		&b.BookingType,
		&b.Status,
		&b.Amount,
		&b.AdvanceAmount,
		&b.DueAmount,
		&b.HoldExpiresAt,
		&b.PaymentTransactionID,
		&b.PaymentTimestamp,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.ExpiredAt,
		&b.CustomerName,
		&b.CustomerPhone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Date = types.NewDateString(bookingDate)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	return scanBookingInto(row)
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBookingInto(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
