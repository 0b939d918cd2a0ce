package venuestate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SVB-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий записей слотового состояния площадок
//
// Одна строка на площадку: конфигурация расписания и четыре коллекции
// исключений хранятся как JSONB, поле version обеспечивает оптимистическую
// блокировку. Save проходит только если version не изменился с момента чтения.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись площадки с пустыми коллекциями исключений
func (r *Repository) Create(ctx context.Context, state *domain.VenueSlotState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	configJSON, blockedJSON, bookingsJSON, heldJSON, reservedJSON, err := marshalCollections(state)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Insert("venue_slot_states").
		Columns("venue_id", "config", "blocked", "bookings", "held", "reserved", "version").
		Values(state.VenueID, configJSON, blockedJSON, bookingsJSON, heldJSON, reservedJSON, 1).
		Suffix("RETURNING version, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&state.Version, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrVenueStateExists
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	state.CreatedAt = createdAt.Time
	state.UpdatedAt = updatedAt.Time

	return nil
}

// Get читает текущее состояние площадки вместе с версией
func (r *Repository) Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"venue_id",
		"config",
		"blocked",
		"bookings",
		"held",
		"reserved",
		"version",
		"created_at",
		"updated_at",
	).
		From("venue_slot_states").
		Where(squirrel.Eq{"venue_id": venueID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var state domain.VenueSlotState
	var configRaw, blockedRaw, bookingsRaw, heldRaw, reservedRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&state.VenueID,
		&configRaw,
		&blockedRaw,
		&bookingsRaw,
		&heldRaw,
		&reservedRaw,
		&state.Version,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVenueStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan state: %v", ErrScanRow, err)
	}

	if err := unmarshalCollections(&state, configRaw, blockedRaw, bookingsRaw, heldRaw, reservedRaw); err != nil {
		return nil, err
	}

	state.CreatedAt = createdAt.Time
	state.UpdatedAt = updatedAt.Time

	return &state, nil
}

// Save записывает состояние целиком с проверкой версии
//
// UPDATE проходит только если version в базе равен версии, прочитанной
// вызывающей стороной. Ноль затронутых строк означает конкурентную запись -
// возвращается ErrVersionConflict, и вызывающая сторона должна повторить
// цикл read-validate-write. При успехе версия в state инкрементируется.
func (r *Repository) Save(ctx context.Context, state *domain.VenueSlotState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	configJSON, blockedJSON, bookingsJSON, heldJSON, reservedJSON, err := marshalCollections(state)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("venue_slot_states").
		Set("config", configJSON).
		Set("blocked", blockedJSON).
		Set("bookings", bookingsJSON).
		Set("held", heldJSON).
		Set("reserved", reservedJSON).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"venue_id": state.VenueID, "version": state.Version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVersionConflict
	}

	state.Version++
	return nil
}

// ListVenueIDs возвращает идентификаторы всех площадок
// Используется фоновой чисткой протухших удержаний
func (r *Repository) ListVenueIDs(ctx context.Context) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("venue_id").
		From("venue_slot_states").
		OrderBy("venue_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListVenueIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListVenueIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venueIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: ListVenueIDs - scan venue_id: %v", ErrScanRow, err)
		}
		venueIDs = append(venueIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListVenueIDs - rows error: %v", ErrScanRow, err)
	}

	return venueIDs, nil
}

// PurgeExpiredHolds удаляет протухшие удержания одной площадки одним
// условным UPDATE (без полного протокола движка - запись чистит только то,
// что уже логически не существует). Возвращает число удаленных удержаний.
func (r *Repository) PurgeExpiredHolds(ctx context.Context, venueID int64, now time.Time) (int, error) {
	state, err := r.Get(ctx, venueID)
	if err != nil {
		return 0, err
	}

	removed := state.PurgeExpiredHolds(now)
	if removed == 0 {
		return 0, nil
	}

	heldJSON, err := json.Marshal(state.Held)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpiredHolds - marshal held: %v", ErrMarshalState, err)
	}

	query, args, err := psqlbuilder.Update("venue_slot_states").
		Set("held", heldJSON).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"venue_id": venueID, "version": state.Version}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpiredHolds - build update query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpiredHolds - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeExpiredHolds - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Конкурентная запись движка уже обновила коллекции - чистку этой
		// площадки пропускаем, следующий проход доберет остатки
		return 0, ErrVersionConflict
	}

	return removed, nil
}

func marshalCollections(state *domain.VenueSlotState) (configJSON, blockedJSON, bookingsJSON, heldJSON, reservedJSON []byte, err error) {
	if configJSON, err = json.Marshal(state.Config); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("%w: marshal config: %v", ErrMarshalState, err)
	}
	if blockedJSON, err = json.Marshal(emptyIfNilBlocked(state.Blocked)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("%w: marshal blocked: %v", ErrMarshalState, err)
	}
	if bookingsJSON, err = json.Marshal(emptyIfNilBookings(state.Bookings)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("%w: marshal bookings: %v", ErrMarshalState, err)
	}
	if heldJSON, err = json.Marshal(emptyIfNilHolds(state.Held)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("%w: marshal held: %v", ErrMarshalState, err)
	}
	if reservedJSON, err = json.Marshal(emptyIfNilReserved(state.Reserved)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("%w: marshal reserved: %v", ErrMarshalState, err)
	}
	return configJSON, blockedJSON, bookingsJSON, heldJSON, reservedJSON, nil
}

func unmarshalCollections(state *domain.VenueSlotState, configRaw, blockedRaw, bookingsRaw, heldRaw, reservedRaw []byte) error {
	if err := json.Unmarshal(configRaw, &state.Config); err != nil {
		return fmt.Errorf("%w: unmarshal config: %v", ErrUnmarshalState, err)
	}
	if err := json.Unmarshal(blockedRaw, &state.Blocked); err != nil {
		return fmt.Errorf("%w: unmarshal blocked: %v", ErrUnmarshalState, err)
	}
	if err := json.Unmarshal(bookingsRaw, &state.Bookings); err != nil {
		return fmt.Errorf("%w: unmarshal bookings: %v", ErrUnmarshalState, err)
	}
	if err := json.Unmarshal(heldRaw, &state.Held); err != nil {
		return fmt.Errorf("%w: unmarshal held: %v", ErrUnmarshalState, err)
	}
	if err := json.Unmarshal(reservedRaw, &state.Reserved); err != nil {
		return fmt.Errorf("%w: unmarshal reserved: %v", ErrUnmarshalState, err)
	}
	return nil
}

// JSONB-колонки объявлены NOT NULL, поэтому nil-слайсы пишем как []

func emptyIfNilBlocked(v []domain.BlockedEntry) []domain.BlockedEntry {
	if v == nil {
		return []domain.BlockedEntry{}
	}
	return v
}

func emptyIfNilBookings(v []domain.BookingEntry) []domain.BookingEntry {
	if v == nil {
		return []domain.BookingEntry{}
	}
	return v
}

func emptyIfNilHolds(v []domain.HoldEntry) []domain.HoldEntry {
	if v == nil {
		return []domain.HoldEntry{}
	}
	return v
}

func emptyIfNilReserved(v []domain.ReservedEntry) []domain.ReservedEntry {
	if v == nil {
		return []domain.ReservedEntry{}
	}
	return v
}
