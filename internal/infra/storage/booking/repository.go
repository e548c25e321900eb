package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/dbmetrics"
	"github.com/shoemant/strata-web/pkg/psqlbuilder"
	"github.com/shoemant/strata-web/pkg/types"
)

// Repository репозиторий журнала бронирований (booking ledger)
// Источник истины для проверок вместимости и пересечений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"b.id",
	"b.user_id",
	"b.resource_id",
	"b.mode",
	"b.booking_date",
	"b.slot_start_time",
	"b.duration_minutes",
	"b.start_at",
	"b.end_at",
	"b.status",
	"b.orphaned",
	"b.resource_name",
	"b.resource_location",
	"b.resource_type_name",
	"b.cancellation_reason",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Create создает новое бронирование
// На пути допуска вызывается внутри сериализуемой транзакции (executor
// берётся из контекста), сразу после чтения конкурирующих бронирований
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"resource_id",
			"mode",
			"booking_date",
			"slot_start_time",
			"duration_minutes",
			"start_at",
			"end_at",
			"status",
			"resource_name",
			"resource_location",
			"resource_type_name",
		).
		Values(
			b.UserID,
			b.ResourceID,
			b.Mode,
			b.BookingDate,
			nullableTime(b.SlotStartTime),
			b.DurationMinutes,
			b.StartAt,
			b.EndAt,
			b.Status,
			b.ResourceName,
			b.ResourceLocation,
			b.ResourceTypeName,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.id": id}).
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

// GetConfirmedBySlotDate получает подтверждённые бронирования слота
// (естественный ключ: слот задаётся временем начала, weekday выводится из
// даты) на конкретную дату.
// Внутри транзакции добавляет FOR UPDATE - это сериализует конкурирующие
// последовательности "проверить и вставить" по ключу (слот, дата)
func (r *Repository) GetConfirmedBySlotDate(ctx context.Context, resourceID int64, date time.Time, slotStart types.TimeString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{
			"b.resource_id":     resourceID,
			"b.mode":            domain.ModeSlot,
			"b.booking_date":    date,
			"b.slot_start_time": slotStart,
			"b.status":          domain.StatusConfirmed,
		}).
		OrderBy("b.id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedBySlotDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedBySlotDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetConfirmedByResourceAndRange получает подтверждённые free-form
// бронирования ресурса, пересекающие диапазон [from, to)
// Внутри транзакции добавляет FOR UPDATE для пути допуска
func (r *Repository) GetConfirmedByResourceAndRange(ctx context.Context, resourceID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{
			"b.resource_id": resourceID,
			"b.mode":        domain.ModeInterval,
			"b.status":      domain.StatusConfirmed,
		}).
		Where(squirrel.Lt{"b.start_at": to}).
		Where(squirrel.Gt{"b.end_at": from}).
		OrderBy("b.start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByResourceAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByResourceAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountConfirmedBySlotsAndDate возвращает число подтверждённых бронирований
// на дату, сгруппированное по времени начала слота
// Используется read-side проекцией открытых слотов
func (r *Repository) CountConfirmedBySlotsAndDate(ctx context.Context, resourceID int64, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_start_time", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{
			"resource_id":  resourceID,
			"mode":         domain.ModeSlot,
			"booking_date": date,
			"status":       domain.StatusConfirmed,
		}).
		GroupBy("slot_start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedBySlotsAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedBySlotsAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeString]int)
	for rows.Next() {
		var start types.TimeString
		var count int
		if err := rows.Scan(&start, &count); err != nil {
			return nil, fmt.Errorf("%w: CountConfirmedBySlotsAndDate - scan row: %v", ErrScanRow, err)
		}
		counts[start] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountConfirmedBySlotsAndDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// GetByUserWithFilter получает историю бронирований пользователя
func (r *Repository) GetByUserWithFilter(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.user_id": filter.UserID}).
		OrderBy("b.created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByBuildingWithFilter получает бронирования здания (вид менеджера)
// через связь bookings -> resources
func (r *Repository) GetByBuildingWithFilter(ctx context.Context, filter domain.BuildingBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("resources r ON r.id = b.resource_id").
		Where(squirrel.Eq{"r.building_id": filter.BuildingID}).
		OrderBy("b.created_at DESC")

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.resource_id": *filter.ResourceID})
	}

	// Фильтрация по периоду: для слотовых бронирований по дате,
	// для интервальных по start_at
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.GtOrEq{"b.booking_date": *filter.StartDate},
			squirrel.GtOrEq{"b.start_at": *filter.StartDate},
		})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.LtOrEq{"b.booking_date": *filter.EndDate},
			squirrel.LtOrEq{"b.start_at": *filter.EndDate},
		})
	}

	if !filter.IncludeCancelled {
		cancelledStatusStrings := make([]string, len(domain.CancelledStatuses))
		for i, s := range domain.CancelledStatuses {
			cancelledStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.status": cancelledStatusStrings})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBuildingWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBuildingWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Cancel отменяет бронирование с указанием причины
// Отмена - единственная терминальная операция: физического удаления нет.
// Предикат по статусу делает отмену атомарной: из двух гонящихся отмен
// строку обновит ровно одна, вторая получит ErrCannotCancel
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":     id,
			"status": string(domain.StatusConfirmed),
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// RecomputeOrphans пересчитывает флаг orphaned слотовых бронирований
// ресурса после перегенерации слотов. Бронирование считается осиротевшим,
// если в новом наборе нет слота с его естественным ключом. Вызывается в той
// же транзакции, что и ReplaceForResource
func (r *Repository) RecomputeOrphans(ctx context.Context, resourceID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	const slotExists = `EXISTS (
		SELECT 1 FROM time_slots s
		WHERE s.resource_id = b.resource_id
		  AND s.weekday = EXTRACT(DOW FROM b.booking_date)::int
		  AND s.start_time = b.slot_start_time
	)`

	// Слот бронирования вернулся после перегенерации - снимаем флаг
	clearQuery := `
		UPDATE bookings b
		SET orphaned = FALSE, updated_at = NOW()
		WHERE b.resource_id = $1
		  AND b.mode = $2
		  AND b.status = $3
		  AND b.orphaned
		  AND ` + slotExists

	if _, err := executor.ExecContext(ctx, clearQuery, resourceID, domain.ModeSlot, domain.StatusConfirmed); err != nil {
		return 0, fmt.Errorf("%w: RecomputeOrphans - clear flags: %v", ErrExecQuery, err)
	}

	flagQuery := `
		UPDATE bookings b
		SET orphaned = TRUE, updated_at = NOW()
		WHERE b.resource_id = $1
		  AND b.mode = $2
		  AND b.status = $3
		  AND NOT b.orphaned
		  AND NOT ` + slotExists

	result, err := executor.ExecContext(ctx, flagQuery, resourceID, domain.ModeSlot, domain.StatusConfirmed)
	if err != nil {
		return 0, fmt.Errorf("%w: RecomputeOrphans - flag orphans: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RecomputeOrphans - get rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

// nullableTime конвертирует пустой TimeString в NULL
func nullableTime(t types.TimeString) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var duration sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.ResourceID,
		&b.Mode,
		&b.BookingDate,
		&b.SlotStartTime, // TimeString.Scan обрабатывает NULL как пустое значение
		&duration,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.Orphaned,
		&b.ResourceName,
		&b.ResourceLocation,
		&b.ResourceTypeName,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		b.DurationMinutes = int(duration.Int64)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
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
