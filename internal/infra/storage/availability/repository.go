package availability

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

// Repository репозиторий для работы с окнами доступности и
// материализованными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWindowsByResource получает все окна доступности ресурса,
// упорядоченные по (weekday, start_time)
func (r *Repository) GetWindowsByResource(ctx context.Context, resourceID int64) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"weekday",
		"start_time",
		"end_time",
		"interval_minutes",
		"created_at",
		"updated_at",
	).
		From("availability_windows").
		Where(squirrel.Eq{"resource_id": resourceID}).
		OrderBy("weekday ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByResource - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var weekday int
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&w.ID,
			&w.ResourceID,
			&weekday,
			&w.StartTime,
			&w.EndTime,
			&w.IntervalMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWindowsByResource - scan row: %v", ErrScanRow, err)
		}

		w.Weekday = time.Weekday(weekday)
		w.CreatedAt = createdAt.Time
		w.UpdatedAt = updatedAt.Time
		windows = append(windows, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWindowsByResource - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// ReplaceForResource атомарно публикует новый набор окон и слотов ресурса:
// удаляет старые и вставляет новые. Должен вызываться внутри транзакции
// (executor берётся из контекста), чтобы бронирования никогда не видели
// наполовину обновлённый набор слотов
func (r *Repository) ReplaceForResource(
	ctx context.Context,
	resourceID int64,
	windows []*domain.AvailabilityWindow,
	slots []*domain.TimeSlot,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"time_slots", "availability_windows"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"resource_id": resourceID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceForResource - build delete query: %v", ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: ReplaceForResource - execute delete: %v", ErrExecQuery, err)
		}
	}

	for _, w := range windows {
		query, args, err := psqlbuilder.Insert("availability_windows").
			Columns("resource_id", "weekday", "start_time", "end_time", "interval_minutes").
			Values(resourceID, int(w.Weekday), w.StartTime, w.EndTime, w.IntervalMinutes).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceForResource - build window insert: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&w.ID); err != nil {
			return fmt.Errorf("%w: ReplaceForResource - insert window: %v", ErrExecQuery, err)
		}
	}

	for _, s := range slots {
		query, args, err := psqlbuilder.Insert("time_slots").
			Columns("resource_id", "weekday", "start_time", "end_time", "capacity", "time_label").
			Values(resourceID, int(s.Weekday), s.StartTime, s.EndTime, s.Capacity, s.TimeLabel).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: ReplaceForResource - build slot insert: %v", ErrBuildQuery, err)
		}
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
			return fmt.Errorf("%w: ReplaceForResource - insert slot: %v", ErrExecQuery, err)
		}
	}

	return nil
}

var slotColumns = []string{
	"id",
	"resource_id",
	"weekday",
	"start_time",
	"end_time",
	"capacity",
	"time_label",
}

// GetSlotsByResourceAndWeekday получает слоты ресурса на день недели,
// упорядоченные по времени начала
func (r *Repository) GetSlotsByResourceAndWeekday(ctx context.Context, resourceID int64, weekday time.Weekday) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"resource_id": resourceID, "weekday": int(weekday)}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByResourceAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByResourceAndWeekday - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetSlotsByResourceAndWeekday - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByResourceAndWeekday - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetSlotByKey получает слот по естественному ключу
// (resource_id, weekday, start_time)
func (r *Repository) GetSlotByKey(ctx context.Context, resourceID int64, weekday time.Weekday, startTime types.TimeString) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"resource_id": resourceID,
			"weekday":     int(weekday),
			"start_time":  startTime,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByKey - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByKey - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var weekday int

	err := row.Scan(
		&slot.ID,
		&slot.ResourceID,
		&weekday,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&slot.TimeLabel,
	)
	if err != nil {
		return nil, err
	}

	slot.Weekday = time.Weekday(weekday)
	return &slot, nil
}
