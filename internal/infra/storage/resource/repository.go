package resource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/shoemant/strata-web/internal/domain"
	"github.com/shoemant/strata-web/pkg/dbmetrics"
	"github.com/shoemant/strata-web/pkg/psqlbuilder"
)

// Repository репозиторий для работы с ресурсами и их типами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресурсов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var resourceColumns = []string{
	"id",
	"building_id",
	"type_id",
	"name",
	"location_description",
	"total_capacity",
	"is_active",
	"created_at",
	"updated_at",
}

// Create создает новый ресурс
func (r *Repository) Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resources").
		Columns(
			"building_id",
			"type_id",
			"name",
			"location_description",
			"total_capacity",
			"is_active",
		).
		Values(
			res.BuildingID,
			res.TypeID,
			res.Name,
			res.LocationDescription,
			res.TotalCapacity,
			res.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает ресурс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanResource(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan resource: %v", ErrScanRow, err)
	}

	return res, nil
}

// GetByBuilding получает все ресурсы здания
// activeOnly ограничивает выдачу активными ресурсами
func (r *Repository) GetByBuilding(ctx context.Context, buildingID int64, activeOnly bool) ([]*domain.Resource, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"building_id": buildingID}).
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBuilding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBuilding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	resources := make([]*domain.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBuilding - scan row: %v", ErrScanRow, err)
		}
		resources = append(resources, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBuilding - rows error: %v", ErrScanRow, err)
	}

	return resources, nil
}

// SetActive переключает флаг активности ресурса
// Неактивный ресурс не принимает новые бронирования, но сохраняет историю
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("resources").
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrResourceNotFound
	}

	return nil
}

// CreateType создает новый тип ресурса
func (r *Repository) CreateType(ctx context.Context, t *domain.ResourceType) (*domain.ResourceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("resource_types").
		Columns("building_id", "name").
		Values(t.BuildingID, t.Name).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateType - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateType - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetTypeByID получает тип ресурса по ID
func (r *Repository) GetTypeByID(ctx context.Context, id int64) (*domain.ResourceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "building_id", "name").
		From("resource_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTypeByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.ResourceType
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.BuildingID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTypeByID - scan type: %v", ErrScanRow, err)
	}

	return &t, nil
}

// GetTypesByBuilding получает типы ресурсов здания
func (r *Repository) GetTypesByBuilding(ctx context.Context, buildingID int64) ([]*domain.ResourceType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "building_id", "name").
		From("resource_types").
		Where(squirrel.Eq{"building_id": buildingID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTypesByBuilding - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTypesByBuilding - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.ResourceType, 0)
	for rows.Next() {
		var t domain.ResourceType
		if err := rows.Scan(&t.ID, &t.BuildingID, &t.Name); err != nil {
			return nil, fmt.Errorf("%w: GetTypesByBuilding - scan row: %v", ErrScanRow, err)
		}
		types = append(types, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTypesByBuilding - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResource(row rowScanner) (*domain.Resource, error) {
	var res domain.Resource
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.BuildingID,
		&res.TypeID,
		&res.Name,
		&res.LocationDescription,
		&res.TotalCapacity,
		&res.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}
