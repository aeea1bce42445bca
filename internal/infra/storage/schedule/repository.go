package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/dbmetrics"
	"github.com/jongque/JQ-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бизнесами, услугами и рабочими часами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBusiness получает бизнес по ID
func (r *Repository) GetBusiness(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"owner_id",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Name,
		&business.OwnerID,
		&business.IsActive,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBusiness - scan business: %w", ErrScanRow, err)
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}

// GetService получает услугу по ID с проверкой принадлежности бизнесу
func (r *Repository) GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"duration_minutes",
		"price",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.IsActive,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetWeekSchedule получает рабочие часы бизнеса на все 7 дней недели
func (r *Repository) GetWeekSchedule(ctx context.Context, businessID int64) (*domain.WeekSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("operating_hours").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedule := &domain.WeekSchedule{BusinessID: businessID}
	found := 0

	for rows.Next() {
		var oh domain.OperatingHours

		err := rows.Scan(
			&oh.ID,
			&oh.BusinessID,
			&oh.DayOfWeek,
			&oh.OpenTime,
			&oh.CloseTime,
			&oh.IsOpen,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetWeekSchedule - scan row: %w", ErrScanRow, err)
		}

		if oh.DayOfWeek < 0 || oh.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: GetWeekSchedule - day_of_week out of range: %d", ErrScanRow, oh.DayOfWeek)
		}

		schedule.Days[oh.DayOfWeek] = oh
		found++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeekSchedule - rows error: %w", ErrScanRow, err)
	}

	if found == 0 {
		return nil, ErrScheduleNotFound
	}

	return schedule, nil
}

// ReplaceWeekSchedule заменяет расписание бизнеса целиком:
// удаляет все строки и вставляет 7 новых.
// ДОЛЖЕН вызываться внутри транзакции (через txManager), чтобы читатели
// не увидели частичное расписание из 0..6 дней
func (r *Repository) ReplaceWeekSchedule(ctx context.Context, schedule *domain.WeekSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("operating_hours").
		Where(squirrel.Eq{"business_id": schedule.BusinessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekSchedule - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekSchedule - execute delete: %w", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("operating_hours").
		Columns("business_id", "day_of_week", "open_time", "close_time", "is_open")

	for day, oh := range schedule.Days {
		insertBuilder = insertBuilder.Values(
			schedule.BusinessID,
			day,
			oh.OpenTime,
			oh.CloseTime,
			oh.IsOpen,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeekSchedule - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeekSchedule - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
