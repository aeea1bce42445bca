package waitlist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/dbmetrics"
	"github.com/jongque/JQ-BookingService/pkg/psqlbuilder"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

var waitlistColumns = []string{
	"id",
	"business_id",
	"service_id",
	"staff_id",
	"customer_id",
	"booking_date",
	"start_time",
	"position",
	"status",
	"left_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с листом ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись листа ожидания с уже вычисленной позицией
// Вызывается внутри транзакции usecase, чтобы позиция оставалась
// консистентной при конкурентных вступлениях
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"business_id",
			"service_id",
			"staff_id",
			"customer_id",
			"booking_date",
			"start_time",
			"position",
			"status",
		).
		Values(
			entry.BusinessID,
			entry.ServiceID,
			entry.StaffID,
			entry.CustomerID,
			entry.BookingDate,
			entry.StartTime,
			entry.Position,
			entry.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if uniqueErr := translateUniqueViolation(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return entry, nil
}

// translateUniqueViolation транслирует нарушение уникального индекса
// в сентинельную ошибку репозитория; nil, если это не unique violation
func translateUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return nil
	}

	switch {
	case strings.Contains(pqErr.Constraint, "customer_slot"):
		return ErrDuplicateWaiting
	case strings.Contains(pqErr.Constraint, "position"):
		return ErrPositionTaken
	default:
		return fmt.Errorf("%w: unique violation on %s", ErrExecQuery, pqErr.Constraint)
	}
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// GetWaitingByPartition получает все ожидающие записи партиции
// (business, date, time), отсортированные по позиции.
// Внутри транзакции блокирует строки партиции (FOR UPDATE) - так join/leave
// сохраняют непрерывность позиций при конкурентных запросах
func (r *Repository) GetWaitingByPartition(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"booking_date": date,
			"start_time":   startTime,
			"status":       domain.WaitlistStatusWaiting,
		}).
		OrderBy("position ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByPartition - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWaitingByPartition - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// CountWaiting подсчитывает ожидающие записи партиции
// Read-only вариант для отображения доступности
func (r *Repository) CountWaiting(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("waitlist_entries").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"booking_date": date,
			"start_time":   startTime,
			"status":       domain.WaitlistStatusWaiting,
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountWaiting - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountWaiting - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

// FindWaitingByCustomer ищет ожидающую запись клиента в партиции
// (для защиты от повторного вступления в лист ожидания)
func (r *Repository) FindWaitingByCustomer(ctx context.Context, businessID, serviceID, customerID int64, date time.Time, startTime types.TimeString) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{
			"business_id":  businessID,
			"service_id":   serviceID,
			"customer_id":  customerID,
			"booking_date": date,
			"start_time":   startTime,
			"status":       domain.WaitlistStatusWaiting,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindWaitingByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindWaitingByCustomer - scan entry: %w", ErrScanRow, err)
	}

	return entry, nil
}

// MarkLeft помечает запись как покинувшую лист ожидания
// (cancelled при выходе клиента, converted при превращении в бронирование)
func (r *Repository) MarkLeft(ctx context.Context, id int64, status domain.WaitlistStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Set("left_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.WaitlistStatusWaiting}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkLeft - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkLeft - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkLeft - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Смещение для двухпроходного сдвига позиций: уникальный индекс позиции
// проверяется построчно, и одиночный UPDATE position-1 может споткнуться
// о соседа, который ещё не успел сдвинуться
const positionShiftOffset = 1 << 20

// DecrementPositionsAfter сдвигает позиции ожидающих записей партиции
// на единицу вниз после ухода записи с позицией position.
// Восстанавливает непрерывность 1..N; вызывается в одной транзакции с MarkLeft
func (r *Repository) DecrementPositionsAfter(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	partition := squirrel.Eq{
		"business_id":  businessID,
		"booking_date": date,
		"start_time":   startTime,
		"status":       domain.WaitlistStatusWaiting,
	}

	// Первый проход: уводим сдвигаемые позиции в заведомо свободный диапазон
	liftQuery, liftArgs, err := psqlbuilder.Update("waitlist_entries").
		Set("position", squirrel.Expr("position + ?", positionShiftOffset)).
		Where(partition).
		Where(squirrel.Gt{"position": position}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementPositionsAfter - build lift query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, liftQuery, liftArgs...); err != nil {
		return fmt.Errorf("%w: DecrementPositionsAfter - execute lift: %w", ErrExecQuery, err)
	}

	// Второй проход: опускаем на итоговые позиции (на единицу ниже исходных)
	dropQuery, dropArgs, err := psqlbuilder.Update("waitlist_entries").
		Set("position", squirrel.Expr("position - ?", positionShiftOffset+1)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(partition).
		Where(squirrel.Gt{"position": positionShiftOffset}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementPositionsAfter - build drop query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, dropQuery, dropArgs...); err != nil {
		return fmt.Errorf("%w: DecrementPositionsAfter - execute drop: %w", ErrExecQuery, err)
	}

	return nil
}

// scanEntries сканирует результаты запроса в слайс записей
func scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %w", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %w", ErrScanRow, err)
	}

	return entries, nil
}

// scanEntry сканирует одну строку в domain.WaitlistEntry
func scanEntry(scan func(dest ...interface{}) error) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&entry.ID,
		&entry.BusinessID,
		&entry.ServiceID,
		&entry.StaffID,
		&entry.CustomerID,
		&entry.BookingDate,
		&entry.StartTime,
		&entry.Position,
		&entry.Status,
		&entry.LeftAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	entry.UpdatedAt = updatedAt.Time

	return &entry, nil
}
