package schedule

import (
	"context"

	"github.com/jongque/JQ-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
	GetWeekSchedule(ctx context.Context, businessID int64) (*domain.WeekSchedule, error)

	// ReplaceWeekSchedule заменяет все 7 дней расписания целиком
	// Должен вызываться внутри транзакции
	ReplaceWeekSchedule(ctx context.Context, week *domain.WeekSchedule) error
}

// TxManager интерфейс менеджера транзакций
// Замена расписания - это delete + insert, между ними читатель не должен
// видеть пустое расписание
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
