package leave_waitlist

import (
	"context"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	// GetByID получает запись листа ожидания
	GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error)

	// GetWaitingByPartition получает ожидающие записи партиции по позиции
	// Внутри транзакции блокирует строки (FOR UPDATE)
	GetWaitingByPartition(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString) ([]*domain.WaitlistEntry, error)

	// MarkLeft помечает запись покинувшей лист ожидания
	MarkLeft(ctx context.Context, id int64, status domain.WaitlistStatus) error

	// DecrementPositionsAfter сдвигает позиции после ушедшей записи
	DecrementPositionsAfter(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString, position int) error
}

// TxManager интерфейс менеджера транзакций
// Выход и сдвиг позиций должны быть атомарны, чтобы позиции оставались
// непрерывными 1..N
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
