package join_waitlist

import (
	"context"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	// Create создает запись с уже вычисленной позицией
	Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error)

	// GetWaitingByPartition получает ожидающие записи партиции по позиции
	// Внутри транзакции блокирует строки (FOR UPDATE)
	GetWaitingByPartition(ctx context.Context, businessID int64, date time.Time, startTime types.TimeString) ([]*domain.WaitlistEntry, error)

	// FindWaitingByCustomer ищет ожидающую запись клиента в партиции
	FindWaitingByCustomer(ctx context.Context, businessID, serviceID, customerID int64, date time.Time, startTime types.TimeString) (*domain.WaitlistEntry, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActiveByCustomerAt подсчитывает активные бронирования клиента
	// на дату и время
	CountActiveByCustomerAt(ctx context.Context, businessID, customerID int64, date time.Time, startTime string) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// TxManager интерфейс менеджера транзакций
// Вычисление позиции и вставка должны быть атомарны, иначе два клиента
// могут получить одну позицию
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
