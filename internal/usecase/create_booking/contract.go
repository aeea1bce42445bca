package create_booking

import (
	"context"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create создает бронирование; возвращает ErrQueueNumberTaken /
	// ErrBookingNumberTaken при нарушении уникальных индексов
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// GetByBusinessWithFilter получает бронирования бизнеса на дату
	// Внутри транзакции для одной даты блокирует строки (FOR UPDATE)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)

	// MaxQueueNumber возвращает максимальный занятый номер очереди на дату
	MaxQueueNumber(ctx context.Context, businessID int64, date time.Time) (int, error)

	// CountActiveByCustomerAt подсчитывает активные бронирования клиента
	// на дату и время (защита от дублей)
	CountActiveByCustomerAt(ctx context.Context, businessID, customerID int64, date time.Time, startTime string) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetWeekSchedule(ctx context.Context, businessID int64) (*domain.WeekSchedule, error)
}

// TxManager интерфейс менеджера транзакций
// Создание бронирования идёт в serializable-транзакции: проверка конфликтов,
// выдача номера очереди и вставка должны быть атомарны
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

// slotRequest внутренние данные проверяемого слота
type slotRequest struct {
	start    types.TimeString
	duration int
	staffID  *int64
}
