package bookings

import (
	"context"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBookingNumber(ctx context.Context, number string) (*domain.Booking, error)
	GetByGuestToken(ctx context.Context, token string) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, actualStart, actualEnd *time.Time) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// ScheduleRepository интерфейс репозитория расписаний
// Нужен для проверки прав: владелец бизнеса управляет его бронированиями
type ScheduleRepository interface {
	GetBusiness(ctx context.Context, id int64) (*domain.Business, error)
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
