package get_booking_by_number

import (
	"context"

	"github.com/jongque/JQ-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByBookingNumber(ctx context.Context, number string, userID int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
