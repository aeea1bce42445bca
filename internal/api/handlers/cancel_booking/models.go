package cancel_booking

import (
	"github.com/jongque/JQ-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string  `json:"cancellationReason"`
	GuestToken         *string `json:"guestToken,omitempty"` // токен гостевого доступа
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
// userID передается из контекста авторизации; nil = гостевая отмена по токену
func (r *CancelBookingRequest) ToServiceRequest(userID *int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		UserID:             userID,
		GuestToken:         r.GuestToken,
		CancellationReason: r.CancellationReason,
	}
}
