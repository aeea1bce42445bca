package create_booking

import (
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	createBooking "github.com/jongque/JQ-BookingService/internal/usecase/create_booking"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	StaffID    *int64 `json:"staffId,omitempty"`
	Date       string `json:"date"`      // "2025-10-15"
	StartTime  string `json:"startTime"` // "10:00"

	// Контактные данные гостя (обязательны при бронировании без авторизации)
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID               int64   `json:"id"`
	BookingNumber    string  `json:"bookingNumber"`
	BusinessID       int64   `json:"businessId"`
	ServiceID        int64   `json:"serviceId"`
	StaffID          *int64  `json:"staffId,omitempty"`
	Date             string  `json:"date"`
	StartTime        string  `json:"startTime"`
	DurationMinutes  int     `json:"durationMinutes"`
	QueueNumber      int     `json:"queueNumber"`
	Status           string  `json:"status"`
	GuestLookupToken *string `json:"guestLookupToken,omitempty"`
	CreatedAt        string  `json:"createdAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
// userID передается из контекста авторизации; nil = гостевое бронирование
func (r *CreateBookingRequest) ToUseCaseRequest(userID *int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		CustomerID:    userID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:               resp.ID,
		BookingNumber:    resp.BookingNumber,
		BusinessID:       resp.BusinessID,
		ServiceID:        resp.ServiceID,
		StaffID:          resp.StaffID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		DurationMinutes:  resp.DurationMinutes,
		QueueNumber:      resp.QueueNumber,
		Status:           resp.Status,
		GuestLookupToken: resp.GuestLookupToken,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
