package get_guest_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
	"github.com/jongque/JQ-BookingService/internal/service/bookings"
)

const (
	msgMissingToken = "отсутствует токен бронирования"
	msgNotFound     = "бронирование не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/guest/{token}
// Публичный маршрут: токен выдаётся гостю при создании бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	token := vars["token"]
	if token == "" {
		h.logger.Warn("GET /bookings/guest/{token} - Missing token")
		handlers.RespondBadRequest(w, msgMissingToken)
		return
	}

	booking, err := h.service.GetByGuestToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/guest/{token} - Booking not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/guest/{token} - Failed to get booking: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/guest/{token} - Guest booking retrieved: booking_id=%d", booking.ID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
