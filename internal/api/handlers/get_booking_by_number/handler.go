package get_booking_by_number

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
	"github.com/jongque/JQ-BookingService/internal/api/middleware"
	"github.com/jongque/JQ-BookingService/internal/service/bookings"
)

const (
	msgInvalidNumber = "некорректный номер бронирования"
	msgNotFound      = "бронирование не найдено"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/bookings/number/{bookingNumber}
// Поиск по номеру, который клиент получает при создании бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	number := vars["bookingNumber"]
	if number == "" {
		h.logger.Warn("GET /bookings/number/{number} - Empty booking number")
		handlers.RespondBadRequest(w, msgInvalidNumber)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/number/{number} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.GetByBookingNumber(r.Context(), number, userID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/number/{number} - Booking not found: number=%s", number)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/number/{number} - Access denied: number=%s, user_id=%d", number, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings/number/{number} - Invalid booking number: %v", err)
			handlers.RespondBadRequest(w, msgInvalidNumber)

		default:
			h.logger.Error("GET /bookings/number/{number} - Failed to get booking: number=%s, error=%v", number, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/number/{number} - Booking retrieved successfully: number=%s, user_id=%d",
		number, userID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}
