package get_queue_status

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
	"github.com/jongque/JQ-BookingService/internal/domain"
	getQueueStatus "github.com/jongque/JQ-BookingService/internal/usecase/get_queue_status"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	useCase GetQueueStatusUseCase
	logger  Logger
}

func NewHandler(useCase GetQueueStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/queue
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/queue - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Дата опциональна - по умолчанию сегодняшняя живая очередь
	date := time.Now().Truncate(24 * time.Hour)
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		date, err = time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /businesses/{id}/queue - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getQueueStatus.Request{
		BusinessID: businessID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getQueueStatus.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/queue - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getQueueStatus.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/queue - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/queue - Failed to get queue status: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/queue - Queue status retrieved: business_id=%d, in_queue=%d",
		businessID, result.TotalInQueue)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
