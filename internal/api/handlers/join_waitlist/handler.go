package join_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
	"github.com/jongque/JQ-BookingService/internal/api/middleware"
	joinWaitlist "github.com/jongque/JQ-BookingService/internal/usecase/join_waitlist"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBody       = "некорректное тело запроса"
	msgInvalidParams     = "некорректные параметры, ожидается date=YYYY-MM-DD и startTime=HH:MM"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgBusinessNotFound  = "бизнес не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgAlreadyWaiting    = "вы уже находитесь в листе ожидания на это время"
	msgAlreadyBooked     = "у вас уже есть бронирование на это время"
	msgInvalidInput      = "некорректные данные запроса"
)

type Handler struct {
	useCase JoinWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase JoinWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/waitlist
// Лист ожидания доступен только авторизованным клиентам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/waitlist - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /businesses/{id}/waitlist - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req JoinWaitlistRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /businesses/{id}/waitlist - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(businessID, userID)
	if err != nil {
		h.logger.Warn("POST /businesses/{id}/waitlist - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, joinWaitlist.ErrBusinessNotFound):
			h.logger.Warn("POST /businesses/{id}/waitlist - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, joinWaitlist.ErrServiceNotFound):
			h.logger.Warn("POST /businesses/{id}/waitlist - Service not found: business_id=%d, service_id=%d",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, joinWaitlist.ErrAlreadyWaiting):
			h.logger.Warn("POST /businesses/{id}/waitlist - Already waiting: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyWaiting)

		case errors.Is(err, joinWaitlist.ErrAlreadyBooked):
			h.logger.Warn("POST /businesses/{id}/waitlist - Already booked: business_id=%d, user_id=%d",
				businessID, userID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, joinWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /businesses/{id}/waitlist - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /businesses/{id}/waitlist - Failed to join waitlist: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /businesses/{id}/waitlist - Joined waitlist: entry_id=%d, position=%d, user_id=%d",
		result.ID, result.Position, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
