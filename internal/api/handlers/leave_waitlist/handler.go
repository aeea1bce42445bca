package leave_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
	"github.com/jongque/JQ-BookingService/internal/api/middleware"
	leaveWaitlist "github.com/jongque/JQ-BookingService/internal/usecase/leave_waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgNotFound       = "запись листа ожидания не найдена"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	useCase LeaveWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase LeaveWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	entryID, err := strconv.ParseInt(vars["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /waitlist/{id} - Invalid entry ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /waitlist/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.useCase.Execute(r.Context(), &leaveWaitlist.Request{
		EntryID:    entryID,
		CustomerID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, leaveWaitlist.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/{id} - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, leaveWaitlist.ErrAccessDenied):
			h.logger.Warn("DELETE /waitlist/{id} - Access denied: entry_id=%d, user_id=%d", entryID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, leaveWaitlist.ErrInvalidInput):
			h.logger.Warn("DELETE /waitlist/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		default:
			h.logger.Error("DELETE /waitlist/{id} - Failed to leave waitlist: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Left waitlist: entry_id=%d, user_id=%d", entryID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
