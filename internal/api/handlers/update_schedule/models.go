package update_schedule

import (
	"github.com/jongque/JQ-BookingService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
// Расписание заменяется целиком; пропущенные дни считаются закрытыми
type UpdateScheduleRequest struct {
	Days []models.DaySchedule `json:"days"`
}

// ToServiceRequest конвертирует HTTP request в запрос сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID: userID,
		Days:   r.Days,
	}
}
