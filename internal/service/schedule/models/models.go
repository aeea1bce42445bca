package models

import (
	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на замену недельного расписания
// Расписание всегда заменяется целиком - ровно 7 дней
type UpdateScheduleRequest struct {
	UserID int64         `json:"userId"`
	Days   []DaySchedule `json:"days"`
}

// DaySchedule расписание одного дня недели
type DaySchedule struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`  // "09:00", обязательно при isOpen
	CloseTime string `json:"closeTime,omitempty"` // "18:00", обязательно при isOpen
}

// Response модели

// ScheduleResponse ответ с недельным расписанием бизнеса
type ScheduleResponse struct {
	BusinessID int64         `json:"businessId"`
	Days       []DaySchedule `json:"days"`
}

// Методы конвертации

// FromDomainWeekSchedule конвертирует domain модель в DTO
func FromDomainWeekSchedule(w *domain.WeekSchedule) *ScheduleResponse {
	if w == nil {
		return nil
	}

	resp := &ScheduleResponse{
		BusinessID: w.BusinessID,
		Days:       make([]DaySchedule, len(w.Days)),
	}

	for i, day := range w.Days {
		resp.Days[i] = DaySchedule{
			DayOfWeek: day.DayOfWeek,
			IsOpen:    day.IsOpen,
		}
		if day.IsOpen {
			resp.Days[i].OpenTime = day.OpenTime.String()
			resp.Days[i].CloseTime = day.CloseTime.String()
		}
	}

	return resp
}

// ToDomainWeekSchedule конвертирует request в domain модель
// Дни должны покрывать все 7 дней недели ровно по одному разу
func (r *UpdateScheduleRequest) ToDomainWeekSchedule(businessID int64) (*domain.WeekSchedule, error) {
	week := &domain.WeekSchedule{BusinessID: businessID}
	seen := [7]bool{}

	for _, day := range r.Days {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			return nil, domain.ErrInvalidDayOfWeek
		}
		if seen[day.DayOfWeek] {
			return nil, domain.ErrDuplicateDayOfWeek
		}
		seen[day.DayOfWeek] = true

		hours := domain.OperatingHours{
			BusinessID: businessID,
			DayOfWeek:  day.DayOfWeek,
			IsOpen:     day.IsOpen,
		}

		if day.IsOpen {
			openTime, err := types.NewTimeStringFromString(day.OpenTime)
			if err != nil {
				return nil, err
			}
			closeTime, err := types.NewTimeStringFromString(day.CloseTime)
			if err != nil {
				return nil, err
			}
			hours.OpenTime = openTime
			hours.CloseTime = closeTime
		}

		week.Days[day.DayOfWeek] = hours
	}

	for dow, ok := range seen {
		if !ok {
			// Пропущенный день считается закрытым
			week.Days[dow] = domain.OperatingHours{
				BusinessID: businessID,
				DayOfWeek:  dow,
				IsOpen:     false,
			}
		}
	}

	return week, nil
}
