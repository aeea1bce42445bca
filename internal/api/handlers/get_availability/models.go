package get_availability

import (
	"strconv"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	getAvailability "github.com/jongque/JQ-BookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date            string          `json:"date"`
	BusinessID      int64           `json:"businessId"`
	ServiceID       int64           `json:"serviceId"`
	IsOpen          bool            `json:"isOpen"`
	OperatingHours  *OperatingHours `json:"operatingHours,omitempty"`
	Slots           []AvailableSlot `json:"slots"`
	NextQueueNumber int             `json:"nextQueueNumber"`
}

// OperatingHours рабочие часы дня
type OperatingHours struct {
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	WaitlistCount   int    `json:"waitlistCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			WaitlistCount:   slot.WaitlistCount,
		}
	}

	result := &AvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		IsOpen:          resp.IsOpen,
		Slots:           slots,
		NextQueueNumber: resp.NextQueueNumber,
	}

	if resp.IsOpen {
		result.OperatingHours = &OperatingHours{
			OpenTime:  resp.OperatingHours.OpenTime.String(),
			CloseTime: resp.OperatingHours.CloseTime.String(),
		}
	}

	return result
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(businessID, serviceID int64, staffIDStr, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	return req, nil
}
