package create_booking

import (
	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// hasConflict проверяет пересечение запрашиваемого слота с активными
// бронированиями дня.
//
// Интервалы полуоткрытые [start, end): бронирования, граничащие по времени,
// НЕ конфликтуют. Если запрошен конкретный сотрудник, конфликтом считаются
// только бронирования того же сотрудника
func hasConflict(slot slotRequest, bookings []*domain.Booking) bool {
	slotEnd, err := slot.start.AddMinutes(slot.duration)
	if err != nil {
		return false
	}

	for _, booking := range bookings {
		if !booking.IsActive() {
			continue
		}

		if slot.staffID != nil && (booking.StaffID == nil || *booking.StaffID != *slot.staffID) {
			continue
		}

		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			continue
		}

		if booking.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slot.start) {
			return true
		}
	}

	return false
}

// alignsToGrid проверяет, что время начала попадает на сетку слотов,
// отсчитываемую от времени открытия
func alignsToGrid(start, open types.TimeString, intervalMinutes int) bool {
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}

	openMin, err := open.Minutes()
	if err != nil {
		return false
	}

	offset := startMin - openMin
	return offset >= 0 && offset%intervalMinutes == 0
}

// fitsOperatingHours проверяет, что услуга целиком помещается в рабочие часы
func fitsOperatingHours(start types.TimeString, duration int, hours domain.OperatingHours) bool {
	if !hours.IsOpen {
		return false
	}

	if start.IsBefore(hours.OpenTime) {
		return false
	}

	serviceEnd, err := start.AddMinutes(duration)
	if err != nil {
		return false
	}

	return !serviceEnd.IsAfter(hours.CloseTime)
}
