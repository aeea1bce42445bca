package get_availability

import (
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// generateTimeSlots генерирует кандидатов времени начала для услуги.
// Слоты идут от открытия с фиксированным шагом intervalMinutes; слот попадает
// в результат, только если услуга целиком помещается до закрытия
// (start + serviceDuration <= closeTime).
//
// Если услуга длиннее рабочего дня - возвращается пустой список
func generateTimeSlots(
	hours domain.OperatingHours,
	serviceDuration int,
	intervalMinutes int,
) ([]types.TimeString, error) {
	if !hours.IsOpen {
		return []types.TimeString{}, nil
	}

	openTime := hours.OpenTime
	closeTime := hours.CloseTime

	slots := make([]types.TimeString, 0)
	current := openTime

	for current.IsBefore(closeTime) {
		serviceEnd, err := current.AddMinutes(serviceDuration)
		if err != nil {
			return nil, err
		}

		if serviceEnd.IsAfter(closeTime) {
			break
		}

		slots = append(slots, current)

		current, err = current.AddMinutes(intervalMinutes)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}

// countOverlappingBookings подсчитывает количество активных бронирований,
// пересекающихся с указанным интервалом.
//
// Пересечение считается по полуоткрытым интервалам [start, end):
// если одно бронирование заканчивается ровно там, где начинается слот
// (или наоборот) - это НЕ пересечение.
//
// Примеры:
// - Слот 10:30-11:00, бронирование 10:00-11:00 → ЕСТЬ пересечение
// - Слот 11:00-11:30, бронирование 10:00-11:00 → НЕТ пересечения (граничат)
func countOverlappingBookings(
	slotStart types.TimeString,
	slotDuration int,
	staffID *int64,
	bookings []*domain.Booking,
) int {
	slotEnd, err := slotStart.AddMinutes(slotDuration)
	if err != nil {
		// Если не можем вычислить конец слота, считаем что пересечений нет
		return 0
	}

	count := 0

	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}

		// Если запрошен конкретный сотрудник - конфликтуют только его бронирования
		if staffID != nil && (booking.StaffID == nil || *booking.StaffID != *staffID) {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.DurationMinutes)
		if err != nil {
			// Если не можем вычислить конец бронирования, пропускаем
			continue
		}

		// Интервалы пересекаются, только если:
		// - начало бронирования СТРОГО раньше конца слота И
		// - конец бронирования СТРОГО позже начала слота
		if bookingStart.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
