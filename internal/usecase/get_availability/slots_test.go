package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

func openHours(open, close string) domain.OperatingHours {
	return domain.OperatingHours{
		IsOpen:    true,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
}

func TestGenerateTimeSlots_ServiceMustFitBeforeClose(t *testing.T) {
	// 09:00-12:00, услуга 60 минут, шаг 30 минут:
	// последний подходящий старт - 11:00 (11:30 + 60 мин выходит за закрытие)
	slots, err := generateTimeSlots(openHours("09:00", "12:00"), 60, 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}, slots)
}

func TestGenerateTimeSlots_ExactFit(t *testing.T) {
	slots, err := generateTimeSlots(openHours("10:00", "11:00"), 60, 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"10:00"}, slots)
}

func TestGenerateTimeSlots_ServiceLongerThanDay(t *testing.T) {
	slots, err := generateTimeSlots(openHours("10:00", "11:00"), 90, 30)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_ClosedDay(t *testing.T) {
	slots, err := generateTimeSlots(domain.OperatingHours{IsOpen: false}, 60, 30)
	require.NoError(t, err)

	assert.Empty(t, slots)
}

func TestGenerateTimeSlots_UntilMidnight(t *testing.T) {
	slots, err := generateTimeSlots(openHours("23:00", "24:00"), 30, 30)
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"23:00", "23:30"}, slots)
}

func activeBooking(start string, duration int, staffID *int64) *domain.Booking {
	return &domain.Booking{
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		StaffID:         staffID,
		Status:          domain.StatusConfirmed,
	}
}

func TestCountOverlappingBookings_HalfOpenIntervals(t *testing.T) {
	bookings := []*domain.Booking{activeBooking("10:00", 60, nil)}

	// Слот 10:30-11:00 пересекается с бронированием 10:00-11:00
	assert.Equal(t, 1, countOverlappingBookings("10:30", 30, nil, bookings))

	// Слот 11:00-11:30 граничит с бронированием 10:00-11:00 - не пересечение
	assert.Equal(t, 0, countOverlappingBookings("11:00", 30, nil, bookings))

	// Слот 09:30-10:00 граничит с началом - не пересечение
	assert.Equal(t, 0, countOverlappingBookings("09:30", 30, nil, bookings))

	// Слот 09:30-10:01 цепляет начало
	assert.Equal(t, 1, countOverlappingBookings("09:30", 31, nil, bookings))
}

func TestCountOverlappingBookings_SkipsInactive(t *testing.T) {
	cancelled := activeBooking("10:00", 60, nil)
	cancelled.Status = domain.StatusCancelled

	noShow := activeBooking("10:00", 60, nil)
	noShow.Status = domain.StatusNoShow

	bookings := []*domain.Booking{cancelled, noShow}

	assert.Equal(t, 0, countOverlappingBookings("10:00", 60, nil, bookings))
}

func TestCountOverlappingBookings_StaffFilter(t *testing.T) {
	staffA := int64(1)
	staffB := int64(2)

	bookings := []*domain.Booking{
		activeBooking("10:00", 60, &staffA),
		activeBooking("10:00", 60, &staffB),
		activeBooking("10:00", 60, nil), // любой сотрудник
	}

	// Без фильтра по сотруднику конфликтуют все три
	assert.Equal(t, 3, countOverlappingBookings("10:00", 60, nil, bookings))

	// С фильтром - только бронирования этого сотрудника
	assert.Equal(t, 1, countOverlappingBookings("10:00", 60, &staffA, bookings))
}

func TestIsDateInPast(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.True(t, isDateInPast(time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC), now))
	// Сегодня - не прошлое, даже если время суток уже прошло
	assert.False(t, isDateInPast(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, isDateInPast(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), now))
}
