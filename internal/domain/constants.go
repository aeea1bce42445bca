package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	FirstQueueNumber           = 1
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxCancellationReason     = 500
	BookingNumberPrefix       = "JQ"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses статусы, не занимающие слот и номер очереди
// Используются для фильтрации при проверке конфликтов и подсчёте очереди
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses статусы активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
}
