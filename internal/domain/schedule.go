package domain

import (
	"errors"
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

var (
	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")

	// ErrDuplicateDayOfWeek возвращается, когда день недели указан дважды
	ErrDuplicateDayOfWeek = errors.New("duplicate day of week")
)

// Business represents a registered business (tenant)
type Business struct {
	ID        int64
	Name      string
	OwnerID   int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service represents a bookable service of a business
type Service struct {
	ID              int64
	BusinessID      int64
	Name            string
	DurationMinutes int
	Price           *float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OperatingHours represents a business's schedule for one day of the week
// DayOfWeek: 0 = Sunday .. 6 = Saturday (time.Weekday numbering)
type OperatingHours struct {
	ID         int64
	BusinessID int64
	DayOfWeek  int
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	IsOpen     bool
}

// WeekSchedule полное расписание бизнеса: ровно 7 дней
// Заменяется целиком при обновлении настроек
type WeekSchedule struct {
	BusinessID int64
	Days       [7]OperatingHours
}

// ForDate returns the operating hours for the weekday of the given date
func (w *WeekSchedule) ForDate(date time.Time) OperatingHours {
	return w.Days[int(date.Weekday())]
}
