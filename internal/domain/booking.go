package domain

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusNoShow     BookingStatus = "no_show"
)

// Booking represents a queue/appointment booking in the system
type Booking struct {
	ID              int64
	BookingNumber   string // "JQ" + YYYYMMDD + 4 digits, globally unique
	BusinessID      int64
	ServiceID       int64
	StaffID         *int64 // nil = any staff member
	CustomerID      *int64 // nil for guest bookings
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	QueueNumber     *int // unique among non-cancelled bookings per business+date
	Status          BookingStatus

	// Guest bookings carry contact data instead of a customer ID
	CustomerName     *string
	CustomerEmail    *string
	CustomerPhone    *string
	GuestLookupToken *string

	Notes *string

	ActualStartTime *time.Time
	ActualEndTime   *time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot and queue number
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusNoShow
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCheckedIn || b.Status == StatusInProgress
}

// IsTerminal returns true if no further status transition is permitted
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusNoShow
}

// IsGuest returns true for bookings made without a registered customer account
func (b *Booking) IsGuest() bool {
	return b.CustomerID == nil
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по сотруднику (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и no-show
}
