package domain

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistStatusWaiting   WaitlistStatus = "waiting"
	WaitlistStatusCancelled WaitlistStatus = "cancelled"
	WaitlistStatusConverted WaitlistStatus = "converted"
)

// WaitlistEntry represents a customer waiting for a specific time slot.
// Positions form a contiguous run 1..N among waiting entries of the same
// (business, date, time) partition.
type WaitlistEntry struct {
	ID          int64
	BusinessID  int64
	ServiceID   int64
	StaffID     *int64
	CustomerID  int64
	BookingDate time.Time
	StartTime   types.TimeString
	Position    int
	Status      WaitlistStatus
	LeftAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWaiting returns true if the entry still holds a position in its partition
func (w *WaitlistEntry) IsWaiting() bool {
	return w.Status == WaitlistStatusWaiting
}
