package get_queue_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	"github.com/jongque/JQ-BookingService/pkg/ptr"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	business    *domain.Business
	businessErr error
}

func (f *fakeScheduleRepo) GetBusiness(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, f.businessErr
}

var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func queueBooking(queue int, status domain.BookingStatus, start string, duration int) *domain.Booking {
	return &domain.Booking{
		QueueNumber:     ptr.Ptr(queue),
		Status:          status,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
	}
}

func activeBusiness() *fakeScheduleRepo {
	return &fakeScheduleRepo{business: &domain.Business{ID: 1, IsActive: true}}
}

func TestExecute_AggregatesQueue(t *testing.T) {
	completed := queueBooking(1, domain.StatusCompleted, "09:00", 30)
	start := testDate.Add(9 * time.Hour)
	end := start.Add(40 * time.Minute)
	completed.ActualStartTime = &start
	completed.ActualEndTime = &end

	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			completed,
			queueBooking(2, domain.StatusInProgress, "09:30", 30),
			queueBooking(3, domain.StatusCheckedIn, "10:00", 30),
			queueBooking(4, domain.StatusConfirmed, "10:30", 30),
		},
	}

	uc := NewUseCase(bookings, activeBusiness(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)

	require.NotNil(t, resp.CurrentServing)
	assert.Equal(t, 2, *resp.CurrentServing)
	assert.Equal(t, 2, resp.TotalInQueue)

	// Средняя длительность по факту: одно завершённое за 40 минут
	assert.Equal(t, 40, resp.AverageServiceMinutes)
	assert.Equal(t, 80, resp.EstimatedWaitMinutes)

	require.Len(t, resp.Entries, 4)
	for i, entry := range resp.Entries {
		assert.Equal(t, i+1, entry.QueueNumber)
	}
}

func TestExecute_FallsBackToPlannedDuration(t *testing.T) {
	bookings := &fakeBookingRepo{
		bookings: []*domain.Booking{
			queueBooking(1, domain.StatusConfirmed, "10:00", 20),
			queueBooking(2, domain.StatusConfirmed, "10:30", 40),
		},
	}

	uc := NewUseCase(bookings, activeBusiness(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.AverageServiceMinutes)
	assert.Equal(t, 60, resp.EstimatedWaitMinutes)
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, activeBusiness(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Nil(t, resp.CurrentServing)
	assert.Zero(t, resp.TotalInQueue)
	assert.Empty(t, resp.Entries)
	assert.Equal(t, domain.DefaultSlotIntervalMinutes, resp.AverageServiceMinutes)
	assert.Zero(t, resp.EstimatedWaitMinutes)
}

func TestExecute_SkipsBookingsWithoutQueueNumber(t *testing.T) {
	noQueue := &domain.Booking{Status: domain.StatusConfirmed, StartTime: "10:00", DurationMinutes: 30}

	uc := NewUseCase(&fakeBookingRepo{bookings: []*domain.Booking{noQueue}}, activeBusiness(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Entries)
	assert.Zero(t, resp.TotalInQueue)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{businessErr: scheduleRepo.ErrBusinessNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 9, Date: testDate})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, activeBusiness(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
