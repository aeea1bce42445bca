package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	bookingRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/booking"
	"github.com/jongque/JQ-BookingService/pkg/ptr"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookingRepo struct {
	dayBookings []*domain.Booking
	maxQueue    int
	duplicates  int

	// createErrs ошибки для последовательных вызовов Create; после их
	// исчерпания Create успешен
	createErrs  []error
	createCalls int
	created     *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return nil, err
	}

	booking.ID = 101
	booking.CreatedAt = time.Now()
	f.created = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeBookingRepo) MaxQueueNumber(_ context.Context, _ int64, _ time.Time) (int, error) {
	return f.maxQueue, nil
}

func (f *fakeBookingRepo) CountActiveByCustomerAt(_ context.Context, _, _ int64, _ time.Time, _ string) (int, error) {
	return f.duplicates, nil
}

type fakeScheduleRepo struct {
	business *domain.Business
	service  *domain.Service
	week     *domain.WeekSchedule
}

func (f *fakeScheduleRepo) GetBusiness(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, nil
}

func (f *fakeScheduleRepo) GetService(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.service, nil
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ int64) (*domain.WeekSchedule, error) {
	return f.week, nil
}

// Понедельник
var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func openWeek() *domain.WeekSchedule {
	week := &domain.WeekSchedule{BusinessID: 1}
	week.Days[int(time.Monday)] = domain.OperatingHours{
		DayOfWeek: int(time.Monday),
		IsOpen:    true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}
	return week
}

func activeSchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		business: &domain.Business{ID: 1, IsActive: true},
		service:  &domain.Service{ID: 2, DurationMinutes: 60, IsActive: true},
		week:     openWeek(),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, schedule *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(bookings, schedule, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: testDate}
	return uc
}

func customerRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  2,
		CustomerID: ptr.Ptr(int64(42)),
		Date:       testDate,
		StartTime:  "10:00",
	}
}

func TestExecute_CreatesBookingWithQueueNumber(t *testing.T) {
	bookings := &fakeBookingRepo{maxQueue: 4}
	uc := newTestUseCase(bookings, activeSchedule())

	resp, err := uc.Execute(context.Background(), customerRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, 5, resp.QueueNumber)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.GuestLookupToken)
	assert.Contains(t, resp.BookingNumber, "JQ20250616")
}

func TestExecute_GuestBookingGetsLookupToken(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, activeSchedule())

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:    1,
		ServiceID:     2,
		Date:          testDate,
		StartTime:     "10:00",
		CustomerName:  ptr.Ptr("Анна"),
		CustomerPhone: ptr.Ptr("+79001234567"),
	})
	require.NoError(t, err)

	require.NotNil(t, resp.GuestLookupToken)
	assert.Len(t, *resp.GuestLookupToken, 32)
	assert.Nil(t, bookings.created.CustomerID)
}

func TestExecute_GuestWithoutContactRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeSchedule())

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID:   1,
		ServiceID:    2,
		Date:         testDate,
		StartTime:    "10:00",
		CustomerName: ptr.Ptr("Анна"),
		// Ни телефона, ни email
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConflictingSlot(t *testing.T) {
	bookings := &fakeBookingRepo{
		dayBookings: []*domain.Booking{booked("10:00", 60, nil)},
	}
	uc := newTestUseCase(bookings, activeSchedule())

	_, err := uc.Execute(context.Background(), customerRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, 0, bookings.createCalls)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeSchedule())

	req := customerRequest()
	req.StartTime = "17:30" // 60 минут не помещаются до 18:00

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_MisalignedStartRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeSchedule())

	req := customerRequest()
	req.StartTime = "10:15" // сетка идёт от 09:00 с шагом 30 минут

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_DuplicateBooking(t *testing.T) {
	bookings := &fakeBookingRepo{duplicates: 1}
	uc := newTestUseCase(bookings, activeSchedule())

	_, err := uc.Execute(context.Background(), customerRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_RetriesOnQueueNumberRace(t *testing.T) {
	bookings := &fakeBookingRepo{
		createErrs: []error{bookingRepo.ErrQueueNumberTaken, bookingRepo.ErrBookingNumberTaken},
	}
	uc := newTestUseCase(bookings, activeSchedule())

	resp, err := uc.Execute(context.Background(), customerRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, bookings.createCalls)
	assert.NotZero(t, resp.ID)
}

func TestExecute_GivesUpAfterMaxAttempts(t *testing.T) {
	bookings := &fakeBookingRepo{
		createErrs: []error{
			bookingRepo.ErrQueueNumberTaken,
			bookingRepo.ErrQueueNumberTaken,
			bookingRepo.ErrQueueNumberTaken,
		},
	}
	uc := newTestUseCase(bookings, activeSchedule())

	_, err := uc.Execute(context.Background(), customerRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxCreateAttempts, bookings.createCalls)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, activeSchedule())

	req := customerRequest()
	req.Date = testDate.AddDate(0, 0, -1)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_StaffScopedBookingAllowed(t *testing.T) {
	staffA := int64(1)
	staffB := int64(2)

	// Слот занят сотрудником B, клиент просит сотрудника A
	bookings := &fakeBookingRepo{
		dayBookings: []*domain.Booking{booked("10:00", 60, &staffB)},
	}
	uc := newTestUseCase(bookings, activeSchedule())

	req := customerRequest()
	req.StaffID = &staffA

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
}
