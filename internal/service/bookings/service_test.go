package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	bookingRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/booking"
	"github.com/jongque/JQ-BookingService/internal/service/bookings/models"
	"github.com/jongque/JQ-BookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeBookingRepo struct {
	byID        map[int64]*domain.Booking
	byToken     map[string]*domain.Booking
	byCustomer  []*domain.Booking
	byBusiness  []*domain.Booking
	cancelled   []int64
	cancelledBy string

	statusUpdates map[int64]domain.BookingStatus
	actualStart   *time.Time
	actualEnd     *time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByBookingNumber(_ context.Context, number string) (*domain.Booking, error) {
	for _, b := range f.byID {
		if b.BookingNumber == number {
			return b, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookingRepo) GetByGuestToken(_ context.Context, token string) (*domain.Booking, error) {
	b, ok := f.byToken[token]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.byCustomer, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return f.byBusiness, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, actualStart, actualEnd *time.Time) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[int64]domain.BookingStatus)
	}
	f.statusUpdates[id] = status
	f.actualStart = actualStart
	f.actualEnd = actualEnd
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, reason string) error {
	f.cancelled = append(f.cancelled, id)
	f.cancelledBy = reason
	return nil
}

type fakeScheduleRepo struct {
	business *domain.Business
}

func (f *fakeScheduleRepo) GetBusiness(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, nil
}

var testNow = time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		BookingNumber:   "JQ202506161234",
		BusinessID:      1,
		ServiceID:       2,
		CustomerID:      ptr.Ptr(int64(42)),
		BookingDate:     time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		QueueNumber:     ptr.Ptr(3),
		Status:          domain.StatusConfirmed,
	}
}

func newTestService(bookings *fakeBookingRepo, schedule *fakeScheduleRepo) *Service {
	svc := NewService(bookings, schedule, nopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func ownedBusiness(ownerID int64) *fakeScheduleRepo {
	return &fakeScheduleRepo{business: &domain.Business{ID: 1, OwnerID: ownerID, IsActive: true}}
}

func TestGetByID_OwnBooking(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	resp, err := svc.GetByID(context.Background(), 10, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.Equal(t, "10:00", resp.StartTime)
}

func TestGetByID_BusinessOwnerSeesForeignBooking(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	_, err := svc.GetByID(context.Background(), 10, 777)
	require.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	_, err := svc.GetByID(context.Background(), 10, 99)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{}, ownedBusiness(777))

	_, err := svc.GetByID(context.Background(), 10, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByBookingNumber(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	resp, err := svc.GetByBookingNumber(context.Background(), "JQ202506161234", 42)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)

	_, err = svc.GetByBookingNumber(context.Background(), "JQ000000000000", 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByBookingNumber(context.Background(), "JQ202506161234", 99)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByBookingNumber(context.Background(), "", 42)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByGuestToken(t *testing.T) {
	guest := sampleBooking()
	guest.CustomerID = nil
	guest.GuestLookupToken = ptr.Ptr("deadbeefdeadbeefdeadbeefdeadbeef")

	repo := &fakeBookingRepo{byToken: map[string]*domain.Booking{*guest.GuestLookupToken: guest}}
	svc := newTestService(repo, ownedBusiness(777))

	resp, err := svc.GetByGuestToken(context.Background(), *guest.GuestLookupToken)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, resp.ID)

	_, err = svc.GetByGuestToken(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByGuestToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ByCustomer(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		UserID:             ptr.Ptr(int64(42)),
		CancellationReason: "планы изменились",
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{10}, repo.cancelled)
	assert.Equal(t, "планы изменились", repo.cancelledBy)
}

func TestCancel_GuestByToken(t *testing.T) {
	guest := sampleBooking()
	guest.CustomerID = nil
	guest.GuestLookupToken = ptr.Ptr("cafebabecafebabecafebabecafebabe")

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: guest}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		GuestToken: guest.GuestLookupToken,
	})
	require.NoError(t, err)
	assert.Len(t, repo.cancelled, 1)
}

func TestCancel_WrongGuestTokenDenied(t *testing.T) {
	guest := sampleBooking()
	guest.CustomerID = nil
	guest.GuestLookupToken = ptr.Ptr("cafebabecafebabecafebabecafebabe")

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: guest}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		GuestToken: ptr.Ptr("00000000000000000000000000000000"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	done := sampleBooking()
	done.Status = domain.StatusCompleted

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: done}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.Cancel(context.Background(), 10, &models.CancelBookingRequest{
		UserID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_HappyPathStampsTimes(t *testing.T) {
	checkedIn := sampleBooking()
	checkedIn.Status = domain.StatusCheckedIn

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: checkedIn}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 777,
		Status: "in_progress",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInProgress, repo.statusUpdates[10])
	require.NotNil(t, repo.actualStart)
	assert.Equal(t, testNow, *repo.actualStart)
	assert.Nil(t, repo.actualEnd)
}

func TestUpdateStatus_CompletedStampsEnd(t *testing.T) {
	started := testNow.Add(-30 * time.Minute)
	inProgress := sampleBooking()
	inProgress.Status = domain.StatusInProgress
	inProgress.ActualStartTime = &started

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: inProgress}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 777,
		Status: "completed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.actualEnd)
	assert.Equal(t, testNow, *repo.actualEnd)
	// Начало уже зафиксировано - не перезаписываем
	assert.Nil(t, repo.actualStart)
}

func TestUpdateStatus_CompletedBackfillsMissingStart(t *testing.T) {
	inProgress := sampleBooking()
	inProgress.Status = domain.StatusInProgress // actual start так и не проставлен

	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: inProgress}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 777,
		Status: "completed",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.actualStart)
	require.NotNil(t, repo.actualEnd)
	assert.Equal(t, testNow, *repo.actualStart)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	// confirmed -> completed минует чек-ин и обслуживание
	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 777,
		Status: "completed",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 777,
		Status: "pending",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_OnlyOwner(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{10: sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	err := svc.UpdateStatus(context.Background(), 10, &models.UpdateStatusRequest{
		UserID: 42, // клиент, не владелец
		Status: "checked_in",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetBusinessBookings_OwnerOnly(t *testing.T) {
	repo := &fakeBookingRepo{byBusiness: []*domain.Booking{sampleBooking()}}
	svc := newTestService(repo, ownedBusiness(777))

	resp, err := svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		BusinessID: 1,
		UserID:     777,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)

	_, err = svc.GetBusinessBookings(context.Background(), &models.GetBusinessBookingsRequest{
		BusinessID: 1,
		UserID:     42,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
