package join_waitlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	waitlistRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/waitlist"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeWaitlistRepo struct {
	waiting  []*domain.WaitlistEntry
	existing *domain.WaitlistEntry
	created  *domain.WaitlistEntry

	// createErrs ошибки для последовательных вызовов Create; после их
	// исчерпания Create успешен
	createErrs  []error
	createCalls int
}

func (f *fakeWaitlistRepo) Create(_ context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	f.createCalls++
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		return nil, err
	}

	entry.ID = 55
	entry.CreatedAt = time.Now()
	f.created = entry
	return entry, nil
}

func (f *fakeWaitlistRepo) GetWaitingByPartition(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.WaitlistEntry, error) {
	return f.waiting, nil
}

func (f *fakeWaitlistRepo) FindWaitingByCustomer(_ context.Context, _, _, _ int64, _ time.Time, _ types.TimeString) (*domain.WaitlistEntry, error) {
	if f.existing != nil {
		return f.existing, nil
	}
	return nil, waitlistRepo.ErrEntryNotFound
}

type fakeBookingRepo struct {
	activeAtSlot int
}

func (f *fakeBookingRepo) CountActiveByCustomerAt(_ context.Context, _, _ int64, _ time.Time, _ string) (int, error) {
	return f.activeAtSlot, nil
}

type fakeScheduleRepo struct {
	business *domain.Business
	service  *domain.Service
}

func (f *fakeScheduleRepo) GetBusiness(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, nil
}

func (f *fakeScheduleRepo) GetService(_ context.Context, _, _ int64) (*domain.Service, error) {
	return f.service, nil
}

var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func activeSchedule() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		business: &domain.Business{ID: 1, IsActive: true},
		service:  &domain.Service{ID: 2, DurationMinutes: 60, IsActive: true},
	}
}

func newTestUseCase(waitlist *fakeWaitlistRepo, bookings *fakeBookingRepo, schedule *fakeScheduleRepo) *UseCase {
	uc := NewUseCase(waitlist, bookings, schedule, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: testDate}
	return uc
}

func validRequest() *Request {
	return &Request{
		BusinessID: 1,
		ServiceID:  2,
		CustomerID: 42,
		Date:       testDate,
		StartTime:  "10:00",
	}
}

func TestExecute_FirstInPartitionGetsPositionOne(t *testing.T) {
	waitlist := &fakeWaitlistRepo{}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Position)
	assert.Equal(t, domain.WaitlistStatusWaiting, waitlist.created.Status)
}

func TestExecute_PositionAppendsToPartition(t *testing.T) {
	waitlist := &fakeWaitlistRepo{
		waiting: []*domain.WaitlistEntry{
			{Position: 1, Status: domain.WaitlistStatusWaiting},
			{Position: 2, Status: domain.WaitlistStatusWaiting},
		},
	}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Position)
}

func TestExecute_AlreadyWaiting(t *testing.T) {
	waitlist := &fakeWaitlistRepo{
		existing: &domain.WaitlistEntry{ID: 7, CustomerID: 42, Status: domain.WaitlistStatusWaiting},
	}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyWaiting)
	assert.Nil(t, waitlist.created)
}

func TestExecute_AlreadyBooked(t *testing.T) {
	uc := newTestUseCase(&fakeWaitlistRepo{}, &fakeBookingRepo{activeAtSlot: 1}, activeSchedule())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_RetriesOnPositionRace(t *testing.T) {
	waitlist := &fakeWaitlistRepo{
		createErrs: []error{waitlistRepo.ErrPositionTaken},
	}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, 2, waitlist.createCalls)
	assert.NotZero(t, resp.ID)
}

func TestExecute_ConcurrentDuplicateJoin(t *testing.T) {
	// Дубль не виден проверке вне транзакции - его ловит уникальный индекс
	waitlist := &fakeWaitlistRepo{
		createErrs: []error{waitlistRepo.ErrDuplicateWaiting},
	}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrAlreadyWaiting)
}

func TestExecute_GivesUpAfterMaxAttempts(t *testing.T) {
	waitlist := &fakeWaitlistRepo{
		createErrs: []error{
			waitlistRepo.ErrPositionTaken,
			waitlistRepo.ErrPositionTaken,
			waitlistRepo.ErrPositionTaken,
		},
	}
	uc := newTestUseCase(waitlist, &fakeBookingRepo{}, activeSchedule())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, maxJoinAttempts, waitlist.createCalls)
}

func TestExecute_InactiveBusiness(t *testing.T) {
	schedule := &fakeScheduleRepo{business: &domain.Business{ID: 1, IsActive: false}}
	uc := newTestUseCase(&fakeWaitlistRepo{}, &fakeBookingRepo{}, schedule)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeWaitlistRepo{}, &fakeBookingRepo{}, activeSchedule())

	req := validRequest()
	req.CustomerID = 0

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.StartTime = "25:00"

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
