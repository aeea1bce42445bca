package leave_waitlist

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

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeWaitlistRepo struct {
	entry      *domain.WaitlistEntry
	waiting    []*domain.WaitlistEntry
	markErr    error
	markedID   int64
	markedWith domain.WaitlistStatus

	decremented         bool
	decrementedPosition int
}

func (f *fakeWaitlistRepo) GetByID(_ context.Context, id int64) (*domain.WaitlistEntry, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	return f.entry, nil
}

func (f *fakeWaitlistRepo) GetWaitingByPartition(_ context.Context, _ int64, _ time.Time, _ types.TimeString) ([]*domain.WaitlistEntry, error) {
	return f.waiting, nil
}

func (f *fakeWaitlistRepo) MarkLeft(_ context.Context, id int64, status domain.WaitlistStatus) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedID = id
	f.markedWith = status
	return nil
}

func (f *fakeWaitlistRepo) DecrementPositionsAfter(_ context.Context, _ int64, _ time.Time, _ types.TimeString, position int) error {
	f.decremented = true
	f.decrementedPosition = position
	return nil
}

func waitingEntry() *domain.WaitlistEntry {
	return &domain.WaitlistEntry{
		ID:          10,
		BusinessID:  1,
		ServiceID:   2,
		CustomerID:  42,
		BookingDate: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		Position:    2,
		Status:      domain.WaitlistStatusWaiting,
	}
}

func TestExecute_LeavesAndShiftsPositions(t *testing.T) {
	entry := waitingEntry()
	repo := &fakeWaitlistRepo{
		entry: entry,
		waiting: []*domain.WaitlistEntry{
			{ID: 9, Position: 1, Status: domain.WaitlistStatusWaiting},
			entry,
			{ID: 11, Position: 3, Status: domain.WaitlistStatusWaiting},
		},
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 42})
	require.NoError(t, err)

	assert.Equal(t, int64(10), repo.markedID)
	assert.Equal(t, domain.WaitlistStatusCancelled, repo.markedWith)
	assert.True(t, repo.decremented)
	assert.Equal(t, 2, repo.decrementedPosition)
}

func TestExecute_UsesLockedPositionForShift(t *testing.T) {
	// К моменту входа в транзакцию сосед с меньшей позицией уже вышел:
	// запись сдвинулась с 3 на 2, сдвигать нужно от актуальной позиции
	entry := waitingEntry()
	entry.Position = 3

	repo := &fakeWaitlistRepo{
		entry: entry,
		waiting: []*domain.WaitlistEntry{
			{ID: 9, Position: 1, Status: domain.WaitlistStatusWaiting},
			{ID: 10, Position: 2, Status: domain.WaitlistStatusWaiting},
			{ID: 11, Position: 3, Status: domain.WaitlistStatusWaiting},
		},
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 42})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.decrementedPosition)
}

func TestExecute_EntryNotFound(t *testing.T) {
	uc := NewUseCase(&fakeWaitlistRepo{}, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 42})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestExecute_ForeignEntryDenied(t *testing.T) {
	repo := &fakeWaitlistRepo{entry: waitingEntry()}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 99})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.decremented)
}

func TestExecute_AlreadyLeft(t *testing.T) {
	entry := waitingEntry()
	entry.Status = domain.WaitlistStatusCancelled

	uc := NewUseCase(&fakeWaitlistRepo{entry: entry}, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 42})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestExecute_ConcurrentLeaveLosesGracefully(t *testing.T) {
	// В заблокированной партиции записи уже нет - конкурент успел раньше
	repo := &fakeWaitlistRepo{
		entry: waitingEntry(),
		waiting: []*domain.WaitlistEntry{
			{ID: 9, Position: 1, Status: domain.WaitlistStatusWaiting},
		},
	}
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})

	err := uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 42})
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.False(t, repo.decremented)
	assert.Zero(t, repo.markedID)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeWaitlistRepo{}, fakeTxManager{}, nopLogger{})

	assert.ErrorIs(t, uc.Execute(context.Background(), &Request{EntryID: 0, CustomerID: 42}), ErrInvalidInput)
	assert.ErrorIs(t, uc.Execute(context.Background(), &Request{EntryID: 10, CustomerID: 0}), ErrInvalidInput)
}
