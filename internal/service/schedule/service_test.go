package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	"github.com/jongque/JQ-BookingService/internal/service/schedule/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeScheduleRepo struct {
	business    *domain.Business
	businessErr error
	week        *domain.WeekSchedule
	weekErr     error
	replaced    *domain.WeekSchedule
}

func (f *fakeScheduleRepo) GetBusiness(_ context.Context, _ int64) (*domain.Business, error) {
	return f.business, f.businessErr
}

func (f *fakeScheduleRepo) GetWeekSchedule(_ context.Context, _ int64) (*domain.WeekSchedule, error) {
	return f.week, f.weekErr
}

func (f *fakeScheduleRepo) ReplaceWeekSchedule(_ context.Context, week *domain.WeekSchedule) error {
	f.replaced = week
	return nil
}

func ownedBusiness(ownerID int64) *domain.Business {
	return &domain.Business{ID: 1, OwnerID: ownerID, IsActive: true}
}

func workWeek() []models.DaySchedule {
	days := make([]models.DaySchedule, 0, 7)
	for dow := 1; dow <= 5; dow++ {
		days = append(days, models.DaySchedule{
			DayOfWeek: dow,
			IsOpen:    true,
			OpenTime:  "09:00",
			CloseTime: "18:00",
		})
	}
	return days
}

func TestReplaceWeekSchedule_MissingDaysDefaultClosed(t *testing.T) {
	repo := &fakeScheduleRepo{business: ownedBusiness(777)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 777,
		Days:   workWeek(), // суббота и воскресенье не указаны
	})
	require.NoError(t, err)

	require.NotNil(t, repo.replaced)
	assert.False(t, repo.replaced.Days[0].IsOpen) // воскресенье
	assert.False(t, repo.replaced.Days[6].IsOpen) // суббота
	assert.True(t, repo.replaced.Days[1].IsOpen)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, "09:00", resp.Days[1].OpenTime)
	assert.Empty(t, resp.Days[0].OpenTime)
}

func TestReplaceWeekSchedule_OnlyOwner(t *testing.T) {
	repo := &fakeScheduleRepo{business: ownedBusiness(777)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 42,
		Days:   workWeek(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.replaced)
}

func TestReplaceWeekSchedule_RejectsInvalidDays(t *testing.T) {
	repo := &fakeScheduleRepo{business: ownedBusiness(777)}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	// День недели вне диапазона
	_, err := svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 777,
		Days:   []models.DaySchedule{{DayOfWeek: 7, IsOpen: false}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Дубликат дня
	_, err = svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 777,
		Days: []models.DaySchedule{
			{DayOfWeek: 1, IsOpen: false},
			{DayOfWeek: 1, IsOpen: false},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Открытый день без часов
	_, err = svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 777,
		Days:   []models.DaySchedule{{DayOfWeek: 1, IsOpen: true}},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Открытие позже закрытия
	_, err = svc.ReplaceWeekSchedule(context.Background(), 1, &models.UpdateScheduleRequest{
		UserID: 777,
		Days: []models.DaySchedule{
			{DayOfWeek: 1, IsOpen: true, OpenTime: "18:00", CloseTime: "09:00"},
		},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetWeekSchedule(t *testing.T) {
	week := &domain.WeekSchedule{BusinessID: 1}
	week.Days[1] = domain.OperatingHours{
		DayOfWeek: 1,
		IsOpen:    true,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}

	repo := &fakeScheduleRepo{business: ownedBusiness(777), week: week}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	resp, err := svc.GetWeekSchedule(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	assert.True(t, resp.Days[1].IsOpen)
	assert.Equal(t, "09:00", resp.Days[1].OpenTime)
}

func TestGetWeekSchedule_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{businessErr: scheduleRepo.ErrBusinessNotFound}
	svc := NewService(repo, fakeTxManager{}, nopLogger{})

	_, err := svc.GetWeekSchedule(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBusinessNotFound)

	repo = &fakeScheduleRepo{business: ownedBusiness(777), weekErr: scheduleRepo.ErrScheduleNotFound}
	svc = NewService(repo, fakeTxManager{}, nopLogger{})

	_, err = svc.GetWeekSchedule(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
