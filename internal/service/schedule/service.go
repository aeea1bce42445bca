package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	"github.com/jongque/JQ-BookingService/internal/service/schedule/models"
)

// Service сервис для работы с недельным расписанием бизнеса
type Service struct {
	scheduleRepo ScheduleRepository
	txManager    TxManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(scheduleRepo ScheduleRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeekSchedule получает недельное расписание бизнеса
// Публичный метод - доступен всем
func (s *Service) GetWeekSchedule(ctx context.Context, businessID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetWeekSchedule: fetching schedule for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Проверяем существование бизнеса
	if _, err := s.scheduleRepo.GetBusiness(ctx, businessID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetWeekSchedule: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetWeekSchedule: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	week, err := s.scheduleRepo.GetWeekSchedule(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetWeekSchedule: business id=%d has no schedule", businessID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetWeekSchedule: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetWeekSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWeekSchedule: successfully fetched schedule for business=%d", businessID)
	return models.FromDomainWeekSchedule(week), nil
}

// ReplaceWeekSchedule заменяет недельное расписание бизнеса целиком
// Доступно только владельцу бизнеса. Замена атомарна: читатели никогда
// не видят частично обновлённое расписание
func (s *Service) ReplaceWeekSchedule(ctx context.Context, businessID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceWeekSchedule: replacing schedule for business=%d by user=%d", businessID, req.UserID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// 1. Получаем бизнес и проверяем права владельца
	business, err := s.scheduleRepo.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			s.logger.Warn("ReplaceWeekSchedule: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ReplaceWeekSchedule: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if business.OwnerID != req.UserID {
		s.logger.Warn("ReplaceWeekSchedule: user=%d is not the owner of business=%d", req.UserID, businessID)
		return nil, ErrAccessDenied
	}

	// 2. Конвертируем и валидируем расписание
	week, err := req.ToDomainWeekSchedule(businessID)
	if err != nil {
		s.logger.Warn("ReplaceWeekSchedule: invalid schedule for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.validateWeek(week); err != nil {
		s.logger.Warn("ReplaceWeekSchedule: validation failed for business=%d: %v", businessID, err)
		return nil, err
	}

	// 3. Заменяем расписание атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeekSchedule(txCtx, week)
	})
	if err != nil {
		s.logger.Error("ReplaceWeekSchedule: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ReplaceWeekSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeekSchedule: successfully replaced schedule for business=%d", businessID)
	return models.FromDomainWeekSchedule(week), nil
}

// validateWeek проверяет рабочие часы каждого открытого дня
func (s *Service) validateWeek(week *domain.WeekSchedule) error {
	for _, day := range week.Days {
		if !day.IsOpen {
			continue
		}

		if day.OpenTime.IsZero() || day.CloseTime.IsZero() {
			return fmt.Errorf("%w: open day %d requires openTime and closeTime", ErrInvalidInput, day.DayOfWeek)
		}

		if !day.OpenTime.IsBefore(day.CloseTime) {
			return fmt.Errorf("%w: day %d openTime must be before closeTime", ErrInvalidInput, day.DayOfWeek)
		}
	}

	return nil
}
