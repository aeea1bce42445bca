package join_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	waitlistRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/waitlist"
)

// Количество попыток вступления при гонке за позицию
const maxJoinAttempts = 3

// UseCase use case вступления в лист ожидания.
//
// Позиция вычисляется внутри serializable-транзакции по заблокированной
// партиции (business, date, time), поэтому два конкурентных вступления
// не могут получить одну позицию
type UseCase struct {
	waitlistRepo WaitlistRepository
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	waitlistRepo WaitlistRepository,
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case вступления в лист ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: business=%d, service=%d, customer=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.scheduleRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			uc.logger.Warn("JoinWaitlist: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("JoinWaitlist: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("JoinWaitlist: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем услугу с проверкой принадлежности бизнесу
	service, err := uc.scheduleRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("JoinWaitlist: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("JoinWaitlist: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("JoinWaitlist: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Защита от дублей: клиент не может стоять в листе ожидания дважды
	_, err = uc.waitlistRepo.FindWaitingByCustomer(
		ctx, req.BusinessID, req.ServiceID, req.CustomerID, req.Date, req.StartTime)
	if err == nil {
		uc.logger.Warn("JoinWaitlist: customer id=%d already waiting", req.CustomerID)
		return nil, ErrAlreadyWaiting
	}
	if !errors.Is(err, waitlistRepo.ErrEntryNotFound) {
		uc.logger.Error("JoinWaitlist: failed to check existing entry: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing entry: %v", ErrInternal, err)
	}

	// 5. Защита от абсурда: у клиента уже есть бронирование на это время
	booked, err := uc.bookingRepo.CountActiveByCustomerAt(
		ctx, req.BusinessID, req.CustomerID, req.Date, req.StartTime.String())
	if err != nil {
		uc.logger.Error("JoinWaitlist: failed to check existing booking: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing booking: %v", ErrInternal, err)
	}
	if booked > 0 {
		uc.logger.Warn("JoinWaitlist: customer id=%d already has booking at this slot", req.CustomerID)
		return nil, ErrAlreadyBooked
	}

	// 6. Вычисляем позицию и создаем запись атомарно
	// Повтор нужен при конкурентной выдаче одной позиции: проверки дублей
	// выше идут вне транзакции, и гонку разрешает уникальный индекс
	var created *domain.WaitlistEntry

	for attempt := 1; attempt <= maxJoinAttempts; attempt++ {
		created, err = uc.tryJoin(ctx, req)
		if err == nil {
			break
		}

		if errors.Is(err, waitlistRepo.ErrPositionTaken) {
			uc.logger.Warn("JoinWaitlist: attempt %d/%d lost position race, retrying", attempt, maxJoinAttempts)
			continue
		}

		if errors.Is(err, waitlistRepo.ErrDuplicateWaiting) {
			uc.logger.Warn("JoinWaitlist: customer id=%d already waiting (concurrent join)", req.CustomerID)
			return nil, ErrAlreadyWaiting
		}

		uc.logger.Error("JoinWaitlist: transaction failed: %v", err)
		return nil, err
	}

	if err != nil {
		uc.logger.Error("JoinWaitlist: all %d attempts failed: %v", maxJoinAttempts, err)
		return nil, fmt.Errorf("%w: failed to join waitlist after retries: %v", ErrInternal, err)
	}

	uc.logger.Info("JoinWaitlist: customer id=%d joined at position %d (entry id=%d)",
		req.CustomerID, created.Position, created.ID)

	return &Response{
		ID:         created.ID,
		BusinessID: created.BusinessID,
		ServiceID:  created.ServiceID,
		Date:       created.BookingDate,
		StartTime:  created.StartTime,
		Position:   created.Position,
		CreatedAt:  created.CreatedAt,
	}, nil
}

// tryJoin одна попытка вступления в serializable-транзакции
func (uc *UseCase) tryJoin(ctx context.Context, req *Request) (*domain.WaitlistEntry, error) {
	var created *domain.WaitlistEntry

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем партицию и считаем ожидающих
		waiting, err := uc.waitlistRepo.GetWaitingByPartition(txCtx, req.BusinessID, req.Date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to get waitlist partition: %w", ErrInternal, err)
		}

		entry := &domain.WaitlistEntry{
			BusinessID:  req.BusinessID,
			ServiceID:   req.ServiceID,
			StaffID:     req.StaffID,
			CustomerID:  req.CustomerID,
			BookingDate: req.Date,
			StartTime:   req.StartTime,
			Position:    len(waiting) + 1,
			Status:      domain.WaitlistStatusWaiting,
		}

		created, err = uc.waitlistRepo.Create(txCtx, entry)
		if err != nil {
			// Сентинельные ошибки уникальности пробрасываем как есть -
			// внешний цикл решает, повторять ли попытку
			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return created, nil
}
