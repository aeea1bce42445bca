package leave_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongque/JQ-BookingService/internal/domain"
	waitlistRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/waitlist"
)

// UseCase use case выхода из листа ожидания.
//
// Выход и сдвиг позиций остальных ожидающих выполняются в одной
// serializable-транзакции по заблокированной партиции, поэтому позиции
// всегда остаются непрерывными 1..N без дыр
type UseCase struct {
	waitlistRepo WaitlistRepository
	txManager    TxManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(waitlistRepo WaitlistRepository, txManager TxManager, logger Logger) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case выхода из листа ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("LeaveWaitlist: entry=%d, customer=%d", req.EntryID, req.CustomerID)

	// 1. Валидация входных данных
	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// 2. Получаем запись и проверяем владельца
	entry, err := uc.waitlistRepo.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			uc.logger.Warn("LeaveWaitlist: entry id=%d not found", req.EntryID)
			return ErrEntryNotFound
		}
		uc.logger.Error("LeaveWaitlist: failed to get entry id=%d: %v", req.EntryID, err)
		return fmt.Errorf("%w: failed to get entry: %v", ErrInternal, err)
	}

	if entry.CustomerID != req.CustomerID {
		uc.logger.Warn("LeaveWaitlist: customer id=%d tried to remove entry id=%d of customer id=%d",
			req.CustomerID, entry.ID, entry.CustomerID)
		return ErrAccessDenied
	}

	// Уже покинувшая лист запись = не найдена, выход идемпотентен не нужен
	if !entry.IsWaiting() {
		uc.logger.Warn("LeaveWaitlist: entry id=%d is not waiting (status=%s)", entry.ID, entry.Status)
		return ErrEntryNotFound
	}

	// 3. Атомарно помечаем выход и сдвигаем позиции
	var leftPosition int

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Блокируем партицию и берём позицию из заблокированного чтения:
		// прочитанная до транзакции могла устареть из-за параллельного выхода
		// соседа с меньшей позицией
		waiting, err := uc.waitlistRepo.GetWaitingByPartition(
			txCtx, entry.BusinessID, entry.BookingDate, entry.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to lock waitlist partition: %w", ErrInternal, err)
		}

		var current *domain.WaitlistEntry
		for _, w := range waiting {
			if w.ID == entry.ID {
				current = w
				break
			}
		}
		if current == nil {
			// Конкурент успел раньше
			return ErrEntryNotFound
		}

		if err := uc.waitlistRepo.MarkLeft(txCtx, current.ID, domain.WaitlistStatusCancelled); err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to mark entry left: %w", ErrInternal, err)
		}

		if err := uc.waitlistRepo.DecrementPositionsAfter(
			txCtx, entry.BusinessID, entry.BookingDate, entry.StartTime, current.Position); err != nil {
			return fmt.Errorf("%w: failed to shift positions: %w", ErrInternal, err)
		}

		leftPosition = current.Position
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrEntryNotFound) {
			uc.logger.Error("LeaveWaitlist: transaction failed: %v", err)
		}
		return err
	}

	uc.logger.Info("LeaveWaitlist: entry id=%d left, positions after %d shifted", entry.ID, leftPosition)

	return nil
}
