package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongque/JQ-BookingService/internal/domain"
	bookingRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	"github.com/jongque/JQ-BookingService/pkg/ptr"
)

// Количество попыток создания при гонке за номер очереди или коллизии
// номера бронирования
const maxCreateAttempts = 3

// UseCase use case создания бронирования.
//
// Проверка конфликтов, выдача номера очереди и вставка выполняются в одной
// serializable-транзакции; чтение дня блокирует его строки (FOR UPDATE).
// Конкурент, успевший первым, вызовет либо сбой сериализации, либо нарушение
// уникального индекса номера очереди - обе ситуации приводят к повторной
// попытке с пересчитанными данными
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, service=%d, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.scheduleRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("CreateBooking: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем услугу с проверкой принадлежности бизнесу
	service, err := uc.scheduleRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Проверяем рабочие часы дня
	week, err := uc.scheduleRepo.GetWeekSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d has no operating hours", req.BusinessID)
			return nil, fmt.Errorf("%w: business is closed on this day", ErrSlotUnavailable)
		}
		uc.logger.Error("CreateBooking: failed to get schedule for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	hours := week.ForDate(req.Date)
	if !fitsOperatingHours(req.StartTime, service.DurationMinutes, hours) {
		uc.logger.Warn("CreateBooking: slot %s (%d min) outside operating hours for business id=%d",
			req.StartTime, service.DurationMinutes, req.BusinessID)
		return nil, fmt.Errorf("%w: outside operating hours", ErrSlotUnavailable)
	}

	if !alignsToGrid(req.StartTime, hours.OpenTime, domain.DefaultSlotIntervalMinutes) {
		uc.logger.Warn("CreateBooking: slot %s is not aligned to the slot grid for business id=%d",
			req.StartTime, req.BusinessID)
		return nil, fmt.Errorf("%w: start time is not aligned to the slot grid", ErrSlotUnavailable)
	}

	// 5. Создаем бронирование с ограниченным числом повторов
	// Повтор нужен при конкурентной выдаче номера очереди и коллизии
	// случайного суффикса номера бронирования
	var created *domain.Booking
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		created, err = uc.tryCreate(ctx, req, service)
		if err == nil {
			break
		}

		if errors.Is(err, bookingRepo.ErrQueueNumberTaken) || errors.Is(err, bookingRepo.ErrBookingNumberTaken) {
			uc.logger.Warn("CreateBooking: attempt %d/%d lost race (%v), retrying", attempt, maxCreateAttempts, err)
			continue
		}

		return nil, err
	}

	if err != nil {
		uc.logger.Error("CreateBooking: all %d attempts failed: %v", maxCreateAttempts, err)
		return nil, fmt.Errorf("%w: failed to create booking after retries: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, number=%s, queue=%d",
		created.ID, created.BookingNumber, *created.QueueNumber)

	return &Response{
		ID:               created.ID,
		BookingNumber:    created.BookingNumber,
		BusinessID:       created.BusinessID,
		ServiceID:        created.ServiceID,
		StaffID:          created.StaffID,
		Date:             created.BookingDate,
		StartTime:        created.StartTime,
		DurationMinutes:  created.DurationMinutes,
		QueueNumber:      *created.QueueNumber,
		Status:           string(created.Status),
		GuestLookupToken: created.GuestLookupToken,
		CreatedAt:        created.CreatedAt,
	}, nil
}

// tryCreate одна попытка создания бронирования в serializable-транзакции
func (uc *UseCase) tryCreate(ctx context.Context, req *Request, service *domain.Service) (*domain.Booking, error) {
	var created *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Читаем бронирования дня с блокировкой строк
		filter := domain.BusinessBookingsFilter{
			BusinessID:      req.BusinessID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false,
		}

		dayBookings, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, filter)
		if err != nil {
			return fmt.Errorf("%w: failed to get day bookings: %w", ErrInternal, err)
		}

		slot := slotRequest{
			start:    req.StartTime,
			duration: service.DurationMinutes,
			staffID:  req.StaffID,
		}

		if hasConflict(slot, dayBookings) {
			return fmt.Errorf("%w: time slot already booked", ErrSlotUnavailable)
		}

		// Зарегистрированный клиент не может забронировать одно время дважды
		if req.CustomerID != nil {
			duplicates, err := uc.bookingRepo.CountActiveByCustomerAt(
				txCtx, req.BusinessID, *req.CustomerID, req.Date, req.StartTime.String())
			if err != nil {
				return fmt.Errorf("%w: failed to check duplicate booking: %w", ErrInternal, err)
			}
			if duplicates > 0 {
				return ErrDuplicateBooking
			}
		}

		// Выдаем следующий номер очереди
		maxQueue, err := uc.bookingRepo.MaxQueueNumber(txCtx, req.BusinessID, req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to get max queue number: %w", ErrInternal, err)
		}

		bookingNumber, err := generateBookingNumber(req.Date)
		if err != nil {
			return fmt.Errorf("%w: failed to generate booking number: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			BookingNumber:   bookingNumber,
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			CustomerID:      req.CustomerID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			QueueNumber:     ptr.Ptr(maxQueue + 1),
			Status:          domain.StatusConfirmed,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
		}

		// Гость получает токен для доступа к бронированию без аккаунта
		if req.CustomerID == nil {
			token, err := generateGuestToken()
			if err != nil {
				return fmt.Errorf("%w: failed to generate guest token: %v", ErrInternal, err)
			}
			booking.GuestLookupToken = token
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
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
