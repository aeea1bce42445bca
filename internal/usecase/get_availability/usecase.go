package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
)

// UseCase use case получения доступных слотов и следующего номера очереди.
// Композиция: расписание дня → генерация кандидатов → проверка конфликтов
// по каждому кандидату → подсчёт листа ожидания → следующий номер очереди.
//
// Read-only: ничего не пишет, безопасен для повторных вызовов
type UseCase struct {
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: business=%d, service=%d, staff=%v, date=%s",
		req.BusinessID, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: date must not be in the past", ErrInvalidInput)
	}

	// 2. Получаем бизнес
	business, err := uc.scheduleRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailability: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailability: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("GetAvailability: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем услугу с проверкой принадлежности бизнесу
	service, err := uc.scheduleRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive {
		uc.logger.Warn("GetAvailability: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем рабочие часы на день недели запрошенной даты
	week, err := uc.scheduleRepo.GetWeekSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			// Нет расписания = бизнес нигде не открыт
			uc.logger.Info("GetAvailability: business id=%d has no operating hours", req.BusinessID)
			return uc.closedResponse(req), nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule for business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	hours := week.ForDate(req.Date)

	// Закрытый день - это не ошибка, а пустая доступность
	if !hours.IsOpen {
		uc.logger.Info("GetAvailability: business id=%d is closed on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return uc.closedResponse(req), nil
	}

	// 5. Генерируем кандидатов времени начала
	timeSlots, err := generateTimeSlots(hours, service.DurationMinutes, domain.DefaultSlotIntervalMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 6. Получаем все активные бронирования на эту дату
	filter := domain.BusinessBookingsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступность и размер листа ожидания для каждого кандидата
	slots := make([]Slot, len(timeSlots))
	for i, slotStart := range timeSlots {
		overlapping := countOverlappingBookings(slotStart, service.DurationMinutes, req.StaffID, bookings)

		waitlistCount, err := uc.waitlistRepo.CountWaiting(ctx, req.BusinessID, req.Date, slotStart)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to count waitlist for slot %s: %v", slotStart, err)
			return nil, fmt.Errorf("%w: failed to count waitlist: %v", ErrInternal, err)
		}

		slots[i] = Slot{
			StartTime:       slotStart,
			DurationMinutes: service.DurationMinutes,
			Available:       overlapping == 0,
			WaitlistCount:   waitlistCount,
		}
	}

	// 8. Вычисляем следующий номер очереди
	maxQueue, err := uc.bookingRepo.MaxQueueNumber(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get max queue number: %v", err)
		return nil, fmt.Errorf("%w: failed to get max queue number: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailability: generated %d slots for business=%d, service=%d, date=%s, nextQueue=%d",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), maxQueue+1)

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		IsOpen:     true,
		OperatingHours: OperatingHours{
			OpenTime:  hours.OpenTime,
			CloseTime: hours.CloseTime,
		},
		Slots:           slots,
		NextQueueNumber: maxQueue + 1,
	}, nil
}

// closedResponse формирует ответ для закрытого дня
func (uc *UseCase) closedResponse(req *Request) *Response {
	return &Response{
		Date:            req.Date,
		BusinessID:      req.BusinessID,
		ServiceID:       req.ServiceID,
		IsOpen:          false,
		Slots:           []Slot{},
		NextQueueNumber: domain.FirstQueueNumber,
	}
}
