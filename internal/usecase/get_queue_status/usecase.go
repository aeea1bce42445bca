package get_queue_status

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jongque/JQ-BookingService/internal/domain"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
)

// UseCase use case получения статуса живой очереди на день.
// Read-only агрегация по бронированиям дня: кто обслуживается, сколько
// человек ждёт и ориентировочное время ожидания
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения статуса очереди
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetQueueStatus: business=%d, date=%s", req.BusinessID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем бизнес
	business, err := uc.scheduleRepo.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetQueueStatus: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetQueueStatus: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsActive {
		uc.logger.Warn("GetQueueStatus: business id=%d is inactive", req.BusinessID)
		return nil, ErrBusinessNotFound
	}

	// 3. Получаем активные бронирования дня (включая завершённые -
	// по ним считается фактическая длительность обслуживания)
	filter := domain.BusinessBookingsFilter{
		BusinessID:      req.BusinessID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetQueueStatus: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp := buildQueueStatus(req, bookings)

	uc.logger.Info("GetQueueStatus: business=%d, inQueue=%d, serving=%v, estimatedWait=%d min",
		req.BusinessID, resp.TotalInQueue, resp.CurrentServing, resp.EstimatedWaitMinutes)

	return resp, nil
}

// buildQueueStatus агрегирует бронирования дня в статус очереди
func buildQueueStatus(req *Request, bookings []*domain.Booking) *Response {
	var (
		currentServing *int
		totalInQueue   int
		entries        = make([]QueueEntry, 0, len(bookings))
	)

	for _, b := range bookings {
		if b.QueueNumber == nil {
			continue
		}

		entries = append(entries, QueueEntry{
			QueueNumber: *b.QueueNumber,
			Status:      string(b.Status),
			StartTime:   b.StartTime,
		})

		switch b.Status {
		case domain.StatusInProgress:
			// Обслуживается бронирование с максимальным номером среди in_progress
			if currentServing == nil || *b.QueueNumber > *currentServing {
				n := *b.QueueNumber
				currentServing = &n
			}
		case domain.StatusConfirmed, domain.StatusCheckedIn:
			totalInQueue++
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].QueueNumber < entries[j].QueueNumber
	})

	avg := averageServiceMinutes(bookings)

	return &Response{
		BusinessID:            req.BusinessID,
		Date:                  req.Date,
		CurrentServing:        currentServing,
		TotalInQueue:          totalInQueue,
		AverageServiceMinutes: avg,
		EstimatedWaitMinutes:  totalInQueue * avg,
		Entries:               entries,
	}
}

// averageServiceMinutes вычисляет среднюю длительность обслуживания.
// Предпочитает фактические длительности завершённых бронирований дня;
// если завершённых ещё нет - среднюю плановую длительность
func averageServiceMinutes(bookings []*domain.Booking) int {
	var actualSum, actualCount int
	var plannedSum, plannedCount int

	for _, b := range bookings {
		if b.Status == domain.StatusCompleted && b.ActualStartTime != nil && b.ActualEndTime != nil {
			minutes := int(b.ActualEndTime.Sub(*b.ActualStartTime).Minutes())
			if minutes > 0 {
				actualSum += minutes
				actualCount++
			}
		}

		if b.DurationMinutes > 0 {
			plannedSum += b.DurationMinutes
			plannedCount++
		}
	}

	if actualCount > 0 {
		return actualSum / actualCount
	}
	if plannedCount > 0 {
		return plannedSum / plannedCount
	}

	return domain.DefaultSlotIntervalMinutes
}
