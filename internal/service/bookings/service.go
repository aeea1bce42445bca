package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	bookingRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/jongque/JQ-BookingService/internal/infra/storage/schedule"
	"github.com/jongque/JQ-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь видит только своё бронирование
// или бронирование своего бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetByBookingNumber получает бронирование по человекочитаемому номеру
// Проверка прав та же, что и при получении по ID
func (s *Service) GetByBookingNumber(ctx context.Context, number string, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByBookingNumber: fetching booking number=%s for user=%d", number, userID)

	if number == "" {
		return nil, fmt.Errorf("%w: empty booking number", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByBookingNumber(ctx, number)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByBookingNumber: booking number=%s not found", number)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByBookingNumber: repository error for number=%s: %v", number, err)
		return nil, fmt.Errorf("%w: GetByBookingNumber - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByBookingNumber: access denied for user=%d to booking number=%s", userID, number)
		return nil, err
	}

	s.logger.Info("GetByBookingNumber: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// GetByGuestToken получает гостевое бронирование по токену доступа
// Токен выдаётся гостю при создании бронирования и заменяет авторизацию
func (s *Service) GetByGuestToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	s.logger.Info("GetByGuestToken: fetching guest booking")

	if token == "" {
		return nil, fmt.Errorf("%w: empty guest token", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByGuestToken(ctx, token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByGuestToken: booking not found for token")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByGuestToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByGuestToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByGuestToken: successfully fetched booking id=%d", booking.ID)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду, статусу и включению
// неактивных бронирований. Доступно только владельцу бизнеса.
//
// Примеры использования:
// - Все активные бронирования: GetBusinessBookings(ctx, &GetBusinessBookingsRequest{BusinessID: 123, UserID: 456})
// - Бронирования сотрудника: указать StaffID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%d", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права владельца
	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Клиент может отменить своё бронирование (или гостевое по токену),
// владелец бизнеса - любое бронирование своего бизнеса
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Проверяем права на отмену
	if err := s.checkCancelAccess(ctx, booking, req); err != nil {
		s.logger.Warn("Cancel: access denied to cancel booking id=%d", bookingID)
		return err
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// UpdateStatus обновляет статус бронирования по машине состояний:
// confirmed -> checked_in -> in_progress -> completed, из любого
// нетерминального статуса возможен переход в cancelled или no_show.
// Доступно только владельцу бизнеса.
//
// При переходе в in_progress фиксируется фактическое время начала,
// при переходе в completed - фактическое время окончания
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только владелец бизнеса)
	if err := s.checkOwnerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidStatus)
	}

	// Проверяем допустимость перехода
	if !domain.CanTransition(booking.Status, newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	// Фиксируем фактические временные отметки
	var actualStart, actualEnd *time.Time
	now := s.timeProvider.Now()

	switch newStatus {
	case domain.StatusInProgress:
		actualStart = &now
	case domain.StatusCompleted:
		actualEnd = &now
		// Если начало обслуживания не было зафиксировано - дозаполняем
		if booking.ActualStartTime == nil {
			actualStart = &now
		}
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, actualStart, actualEnd); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь видит своё бронирование или бронирование своего бизнеса
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if booking.CustomerID != nil && *booking.CustomerID == userID {
		return nil
	}

	// Проверяем, является ли пользователь владельцем бизнеса
	if err := s.checkOwnerAccess(ctx, booking.BusinessID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkCancelAccess проверяет права на отмену бронирования
// Гость подтверждает владение токеном, клиент - своим ID,
// владелец бизнеса может отменить любое бронирование своего бизнеса
func (s *Service) checkCancelAccess(ctx context.Context, booking *domain.Booking, req *models.CancelBookingRequest) error {
	// Гостевая отмена по токену
	if req.GuestToken != nil && booking.GuestLookupToken != nil && *req.GuestToken == *booking.GuestLookupToken {
		return nil
	}

	if req.UserID == nil {
		return ErrAccessDenied
	}

	return s.checkUserAccess(ctx, booking, *req.UserID)
}

// checkOwnerAccess проверяет, что пользователь является владельцем бизнеса
func (s *Service) checkOwnerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.scheduleRepo.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get business: %v", ErrInternal, err)
	}

	if business.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of business=%d", userID, businessID)
		return ErrAccessDenied
	}

	return nil
}
