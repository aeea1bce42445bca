package create_booking

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или неактивен
	ErrBusinessNotFound = errors.New("create_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не принадлежит бизнесу
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotUnavailable возвращается, когда слот занят или вне рабочих часов
	ErrSlotUnavailable = errors.New("create_booking: slot unavailable")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть активное
	// бронирование на это же время
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
