package join_waitlist

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден или неактивен
	ErrBusinessNotFound = errors.New("join_waitlist: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не принадлежит бизнесу
	ErrServiceNotFound = errors.New("join_waitlist: service not found")

	// ErrAlreadyWaiting возвращается, когда клиент уже стоит в листе ожидания
	// на это время
	ErrAlreadyWaiting = errors.New("join_waitlist: already in waitlist")

	// ErrAlreadyBooked возвращается, когда у клиента уже есть активное
	// бронирование на это время
	ErrAlreadyBooked = errors.New("join_waitlist: already booked for this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("join_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_waitlist: internal error")
)
