package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrQueueNumberTaken возвращается при нарушении уникальности номера очереди
	// (конкурентное бронирование успело занять тот же номер)
	ErrQueueNumberTaken = errors.New("booking.repository: queue number already taken")

	// ErrBookingNumberTaken возвращается при коллизии номера бронирования
	ErrBookingNumberTaken = errors.New("booking.repository: booking number already taken")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
