package waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("waitlist.repository: entry not found")

	// ErrPositionTaken возвращается при нарушении уникальности позиции
	// (конкурентное вступление успело занять ту же позицию)
	ErrPositionTaken = errors.New("waitlist.repository: position already taken")

	// ErrDuplicateWaiting возвращается, когда клиент уже стоит в листе
	// ожидания на этот слот
	ErrDuplicateWaiting = errors.New("waitlist.repository: customer already waiting for this slot")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("waitlist.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("waitlist.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("waitlist.repository: failed to scan row")
)
