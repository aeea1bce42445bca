package leave_waitlist

// Request модель запроса выхода из листа ожидания
type Request struct {
	EntryID    int64 // ID записи листа ожидания
	CustomerID int64 // ID клиента из заголовка авторизации
}
