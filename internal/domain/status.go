package domain

// Единственная авторитетная таблица переходов статусов бронирования.
// Любая проверка допустимости перехода в любом слое идёт через CanTransition.
//
// Счастливый путь: confirmed -> checked_in -> in_progress -> completed.
// Из любого нефинального статуса возможен выход в cancelled или no_show.
// Из completed, cancelled и no_show переходов нет.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusConfirmed:  {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted:  {},
	StatusCancelled:  {},
	StatusNoShow:     {},
}

// CanTransition reports whether a booking may move from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known booking status
func ValidStatus(s BookingStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}
