package join_waitlist

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// Request модель запроса вступления в лист ожидания
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	StaffID    *int64           // ID сотрудника (опционально)
	CustomerID int64            // ID клиента из заголовка авторизации
	Date       time.Time        // Дата желаемого слота
	StartTime  types.TimeString // Время желаемого слота ("HH:MM")
}

// Response модель ответа с созданной записью
type Response struct {
	ID         int64
	BusinessID int64
	ServiceID  int64
	Date       time.Time
	StartTime  types.TimeString
	Position   int // Позиция в очереди ожидания (1 = первый)
	CreatedAt  time.Time
}
