package create_booking

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// Request модель запроса создания бронирования
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  int64            // ID услуги
	StaffID    *int64           // ID сотрудника (опционально, nil = любой)
	CustomerID *int64           // ID клиента из заголовка авторизации; nil = гость
	Date       time.Time        // Дата бронирования
	StartTime  types.TimeString // Время начала ("HH:MM")

	// Контактные данные гостя (обязательны, если CustomerID == nil)
	CustomerName  *string
	CustomerEmail *string
	CustomerPhone *string

	Notes *string // Комментарий клиента (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               int64
	BookingNumber    string           // "JQ" + YYYYMMDD + 4 цифры
	BusinessID       int64
	ServiceID        int64
	StaffID          *int64
	Date             time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	QueueNumber      int
	Status           string
	GuestLookupToken *string // Токен для гостевого доступа к бронированию
	CreatedAt        time.Time
}
