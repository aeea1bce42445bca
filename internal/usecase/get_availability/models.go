package get_availability

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// Request модель запроса доступности
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  int64     // ID услуги
	StaffID    *int64    // ID сотрудника (опционально, nil = любой)
	Date       time.Time // Дата (без времени)
}

// Response модель ответа с доступными слотами и следующим номером очереди
type Response struct {
	Date            time.Time      // Дата, на которую запрашивались слоты
	BusinessID      int64          // ID бизнеса
	ServiceID       int64          // ID услуги
	IsOpen          bool           // Открыт ли бизнес в этот день
	OperatingHours  OperatingHours // Рабочие часы дня
	Slots           []Slot         // Список слотов
	NextQueueNumber int            // Следующий свободный номер очереди
}

// OperatingHours рабочие часы дня в ответе
type OperatingHours struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
	Available       bool             // Свободен ли слот
	WaitlistCount   int              // Количество ожидающих в листе ожидания на это время
}
