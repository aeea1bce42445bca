package get_queue_status

import (
	"time"

	"github.com/jongque/JQ-BookingService/pkg/types"
)

// Request модель запроса статуса живой очереди
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата (обычно сегодня)
}

// Response модель ответа со статусом очереди
type Response struct {
	BusinessID int64
	Date       time.Time

	// CurrentServing номер очереди обслуживаемого сейчас бронирования
	// (максимальный среди in_progress); nil, если никто не обслуживается
	CurrentServing *int

	// TotalInQueue количество бронирований, ожидающих обслуживания
	// (confirmed + checked_in)
	TotalInQueue int

	// AverageServiceMinutes средняя фактическая длительность обслуживания
	// по завершённым бронированиям дня; при их отсутствии - средняя плановая
	AverageServiceMinutes int

	// EstimatedWaitMinutes оценка ожидания для вновь пришедшего:
	// TotalInQueue * AverageServiceMinutes
	EstimatedWaitMinutes int

	// Entries очередь дня по возрастанию номера
	Entries []QueueEntry
}

// QueueEntry позиция в очереди дня
type QueueEntry struct {
	QueueNumber int
	Status      string
	StartTime   types.TimeString
}
