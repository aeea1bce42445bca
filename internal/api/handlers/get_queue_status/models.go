package get_queue_status

import (
	"github.com/jongque/JQ-BookingService/internal/domain"
	getQueueStatus "github.com/jongque/JQ-BookingService/internal/usecase/get_queue_status"
)

// QueueStatusResponse HTTP response model
type QueueStatusResponse struct {
	BusinessID            int64        `json:"businessId"`
	Date                  string       `json:"date"`
	CurrentServing        *int         `json:"currentServing"`
	TotalInQueue          int          `json:"totalInQueue"`
	AverageServiceMinutes int          `json:"averageServiceMinutes"`
	EstimatedWaitMinutes  int          `json:"estimatedWaitMinutes"`
	Queue                 []QueueEntry `json:"queue"`
}

// QueueEntry позиция в очереди дня
type QueueEntry struct {
	QueueNumber int    `json:"queueNumber"`
	Status      string `json:"status"`
	StartTime   string `json:"startTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getQueueStatus.Response) *QueueStatusResponse {
	queue := make([]QueueEntry, len(resp.Entries))
	for i, entry := range resp.Entries {
		queue[i] = QueueEntry{
			QueueNumber: entry.QueueNumber,
			Status:      entry.Status,
			StartTime:   entry.StartTime.String(),
		}
	}

	return &QueueStatusResponse{
		BusinessID:            resp.BusinessID,
		Date:                  resp.Date.Format(domain.DateFormat),
		CurrentServing:        resp.CurrentServing,
		TotalInQueue:          resp.TotalInQueue,
		AverageServiceMinutes: resp.AverageServiceMinutes,
		EstimatedWaitMinutes:  resp.EstimatedWaitMinutes,
		Queue:                 queue,
	}
}
