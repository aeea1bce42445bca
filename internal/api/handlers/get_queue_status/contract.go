package get_queue_status

import (
	"context"

	getQueueStatus "github.com/jongque/JQ-BookingService/internal/usecase/get_queue_status"
)

type GetQueueStatusUseCase interface {
	Execute(ctx context.Context, req *getQueueStatus.Request) (*getQueueStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
