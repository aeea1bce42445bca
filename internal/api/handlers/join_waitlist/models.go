package join_waitlist

import (
	"time"

	"github.com/jongque/JQ-BookingService/internal/domain"
	joinWaitlist "github.com/jongque/JQ-BookingService/internal/usecase/join_waitlist"
	"github.com/jongque/JQ-BookingService/pkg/types"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	ServiceID int64  `json:"serviceId"`
	StaffID   *int64 `json:"staffId,omitempty"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
}

// JoinWaitlistResponse HTTP response model
type JoinWaitlistResponse struct {
	ID         int64  `json:"id"`
	BusinessID int64  `json:"businessId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Position   int    `json:"position"`
	CreatedAt  string `json:"createdAt"` // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *JoinWaitlistRequest) ToUseCaseRequest(businessID, userID int64) (*joinWaitlist.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &joinWaitlist.Request{
		BusinessID: businessID,
		ServiceID:  r.ServiceID,
		StaffID:    r.StaffID,
		CustomerID: userID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinWaitlist.Response) *JoinWaitlistResponse {
	return &JoinWaitlistResponse{
		ID:         resp.ID,
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		Position:   resp.Position,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
