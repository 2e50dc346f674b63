package create_availability

import (
	"fmt"
	"time"

	createAvailability "github.com/m04kA/HC-RoomService/internal/usecase/create_availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// CreateAvailabilityRequest HTTP request model
type CreateAvailabilityRequest struct {
	StartDate string `json:"startDate"` // "2026-09-15"
	EndDate   string `json:"endDate"`
}

// AvailabilityResponse HTTP response model. После слияния окон возвращается
// накрывающий интервал, его границы могут быть шире запрошенных.
type AvailabilityResponse struct {
	ID        int64  `json:"id"`
	RoomID    int64  `json:"roomId"`
	StartAt   string `json:"startAt"`
	EndAt     string `json:"endAt"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAvailabilityRequest) ToUseCaseRequest(norm *timeutil.Normalizer, roomID, callerID int64) (createAvailability.Request, error) {
	startDate, err := norm.ParseDate(r.StartDate)
	if err != nil {
		return createAvailability.Request{}, fmt.Errorf("parse start date: %w", err)
	}

	endDate, err := norm.ParseDate(r.EndDate)
	if err != nil {
		return createAvailability.Request{}, fmt.Errorf("parse end date: %w", err)
	}

	return createAvailability.Request{
		RoomID:    roomID,
		CallerID:  callerID,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ID:        resp.IntervalID,
		RoomID:    resp.RoomID,
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		StartDate: resp.StartAt.Format(timeutil.DateFormat),
		EndDate:   resp.EndAt.Format(timeutil.DateFormat),
	}
}
