package edit_availability

import (
	"fmt"
	"time"

	editAvailability "github.com/m04kA/HC-RoomService/internal/usecase/edit_availability"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// EditAvailabilityRequest HTTP request model
type EditAvailabilityRequest struct {
	StartDate string `json:"startDate"` // "2026-09-15"
	EndDate   string `json:"endDate"`
}

// EditAvailabilityResponse HTTP response model со статистикой переселения
type EditAvailabilityResponse struct {
	ID               int64  `json:"id"`
	RoomID           int64  `json:"roomId"`
	StartAt          string `json:"startAt"`
	EndAt            string `json:"endAt"`
	DisplacedGuests  int    `json:"displacedGuests"`
	ReassignedGuests int    `json:"reassignedGuests"`
	UnassignedGuests int    `json:"unassignedGuests"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditAvailabilityRequest) ToUseCaseRequest(norm *timeutil.Normalizer, intervalID, callerID int64) (editAvailability.Request, error) {
	startDate, err := norm.ParseDate(r.StartDate)
	if err != nil {
		return editAvailability.Request{}, fmt.Errorf("parse start date: %w", err)
	}

	endDate, err := norm.ParseDate(r.EndDate)
	if err != nil {
		return editAvailability.Request{}, fmt.Errorf("parse end date: %w", err)
	}

	return editAvailability.Request{
		IntervalID: intervalID,
		CallerID:   callerID,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *editAvailability.Response) *EditAvailabilityResponse {
	return &EditAvailabilityResponse{
		ID:               resp.IntervalID,
		RoomID:           resp.RoomID,
		StartAt:          resp.StartAt.Format(time.RFC3339),
		EndAt:            resp.EndAt.Format(time.RFC3339),
		DisplacedGuests:  resp.DisplacedGuests,
		ReassignedGuests: resp.ReassignedGuests,
		UnassignedGuests: resp.UnassignedGuests,
	}
}
