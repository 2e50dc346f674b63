package resize_booking

import (
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// ResizeBookingRequest HTTP request model
type ResizeBookingRequest struct {
	StartDate string `json:"startDate"` // "2026-09-15"
	EndDate   string `json:"endDate"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ResizeBookingRequest) ToServiceRequest(norm *timeutil.Normalizer, intervalID, callerID int64) (models.ResizeRequest, error) {
	startDate, err := norm.ParseDate(r.StartDate)
	if err != nil {
		return models.ResizeRequest{}, fmt.Errorf("parse start date: %w", err)
	}

	endDate, err := norm.ParseDate(r.EndDate)
	if err != nil {
		return models.ResizeRequest{}, fmt.Errorf("parse end date: %w", err)
	}

	return models.ResizeRequest{
		IntervalID: intervalID,
		CallerID:   callerID,
		NewStart:   norm.CheckIn(startDate),
		NewEnd:     norm.CheckOut(endDate),
	}, nil
}
