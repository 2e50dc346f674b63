package delete_availability

import (
	deleteAvailability "github.com/m04kA/HC-RoomService/internal/usecase/delete_availability"
)

// DeleteAvailabilityResponse HTTP response model со статистикой переселения
type DeleteAvailabilityResponse struct {
	RoomID           int64 `json:"roomId"`
	DisplacedGuests  int   `json:"displacedGuests"`
	ReassignedGuests int   `json:"reassignedGuests"`
	UnassignedGuests int   `json:"unassignedGuests"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *deleteAvailability.Response) *DeleteAvailabilityResponse {
	return &DeleteAvailabilityResponse{
		RoomID:           resp.RoomID,
		DisplacedGuests:  resp.DisplacedGuests,
		ReassignedGuests: resp.ReassignedGuests,
		UnassignedGuests: resp.UnassignedGuests,
	}
}
