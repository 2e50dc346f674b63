package create_room

import "github.com/m04kA/HC-RoomService/internal/domain"

// CreateRoomRequest HTTP request model
type CreateRoomRequest struct {
	SectionID int64  `json:"sectionId"`
	Number    int    `json:"number"`
	OwnerID   *int64 `json:"ownerId,omitempty"`
}

// RoomResponse HTTP response model
type RoomResponse struct {
	ID        int64  `json:"id"`
	SectionID int64  `json:"sectionId"`
	Number    int    `json:"number"`
	OwnerID   *int64 `json:"ownerId,omitempty"`
	IsOffline bool   `json:"isOffline"`
}

// FromDomain конвертирует доменную комнату в HTTP response
func FromDomain(room *domain.Room) *RoomResponse {
	return &RoomResponse{
		ID:        room.ID,
		SectionID: room.SectionID,
		Number:    room.Number,
		OwnerID:   room.OwnerID,
		IsOffline: room.IsOffline,
	}
}
