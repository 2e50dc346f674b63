package update_room

// UpdateRoomRequest HTTP request model. Поля опциональны и применяются
// независимо; ClearOwner снимает владельца (и возвращает комнате
// постоянную доступность).
type UpdateRoomRequest struct {
	OwnerID    *int64 `json:"ownerId,omitempty"`
	ClearOwner bool   `json:"clearOwner,omitempty"`
	Offline    *bool  `json:"offline,omitempty"`
}

// UpdateRoomResponse HTTP response model
type UpdateRoomResponse struct {
	RoomID int64 `json:"roomId"`
}
