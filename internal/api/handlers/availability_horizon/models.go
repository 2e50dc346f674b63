package availability_horizon

// HorizonResponse HTTP response model.
// AvailableThrough null, когда комната недоступна в запрошенный момент.
type HorizonResponse struct {
	RoomID           int64   `json:"roomId"`
	From             string  `json:"from"`
	Available        bool    `json:"available"`
	AvailableThrough *string `json:"availableThrough"`
}
