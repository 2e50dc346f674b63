package get_room_intervals

import (
	"fmt"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
)

// IntervalResponse HTTP модель интервала календаря
type IntervalResponse struct {
	ID        int64   `json:"id"`
	RoomID    int64   `json:"roomId"`
	Kind      string  `json:"kind"`
	StartAt   string  `json:"startAt"`
	EndAt     string  `json:"endAt"`
	Title     string  `json:"title"`
	GuestName *string `json:"guestName,omitempty"`
	GuestType *int    `json:"guestType,omitempty"`
	CreatorID *int64  `json:"creatorId,omitempty"`
}

// RoomIntervalsResponse HTTP response model
type RoomIntervalsResponse struct {
	RoomID    int64               `json:"roomId"`
	Intervals []*IntervalResponse `json:"intervals"`
}

// FromServiceIntervals конвертирует интервалы сервиса в HTTP response
func FromServiceIntervals(roomID int64, list []*models.Interval) *RoomIntervalsResponse {
	out := make([]*IntervalResponse, 0, len(list))
	for _, iv := range list {
		out = append(out, &IntervalResponse{
			ID:        iv.ID,
			RoomID:    iv.RoomID,
			Kind:      iv.Kind,
			StartAt:   iv.StartAt.Format(time.RFC3339),
			EndAt:     iv.EndAt.Format(time.RFC3339),
			Title:     iv.Title,
			GuestName: iv.GuestName,
			GuestType: iv.GuestType,
			CreatorID: iv.CreatorID,
		})
	}

	return &RoomIntervalsResponse{
		RoomID:    roomID,
		Intervals: out,
	}
}

// parseKind конвертирует фильтр вида интервала из запроса.
// Пустое значение - без фильтра.
func parseKind(s string) (*domain.IntervalKind, error) {
	switch s {
	case "":
		return nil, nil
	case "availability":
		kind := domain.KindAvailability
		return &kind, nil
	case "occupancy":
		kind := domain.KindOccupancy
		return &kind, nil
	default:
		return nil, fmt.Errorf("unknown interval kind %q", s)
	}
}
