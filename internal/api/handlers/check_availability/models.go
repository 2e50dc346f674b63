package check_availability

import (
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	RoomID    int64  `json:"roomId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	GuestType string `json:"guestType"`
	Available bool   `json:"available"`
}

// parseGuestType конвертирует строковый тип гостя из запроса.
// Пустое значение трактуется как "stranger" - самый строгий вариант.
func parseGuestType(s string) (domain.GuestType, error) {
	switch s {
	case "", "stranger":
		return domain.GuestStranger, nil
	case "known":
		return domain.GuestKnown, nil
	case "member":
		return domain.GuestMember, nil
	default:
		return 0, fmt.Errorf("unknown guest type %q", s)
	}
}
