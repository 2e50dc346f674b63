package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// validateRequest проверяет запрос на создание брони
func validateRequest(req Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: room id must be positive", ErrInvalidData)
	}

	if req.HostID <= 0 {
		return fmt.Errorf("%w: host id must be positive", ErrInvalidData)
	}

	name := strings.TrimSpace(req.GuestName)
	if name == "" {
		return fmt.Errorf("%w: guest name is required", ErrInvalidData)
	}
	if len(name) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guest name exceeds %d characters", ErrInvalidData, domain.MaxGuestNameLength)
	}

	if !req.GuestType.Valid() {
		return fmt.Errorf("%w: unknown guest type %d", ErrInvalidData, req.GuestType)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidData)
	}

	return nil
}
