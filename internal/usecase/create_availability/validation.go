package create_availability

import "fmt"

// validateRequest проверяет запрос на объявление доступности
func validateRequest(req Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: room id must be positive", ErrInvalidData)
	}

	if req.CallerID <= 0 {
		return fmt.Errorf("%w: caller id must be positive", ErrInvalidData)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidData)
	}

	return nil
}
