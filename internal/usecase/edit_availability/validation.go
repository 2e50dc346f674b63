package edit_availability

import "fmt"

// validateRequest проверяет запрос на изменение доступности
func validateRequest(req Request) error {
	if req.IntervalID <= 0 {
		return fmt.Errorf("%w: interval id must be positive", ErrInvalidData)
	}

	if req.CallerID <= 0 {
		return fmt.Errorf("%w: caller id must be positive", ErrInvalidData)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidData)
	}

	return nil
}
