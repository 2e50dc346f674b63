package update_preference

import (
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// UpdatePreferenceRequest HTTP request model
type UpdatePreferenceRequest struct {
	Preference string `json:"preference"` // "anyone" / "known" / "members"
}

// UpdatePreferenceResponse HTTP response model
type UpdatePreferenceResponse struct {
	PersonID   int64  `json:"personId"`
	Preference string `json:"preference"`
}

// parsePreference конвертирует строковое предпочтение из запроса
func parsePreference(s string) (domain.Preference, error) {
	switch s {
	case "anyone":
		return domain.PreferenceAnyone, nil
	case "known":
		return domain.PreferenceKnown, nil
	case "members":
		return domain.PreferenceMembers, nil
	default:
		return 0, fmt.Errorf("unknown preference %q", s)
	}
}
