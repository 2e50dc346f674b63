package domain

// Business validation constants
const (
	MaxGuestNameLength = 20
)

// CommunityLabel подпись отправителя для комнат без владельца
const CommunityLabel = "Housing Community"

// Titles of auto-created intervals
const (
	PermanentAvailabilityTitle = "Permanent Availability"
)
