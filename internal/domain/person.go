package domain

// Preference is the minimum guest trust tier an owner admits to their room
type Preference int

const (
	// PreferenceAnyone anyone can stay here
	PreferenceAnyone Preference = 1
	// PreferenceKnown only people well known to the community can stay here
	PreferenceKnown Preference = 2
	// PreferenceMembers only community members can stay here
	PreferenceMembers Preference = 3
)

// Valid returns true if the preference is one of the known tiers
func (p Preference) Valid() bool {
	return p >= PreferenceAnyone && p <= PreferenceMembers
}

// Admits reports whether a guest of the given type clears this preference
func (p Preference) Admits(g GuestType) bool {
	return int(g) >= int(p)
}

// Person is someone who can own a room or host guests.
// A person may have a parent responsible for managing their room
// (young children, or a spouse delegating to the other).
type Person struct {
	ID         int64
	Name       string
	Email      string
	Preference Preference
	ParentID   *int64
}

// IsOwnParent reports the forbidden direct self-reference.
// Longer parent cycles are not detected.
func (p *Person) IsOwnParent() bool {
	return p.ParentID != nil && *p.ParentID == p.ID
}
