package domain

// Building groups sections; area is a coarse geographic tag
// ("courtyard" / "not_courtyard") used to keep reassigned guests close
// to their original room
type Building struct {
	ID        int64
	Name      string
	Area      string
	IsOffline bool
}

// Section is a floor or wing within a building, directly containing rooms
type Section struct {
	ID         int64
	BuildingID int64
	Name       string
	IsOffline  bool
}

// Room is where guests stay. The calendar is 1:1 with the room, so
// intervals reference the room directly.
//
// Building and owner fields are denormalized from joins: the reassignment
// planner needs the area tag and the owner's preference for every candidate.
type Room struct {
	ID        int64
	SectionID int64
	Number    int
	IsOffline bool

	BuildingID   int64
	BuildingArea string

	OwnerID         *int64
	OwnerName       *string
	OwnerPreference *Preference
}

// HasOwner returns true if the room has an owner
func (r *Room) HasOwner() bool {
	return r.OwnerID != nil
}

// Admits reports whether a guest of the given type may be placed in the room.
// Ownerless rooms admit anyone; otherwise the guest's trust tier must clear
// the owner's preference.
func (r *Room) Admits(g GuestType) bool {
	if r.OwnerID == nil || r.OwnerPreference == nil {
		return true
	}
	return r.OwnerPreference.Admits(g)
}

// OwnerLabel returns the owner's name for notifications, or the community
// label for ownerless rooms
func (r *Room) OwnerLabel() string {
	if r.OwnerName != nil {
		return *r.OwnerName
	}
	return CommunityLabel
}
