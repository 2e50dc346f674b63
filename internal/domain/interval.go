package domain

import "time"

// IntervalKind represents the kind of a calendar interval
type IntervalKind string

const (
	// KindAvailability interval during which the owner allows guests in the room
	KindAvailability IntervalKind = "availability"
	// KindOccupancy interval during which the room is actually booked for a guest
	KindOccupancy IntervalKind = "occupancy"
)

// GuestType trust tier of a guest
type GuestType int

const (
	GuestStranger GuestType = 1
	GuestKnown    GuestType = 2
	GuestMember   GuestType = 3
)

// Valid returns true if the guest type is one of the known tiers
func (g GuestType) Valid() bool {
	return g >= GuestStranger && g <= GuestMember
}

func (g GuestType) String() string {
	switch g {
	case GuestStranger:
		return "stranger"
	case GuestKnown:
		return "known"
	case GuestMember:
		return "member"
	default:
		return "unknown"
	}
}

// Interval is a time span on a room's calendar, either availability or occupancy
type Interval struct {
	ID     int64
	RoomID int64
	Kind   IntervalKind

	StartAt time.Time
	EndAt   time.Time

	Title string

	// Occupancy metadata, nil for availability intervals
	GuestName *string
	GuestType *GuestType
	CreatorID *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmpty returns true if the interval has zero or negative length.
// Empty intervals are invalid and get deleted by cleanup logic.
func (i *Interval) IsEmpty() bool {
	return !i.StartAt.Before(i.EndAt)
}

// Overlaps reports strict overlap with [start, end):
// boundary-touching intervals do not overlap
func (i *Interval) Overlaps(start, end time.Time) bool {
	return i.StartAt.Before(end) && i.EndAt.After(start)
}

// Contains reports that [start, end) sits fully inside the interval.
// Availability requires containment, not mere overlap: a stay must fit
// within one continuous declared-available stretch.
func (i *Interval) Contains(start, end time.Time) bool {
	return !i.StartAt.After(start) && !i.EndAt.Before(end)
}

// IsOccupancy returns true for occupancy intervals
func (i *Interval) IsOccupancy() bool {
	return i.Kind == KindOccupancy
}

// IsAvailability returns true for availability intervals
func (i *Interval) IsAvailability() bool {
	return i.Kind == KindAvailability
}
