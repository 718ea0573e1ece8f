package model

import "time"

// Date and time-of-day formats used throughout the screening schedule.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Screening is a scheduled public showing of one documentary in a room at a
// given date and time.  The triple (Date, Time, Room) is unique across all
// screenings; the `screenings` table enforces it with a composite unique key
// and the repository pre-checks it to produce a conflict error.
//
// IsPublished gates visibility in the public schedule feed only; it has no
// effect on staff operations.
type Screening struct {
	ID            uint64    `json:"id"`
	DocumentaryID uint64    `json:"documentaryId"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	Room          string    `json:"room"`
	IsPublished   bool      `json:"isPublished"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StartsAt combines the date and time-of-day columns into a single instant.
// Screening times are interpreted in UTC, matching the DB connection's loc.
func (s *Screening) StartsAt() (time.Time, error) {
	return time.Parse(DateLayout+" "+TimeLayout, s.Date+" "+s.Time)
}

// IsPast reports whether the screening's start instant has already passed.
// Malformed stored values are treated as not past.
func (s *Screening) IsPast(now time.Time) bool {
	at, err := s.StartsAt()
	if err != nil {
		return false
	}
	return now.After(at)
}

// PublishedScreening is a published screening joined with its documentary
// (and that documentary's director and producer) as served by the public
// schedule feed.
type PublishedScreening struct {
	Screening
	Documentary Documentary `json:"documentary"`
}
