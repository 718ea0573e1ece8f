package model

import "time"

// Score bounds for a rating.  Both endpoints are valid scores.
const (
	MinScore = 0
	MaxScore = 100
)

// Rating is one jury member's numeric evaluation of one screening.  At most
// one rating may exist per (ScreeningID, JuryMemberID) pair; the `ratings`
// table enforces this with a composite unique key.  Ratings are never
// updated once written, only deleted.
type Rating struct {
	ID           uint64    `json:"id"`
	ScreeningID  uint64    `json:"screeningId"`
	JuryMemberID uint64    `json:"juryMemberId"`
	Score        float64   `json:"score"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidScore reports whether v lies within the accepted [MinScore, MaxScore]
// range.
func ValidScore(v float64) bool {
	return v >= MinScore && v <= MaxScore
}
