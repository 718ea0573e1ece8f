// Package queue defines message payloads exchanged over the message broker.
package queue

// ScreeningPublishedEvent is emitted when a screening's publication flag
// turns true and the screening becomes visible in the public schedule.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type ScreeningPublishedEvent struct {
	ScreeningID   uint64 `json:"screening_id"`
	DocumentaryID uint64 `json:"documentary_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Room          string `json:"room"`
	PublishedAt   string `json:"published_at"`
}
