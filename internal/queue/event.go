// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions carried by FilmEvent.
const (
	FilmCreated = "created"
	FilmDeleted = "deleted"
)

// FilmEvent is published when a film enters or leaves the catalog. It
// carries enough for downstream consumers to log or trigger analytics
// without querying the primary database; delete events only know the id.
type FilmEvent struct {
	Action      string `json:"action"`
	FilmID      uint64 `json:"film_id"`
	Title       string `json:"title,omitempty"`
	Genre       string `json:"genre,omitempty"`
	OwnerUserID uint64 `json:"owner_user_id,omitempty"`
	OccurredAt  string `json:"occurred_at"`
}
