// Package queue defines the messages exchanged over the broker and the
// publisher/consumer pair for the event.created queue.
package queue

// EventCreatedEvent is published after an admin successfully creates an
// event. It carries enough for downstream consumers to log or notify without
// querying the primary database.
type EventCreatedEvent struct {
	EventID   uint64 `json:"event_id"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Location  string `json:"location"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}
