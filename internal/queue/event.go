// Package queue defines message payloads exchanged over the message broker.
package queue

// ShelfUpdatedEvent is published when a user moves a book between
// shelves or clears it. It carries enough information for downstream
// consumers (activity feeds, recommendations) to act without querying
// the primary database. Shelf is empty when the assignment was cleared.
type ShelfUpdatedEvent struct {
	UserID     string `json:"user_id"`
	BookID     string `json:"book_id"`
	Title      string `json:"title"`
	Shelf      string `json:"shelf"`
	OccurredAt string `json:"occurred_at"`
}
