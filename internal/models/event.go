package models

import "time"

// Event types published when a transaction is created or its status changes.
const (
	EventTransactionCreated       = "transaction.created"
	EventTransactionStatusUpdated = "transaction.status_updated"
)

// TransactionEvent is the message published to the events topic
// after a successful transaction mutation.
type TransactionEvent struct {
	EventID     string        `json:"event_id"`   // Unique event identifier
	EventType   string        `json:"event_type"` // One of the Event* constants
	OccurredAt  time.Time     `json:"occurred_at"`
	Transaction TransactionDB `json:"transaction"`
}
