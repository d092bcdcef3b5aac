package facades

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines the Kafka writer methods used by the facade.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransactionEventsFacade publishes transaction mutation events to Kafka.
type TransactionEventsFacade struct {
	writer KafkaWriter
}

// NewTransactionEventsFacade creates a facade over a Kafka writer.
func NewTransactionEventsFacade(writer KafkaWriter) *TransactionEventsFacade {
	return &TransactionEventsFacade{writer: writer}
}

// Publish sends a transaction event keyed by event id. The caller treats
// publishing as best-effort and only logs failures.
func (f *TransactionEventsFacade) Publish(ctx context.Context, eventType string, txn *models.TransactionDB) error {
	event := models.TransactionEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		OccurredAt:  time.Now(),
		Transaction: *txn,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal transaction event",
			"event_type", eventType, "transaction_id", txn.TransactionID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish transaction event",
			"event_type", eventType, "transaction_id", txn.TransactionID, "error", err)
		return err
	}

	logger.Log.Infow("transaction event published",
		"event_type", eventType, "transaction_id", txn.TransactionID)
	return nil
}
