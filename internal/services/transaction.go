package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/shopspring/decimal"
)

// Error variables
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	GetByID(ctx context.Context, transactionID int64) (*models.TransactionDB, error)
	ListByUserID(ctx context.Context, userID int64) ([]models.TransactionDB, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	Save(ctx context.Context, userID int64, amount decimal.Decimal, transactionType string) (*models.TransactionDB, error)
	UpdateStatus(ctx context.Context, transactionID int64, status string) (*models.TransactionDB, error)
}

// TransactionCache caches single-record lookups.
type TransactionCache interface {
	Get(ctx context.Context, transactionID int64) (*models.TransactionDB, error)
	Set(ctx context.Context, txn *models.TransactionDB) error
	Invalidate(ctx context.Context, transactionID int64) error
}

// EventPublisher publishes transaction mutation events.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, txn *models.TransactionDB) error
}

// TransactionService orchestrates validation-passed requests: existence
// checks, persistence, caching and event publishing.
type TransactionService struct {
	users  UserReader
	reader TransactionReader
	writer TransactionWriter
	cache  TransactionCache
	events EventPublisher
}

// NewTransactionService creates a new TransactionService. Cache and events
// may be nil; both are best-effort collaborators.
func NewTransactionService(
	users UserReader,
	reader TransactionReader,
	writer TransactionWriter,
	cache TransactionCache,
	events EventPublisher,
) *TransactionService {
	return &TransactionService{
		users:  users,
		reader: reader,
		writer: writer,
		cache:  cache,
		events: events,
	}
}

// publish sends a mutation event. Failures are logged and never surfaced.
func (s *TransactionService) publish(ctx context.Context, eventType string, txn *models.TransactionDB) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, txn); err != nil {
		logger.Log.Errorw("failed to publish event", "event_type", eventType, "transaction_id", txn.TransactionID, "error", err)
	}
}

// Create records a new PENDING transaction for an existing user.
func (s *TransactionService) Create(ctx context.Context, userID int64, amount decimal.Decimal, transactionType string) (*models.TransactionDB, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "user_id", userID)
		return nil, ErrUserNotFound
	}

	txn, err := s.writer.Save(ctx, userID, amount, transactionType)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "user_id", userID, "amount", amount, "type", transactionType, "error", err)
		return nil, err
	}

	s.publish(ctx, models.EventTransactionCreated, txn)

	return txn, nil
}

// ListByUser returns all transactions of an existing user, newest first.
func (s *TransactionService) ListByUser(ctx context.Context, userID int64) ([]models.TransactionDB, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "user_id", userID, "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("user does not exist", "user_id", userID)
		return nil, ErrUserNotFound
	}

	txns, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
		return nil, err
	}

	return txns, nil
}

// GetByID returns a single transaction, reading through the cache.
// Cache errors fall back to the database.
func (s *TransactionService) GetByID(ctx context.Context, transactionID int64) (*models.TransactionDB, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, transactionID)
		if err != nil {
			logger.Log.Warnw("transaction cache read failed", "transaction_id", transactionID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	txn, err := s.reader.GetByID(ctx, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to get transaction", "transaction_id", transactionID, "error", err)
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, txn); err != nil {
			logger.Log.Warnw("transaction cache write failed", "transaction_id", transactionID, "error", err)
		}
	}

	return txn, nil
}

// UpdateStatus overwrites the status of an existing transaction. There is
// no guard on the current status: COMPLETED and FAILED may be overwritten,
// matching the contract of the original service.
func (s *TransactionService) UpdateStatus(ctx context.Context, transactionID int64, status string) (*models.TransactionDB, error) {
	txn, err := s.writer.UpdateStatus(ctx, transactionID, status)
	if err != nil {
		logger.Log.Errorw("failed to update transaction status", "transaction_id", transactionID, "status", status, "error", err)
		return nil, err
	}
	if txn == nil {
		logger.Log.Warnw("transaction does not exist", "transaction_id", transactionID)
		return nil, ErrTransactionNotFound
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, transactionID); err != nil {
			logger.Log.Warnw("transaction cache invalidation failed", "transaction_id", transactionID, "error", err)
		}
	}

	s.publish(ctx, models.EventTransactionStatusUpdated, txn)

	return txn, nil
}
