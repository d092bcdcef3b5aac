package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionWriteRepository handles transaction inserts and status updates.
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Save inserts a new transaction. The status is always PENDING and the
// id and timestamp are assigned by the database.
func (r *TransactionWriteRepository) Save(ctx context.Context, userID int64, amount decimal.Decimal, transactionType string) (*models.TransactionDB, error) {
	query := `
		INSERT INTO transactions (amount, transaction_type, status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING transaction_id, amount, transaction_type, status, user_id, timestamp
	`
	args := []any{amount, transactionType, models.StatusPending, userID}

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", txn,
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// UpdateStatus overwrites the status of an existing transaction
// unconditionally and returns the updated row, or nil if the id is unknown.
// There is no guard on the current status: overwriting COMPLETED or FAILED
// is permitted, matching the contract of the original service.
func (r *TransactionWriteRepository) UpdateStatus(ctx context.Context, transactionID int64, status string) (*models.TransactionDB, error) {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE transaction_id = $1
		RETURNING transaction_id, amount, transaction_type, status, user_id, timestamp
	`
	args := []any{transactionID, status}

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", txn,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// TransactionReadRepository handles transaction lookups.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetByID returns the transaction with the given id, or nil if absent.
func (r *TransactionReadRepository) GetByID(ctx context.Context, transactionID int64) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, amount, transaction_type, status, user_id, timestamp
		FROM transactions
		WHERE transaction_id = $1
	`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, transactionID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID},
		"result", txn,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListByUserID returns all transactions of a user, newest first.
// The result set is unbounded; the service does not paginate.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, amount, transaction_type, status, user_id, timestamp
		FROM transactions
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(txns),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return txns, nil
}
