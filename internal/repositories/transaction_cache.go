package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
)

// TransactionCacheRepository caches single-transaction lookups in Redis.
// Cache failures are surfaced to the caller, which treats them as misses.
type TransactionCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached records
}

// NewTransactionCacheRepository creates a new repository instance with a TTL
// applied to every cached record.
func NewTransactionCacheRepository(client *redis.Client, expiration time.Duration) *TransactionCacheRepository {
	return &TransactionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func transactionKey(transactionID int64) string {
	return fmt.Sprintf("transaction:%d", transactionID)
}

// Get returns the cached transaction, or nil on a cache miss.
func (r *TransactionCacheRepository) Get(ctx context.Context, transactionID int64) (*models.TransactionDB, error) {
	key := transactionKey(transactionID)

	val, err := r.client.Get(ctx, key).Result()

	logger.Log.Infow(
		"key", key,
		"result", val,
		"error", err,
	)

	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var txn models.TransactionDB
	if err := json.Unmarshal([]byte(val), &txn); err != nil {
		return nil, err
	}

	return &txn, nil
}

// Set caches a transaction record with the configured expiration.
func (r *TransactionCacheRepository) Set(ctx context.Context, txn *models.TransactionDB) error {
	key := transactionKey(txn.TransactionID)

	data, err := json.Marshal(txn)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Invalidate drops the cached record after a status update.
func (r *TransactionCacheRepository) Invalidate(ctx context.Context, transactionID int64) error {
	key := transactionKey(transactionID)

	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "deleted",
		"error", err,
	)

	return err
}
