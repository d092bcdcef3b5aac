package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/sbilibin2017/gw-transaction-service/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	amount := decimal.RequireFromString("50.00")
	saved := &models.TransactionDB{
		TransactionID: 1,
		Amount:        amount,
		Type:          models.TypeDeposit,
		Status:        models.StatusPending,
		UserID:        1,
	}

	t.Run("creates pending transaction and publishes event", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)
		writer := services.NewMockTransactionWriter(ctrl)
		events := services.NewMockEventPublisher(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.UserDB{UserID: 1}, nil)
		writer.EXPECT().Save(gomock.Any(), int64(1), amount, models.TypeDeposit).Return(saved, nil)
		events.EXPECT().Publish(gomock.Any(), models.EventTransactionCreated, saved).Return(nil)

		svc := services.NewTransactionService(users, nil, writer, nil, events)

		txn, err := svc.Create(context.Background(), 1, amount, models.TypeDeposit)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusPending, txn.Status)
	})

	t.Run("missing user stops before persistence", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)
		writer := services.NewMockTransactionWriter(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, nil)

		svc := services.NewTransactionService(users, nil, writer, nil, nil)

		txn, err := svc.Create(context.Background(), 42, amount, models.TypeDeposit)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
		assert.Nil(t, txn)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)
		writer := services.NewMockTransactionWriter(ctrl)
		events := services.NewMockEventPublisher(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.UserDB{UserID: 1}, nil)
		writer.EXPECT().Save(gomock.Any(), int64(1), amount, models.TypeDeposit).Return(saved, nil)
		events.EXPECT().Publish(gomock.Any(), models.EventTransactionCreated, saved).Return(errors.New("broker down"))

		svc := services.NewTransactionService(users, nil, writer, nil, events)

		txn, err := svc.Create(context.Background(), 1, amount, models.TypeDeposit)
		assert.NoError(t, err)
		assert.NotNil(t, txn)
	})

	t.Run("user lookup error is surfaced", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(nil, errors.New("db error"))

		svc := services.NewTransactionService(users, nil, nil, nil, nil)

		_, err := svc.Create(context.Background(), 1, amount, models.TypeDeposit)
		assert.EqualError(t, err, "db error")
	})
}

func TestTransactionService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("existing user with no transactions returns empty list", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)
		reader := services.NewMockTransactionReader(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.UserDB{UserID: 1}, nil)
		reader.EXPECT().ListByUserID(gomock.Any(), int64(1)).Return(nil, nil)

		svc := services.NewTransactionService(users, reader, nil, nil, nil)

		txns, err := svc.ListByUser(context.Background(), 1)
		assert.NoError(t, err)
		assert.Empty(t, txns)
	})

	t.Run("missing user yields ErrUserNotFound", func(t *testing.T) {
		users := services.NewMockUserReader(ctrl)

		users.EXPECT().GetByID(gomock.Any(), int64(42)).Return(nil, nil)

		svc := services.NewTransactionService(users, nil, nil, nil, nil)

		_, err := svc.ListByUser(context.Background(), 42)
		assert.ErrorIs(t, err, services.ErrUserNotFound)
	})
}

func TestTransactionService_GetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	stored := &models.TransactionDB{
		TransactionID: 7,
		Amount:        decimal.RequireFromString("50.00"),
		Type:          models.TypeDeposit,
		Status:        models.StatusPending,
		UserID:        1,
	}

	t.Run("cache hit skips the database", func(t *testing.T) {
		reader := services.NewMockTransactionReader(ctrl)
		cache := services.NewMockTransactionCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), int64(7)).Return(stored, nil)

		svc := services.NewTransactionService(nil, reader, nil, cache, nil)

		txn, err := svc.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, stored, txn)
	})

	t.Run("cache miss reads database and fills cache", func(t *testing.T) {
		reader := services.NewMockTransactionReader(ctrl)
		cache := services.NewMockTransactionCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, nil)
		reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(stored, nil)
		cache.EXPECT().Set(gomock.Any(), stored).Return(nil)

		svc := services.NewTransactionService(nil, reader, nil, cache, nil)

		txn, err := svc.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, stored, txn)
	})

	t.Run("cache error falls back to the database", func(t *testing.T) {
		reader := services.NewMockTransactionReader(ctrl)
		cache := services.NewMockTransactionCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, errors.New("redis down"))
		reader.EXPECT().GetByID(gomock.Any(), int64(7)).Return(stored, nil)
		cache.EXPECT().Set(gomock.Any(), stored).Return(errors.New("redis down"))

		svc := services.NewTransactionService(nil, reader, nil, cache, nil)

		txn, err := svc.GetByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, stored, txn)
	})

	t.Run("unknown id yields ErrTransactionNotFound", func(t *testing.T) {
		reader := services.NewMockTransactionReader(ctrl)

		reader.EXPECT().GetByID(gomock.Any(), int64(999999)).Return(nil, nil)

		svc := services.NewTransactionService(nil, reader, nil, nil, nil)

		_, err := svc.GetByID(context.Background(), 999999)
		assert.ErrorIs(t, err, services.ErrTransactionNotFound)
	})
}

func TestTransactionService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updated := &models.TransactionDB{
		TransactionID: 7,
		Amount:        decimal.RequireFromString("50.00"),
		Type:          models.TypeDeposit,
		Status:        models.StatusCompleted,
		UserID:        1,
	}

	t.Run("updates, invalidates cache and publishes event", func(t *testing.T) {
		writer := services.NewMockTransactionWriter(ctrl)
		cache := services.NewMockTransactionCache(ctrl)
		events := services.NewMockEventPublisher(ctrl)

		writer.EXPECT().UpdateStatus(gomock.Any(), int64(7), models.StatusCompleted).Return(updated, nil)
		cache.EXPECT().Invalidate(gomock.Any(), int64(7)).Return(nil)
		events.EXPECT().Publish(gomock.Any(), models.EventTransactionStatusUpdated, updated).Return(nil)

		svc := services.NewTransactionService(nil, nil, writer, cache, events)

		txn, err := svc.UpdateStatus(context.Background(), 7, models.StatusCompleted)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusCompleted, txn.Status)
	})

	t.Run("overwriting a terminal status is permitted", func(t *testing.T) {
		writer := services.NewMockTransactionWriter(ctrl)

		failed := *updated
		failed.Status = models.StatusFailed
		writer.EXPECT().UpdateStatus(gomock.Any(), int64(7), models.StatusFailed).Return(&failed, nil)

		svc := services.NewTransactionService(nil, nil, writer, nil, nil)

		txn, err := svc.UpdateStatus(context.Background(), 7, models.StatusFailed)
		assert.NoError(t, err)
		assert.Equal(t, models.StatusFailed, txn.Status)
	})

	t.Run("unknown id yields ErrTransactionNotFound", func(t *testing.T) {
		writer := services.NewMockTransactionWriter(ctrl)

		writer.EXPECT().UpdateStatus(gomock.Any(), int64(999999), models.StatusFailed).Return(nil, nil)

		svc := services.NewTransactionService(nil, nil, writer, nil, nil)

		_, err := svc.UpdateStatus(context.Background(), 999999, models.StatusFailed)
		assert.ErrorIs(t, err, services.ErrTransactionNotFound)
	})
}
