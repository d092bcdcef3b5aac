package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/sbilibin2017/gw-transaction-service/internal/services"
	"github.com/sbilibin2017/gw-transaction-service/internal/validation"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	ListByUser(ctx context.Context, userID int64) ([]models.TransactionDB, error)
}

// TransactionListItem is the projection returned for list and get requests.
// The owning user is implied by the query and omitted.
// swagger:model TransactionListItem
type TransactionListItem struct {
	TransactionID   int64     `json:"transaction_id"`
	Amount          string    `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// ListTransactionsResponse wraps the transactions of a user, newest first
// swagger:model ListTransactionsResponse
type ListTransactionsResponse struct {
	Transactions []TransactionListItem `json:"transactions"`
}

// ListTransactionsErrorResponse represents an error response for listing
// swagger:model ListTransactionsErrorResponse
type ListTransactionsErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

func newTransactionListItem(txn models.TransactionDB) TransactionListItem {
	return TransactionListItem{
		TransactionID:   txn.TransactionID,
		Amount:          txn.Amount.StringFixed(2),
		TransactionType: txn.Type,
		Status:          txn.Status,
		Timestamp:       txn.Timestamp,
	}
}

// NewListTransactionsHandler returns an HTTP handler that lists a user's transactions.
// @Summary List transactions of a user
// @Description Returns every transaction of the user referenced by the user_id query parameter, ordered by timestamp descending. A user without transactions yields an empty list.
// @Tags transactions
// @Produce json
// @Param user_id query int true "User identifier"
// @Success 200 {object} handlers.ListTransactionsResponse "Transactions, newest first"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failures"
// @Failure 404 {object} handlers.ListTransactionsErrorResponse "User not found"
// @Failure 500 {object} handlers.ListTransactionsErrorResponse "Internal server error"
// @Router /transactions [get]
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		rawUserID := r.URL.Query().Get("user_id")

		errs := validation.Validate([]validation.Rule{
			{
				Param: "user_id",
				Msg:   "User id must be a positive integer",
				Check: func() bool { return validation.PositiveInt(rawUserID) },
			},
		})
		if len(errs) > 0 {
			logger.Log.Warnw("list transactions request rejected", "user_id", rawUserID)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: errs})
			return
		}

		userID, _ := strconv.ParseInt(rawUserID, 10, 64)

		txns, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			switch err {
			case services.ErrUserNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "User not found"})
			default:
				logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Internal server error"})
			}
			return
		}

		items := make([]TransactionListItem, 0, len(txns))
		for _, txn := range txns {
			items = append(items, newTransactionListItem(txn))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListTransactionsResponse{Transactions: items})
	}
}
