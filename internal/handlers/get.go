package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/sbilibin2017/gw-transaction-service/internal/services"
	"github.com/sbilibin2017/gw-transaction-service/internal/validation"
)

// TransactionGetter defines the interface that the service must implement.
type TransactionGetter interface {
	GetByID(ctx context.Context, transactionID int64) (*models.TransactionDB, error)
}

// GetTransactionErrorResponse represents an error response for lookup
// swagger:model GetTransactionErrorResponse
type GetTransactionErrorResponse struct {
	// Error message
	// default: Transaction not found
	Error string `json:"error"`
}

// NewGetTransactionHandler returns an HTTP handler that fetches one transaction by id.
// @Summary Get a transaction
// @Description Returns the transaction identified by the path parameter, or 404 when it does not exist.
// @Tags transactions
// @Produce json
// @Param transaction_id path int true "Transaction identifier"
// @Success 200 {object} handlers.TransactionListItem "Transaction record"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failures"
// @Failure 404 {object} handlers.GetTransactionErrorResponse "Transaction not found"
// @Failure 500 {object} handlers.GetTransactionErrorResponse "Internal server error"
// @Router /transactions/{transaction_id} [get]
func NewGetTransactionHandler(svc TransactionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		rawID := chi.URLParam(r, "transaction_id")

		errs := validation.Validate([]validation.Rule{
			{
				Param: "transaction_id",
				Msg:   "Transaction id must be a positive integer",
				Check: func() bool { return validation.PositiveInt(rawID) },
			},
		})
		if len(errs) > 0 {
			logger.Log.Warnw("get transaction request rejected", "transaction_id", rawID)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: errs})
			return
		}

		transactionID, _ := strconv.ParseInt(rawID, 10, 64)

		txn, err := svc.GetByID(r.Context(), transactionID)
		if err != nil {
			switch err {
			case services.ErrTransactionNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetTransactionErrorResponse{Error: "Transaction not found"})
			default:
				logger.Log.Errorw("failed to get transaction", "transaction_id", transactionID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(newTransactionListItem(*txn))
	}
}
