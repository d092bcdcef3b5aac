package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-transaction-service/internal/logger"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/sbilibin2017/gw-transaction-service/internal/services"
	"github.com/sbilibin2017/gw-transaction-service/internal/validation"
)

// TransactionStatusUpdater defines the interface that the service must implement.
type TransactionStatusUpdater interface {
	UpdateStatus(ctx context.Context, transactionID int64, status string) (*models.TransactionDB, error)
}

// UpdateTransactionStatusRequest represents the JSON body for a status update
// swagger:model UpdateTransactionStatusRequest
type UpdateTransactionStatusRequest struct {
	// Target status
	// required: true
	// default: COMPLETED
	Status validation.Scalar `json:"status"`
}

// UpdateTransactionStatusResponse represents the updated transaction.
// The owning user is omitted from this response.
// swagger:model UpdateTransactionStatusResponse
type UpdateTransactionStatusResponse struct {
	TransactionID   int64     `json:"transaction_id"`
	Amount          string    `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	Timestamp       time.Time `json:"timestamp"`
}

// UpdateTransactionStatusErrorResponse represents an error response for updates
// swagger:model UpdateTransactionStatusErrorResponse
type UpdateTransactionStatusErrorResponse struct {
	// Error message
	// default: Transaction not found
	Error string `json:"error"`
}

// NewUpdateTransactionStatusHandler returns an HTTP handler that overwrites a transaction's status.
// @Summary Update transaction status
// @Description Sets the status of an existing transaction to COMPLETED or FAILED. The current status is not checked, so terminal statuses may be overwritten.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction_id path int true "Transaction identifier"
// @Param request body handlers.UpdateTransactionStatusRequest true "Target status"
// @Success 200 {object} handlers.UpdateTransactionStatusResponse "Updated transaction"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failures"
// @Failure 404 {object} handlers.UpdateTransactionStatusErrorResponse "Transaction not found"
// @Failure 500 {object} handlers.UpdateTransactionStatusErrorResponse "Internal server error"
// @Router /transactions/{transaction_id} [put]
func NewUpdateTransactionStatusHandler(svc TransactionStatusUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		rawID := chi.URLParam(r, "transaction_id")

		var req UpdateTransactionStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode status update request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionStatusErrorResponse{Error: "Invalid request body"})
			return
		}

		errs := validation.Validate([]validation.Rule{
			{
				Param: "transaction_id",
				Msg:   "Transaction id must be a positive integer",
				Check: func() bool { return validation.PositiveInt(rawID) },
			},
			{
				Param: "status",
				Msg:   "Status must be COMPLETED or FAILED",
				Check: func() bool { return validation.OneOf(req.Status.String(), models.StatusCompleted, models.StatusFailed) },
			},
		})
		if len(errs) > 0 {
			logger.Log.Warnw("status update request rejected", "transaction_id", rawID, "status", req.Status)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: errs})
			return
		}

		transactionID, _ := strconv.ParseInt(rawID, 10, 64)

		txn, err := svc.UpdateStatus(r.Context(), transactionID, req.Status.String())
		if err != nil {
			switch err {
			case services.ErrTransactionNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateTransactionStatusErrorResponse{Error: "Transaction not found"})
			default:
				logger.Log.Errorw("failed to update transaction status", "transaction_id", transactionID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateTransactionStatusErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateTransactionStatusResponse{
			TransactionID:   txn.TransactionID,
			Amount:          txn.Amount.StringFixed(2),
			TransactionType: txn.Type,
			Status:          txn.Status,
			Timestamp:       txn.Timestamp,
		})
	}
}
