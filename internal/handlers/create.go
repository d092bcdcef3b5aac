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
	"github.com/shopspring/decimal"
)

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, userID int64, amount decimal.Decimal, transactionType string) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for recording a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Amount as a decimal with at most 2 fractional digits
	// required: true
	// default: "50.00"
	Amount validation.Scalar `json:"amount"`

	// Transaction type
	// required: true
	// default: DEPOSIT
	TransactionType string `json:"transaction_type"`

	// Identifier of the owning user
	// required: true
	// default: 1
	User validation.Scalar `json:"user"`
}

// CreateTransactionResponse represents the created transaction
// swagger:model CreateTransactionResponse
type CreateTransactionResponse struct {
	TransactionID   int64     `json:"transaction_id"`
	Amount          string    `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Status          string    `json:"status"`
	User            int64     `json:"user"`
	Timestamp       time.Time `json:"timestamp"`
}

// CreateTransactionErrorResponse represents an error response for creation
// swagger:model CreateTransactionErrorResponse
type CreateTransactionErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// ValidationErrorResponse represents the itemized 400 body returned when
// one or more field rules fail.
// swagger:model ValidationErrorResponse
type ValidationErrorResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

// NewCreateTransactionHandler returns an HTTP handler that records a new transaction.
// @Summary Record a transaction
// @Description Validates the request fields, checks that the referenced user exists, and inserts a new transaction with status PENDING.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction to record"
// @Success 201 {object} handlers.CreateTransactionResponse "Created transaction"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation failures"
// @Failure 404 {object} handlers.CreateTransactionErrorResponse "User not found"
// @Failure 500 {object} handlers.CreateTransactionErrorResponse "Internal server error"
// @Router /transactions [post]
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Warnw("failed to decode create transaction request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		errs := validation.Validate([]validation.Rule{
			{
				Param: "amount",
				Msg:   "Amount must be a decimal greater than 0 with at most 2 decimal places",
				Check: func() bool { return validation.PositiveDecimal(req.Amount.String()) },
			},
			{
				Param: "transaction_type",
				Msg:   "Transaction type must be DEPOSIT or WITHDRAWAL",
				Check: func() bool { return validation.OneOf(req.TransactionType, models.TypeDeposit, models.TypeWithdrawal) },
			},
			{
				Param: "user",
				Msg:   "User must be a positive integer",
				Check: func() bool { return validation.PositiveInt(req.User.String()) },
			},
		})
		if len(errs) > 0 {
			logger.Log.Warnw("create transaction request rejected", "errors", errs)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ValidationErrorResponse{Errors: errs})
			return
		}

		amount, _ := decimal.NewFromString(req.Amount.String())
		userID, _ := strconv.ParseInt(req.User.String(), 10, 64)

		txn, err := svc.Create(r.Context(), userID, amount, req.TransactionType)
		if err != nil {
			switch err {
			case services.ErrUserNotFound:
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "User not found"})
			default:
				logger.Log.Errorw("failed to create transaction", "user", userID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateTransactionResponse{
			TransactionID:   txn.TransactionID,
			Amount:          txn.Amount.StringFixed(2),
			TransactionType: txn.Type,
			Status:          txn.Status,
			User:            txn.UserID,
			Timestamp:       txn.Timestamp,
		})
	}
}
