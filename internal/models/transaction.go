package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeDeposit    = "DEPOSIT"
	TypeWithdrawal = "WITHDRAWAL"
)

// Transaction statuses. New transactions always start as PENDING;
// updates may set COMPLETED or FAILED from any current status.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	TransactionID int64           `json:"transaction_id" db:"transaction_id"` // Primary key, assigned by the database
	Amount        decimal.Decimal `json:"amount" db:"amount"`                 // Monetary amount, always > 0, two fractional digits
	Type          string          `json:"transaction_type" db:"transaction_type"`
	Status        string          `json:"status" db:"status"`
	UserID        int64           `json:"user" db:"user_id"`        // Owning user
	Timestamp     time.Time       `json:"timestamp" db:"timestamp"` // Creation time, set by the database
}
