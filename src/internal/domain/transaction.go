package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	// Reserved. The transfer engine is all-or-nothing and never records these.
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// Transaction is an append-only record of one completed transfer.
type Transaction struct {
	ID            int64
	FromAccountID int64
	ToAccountID   int64
	Amount        decimal.Decimal
	Currency      string
	Status        TransactionStatus
	CreatedAt     time.Time
}
