package events

import (
	"context"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

const TransactionCompletedSubject = "ledger.transactions.completed"

type TransactionCompleted struct {
	TransactionID int64           `json:"transactionId"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func NewTransactionCompleted(txn domain.Transaction) TransactionCompleted {
	return TransactionCompleted{
		TransactionID: txn.ID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        txn.Amount,
		Currency:      txn.Currency,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

type NoopPublisher struct{}

func (NoopPublisher) PublishTransactionCompleted(context.Context, domain.Transaction) error {
	return nil
}
