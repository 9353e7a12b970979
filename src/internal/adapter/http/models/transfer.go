package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest carries the raw amount through to the transfer engine,
// which owns the positive-amount rule.
type TransferRequest struct {
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId must be a positive integer")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId must be a positive integer")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type TransactionResponse struct {
	ID            int64  `json:"id"`
	FromAccountID int64  `json:"fromAccountId"`
	ToAccountID   int64  `json:"toAccountId"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	CreatedAt     string `json:"createdAt"`
}

func NewTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		FromAccountID: txn.FromAccountID,
		ToAccountID:   txn.ToAccountID,
		Amount:        domain.FormatMoney(txn.Amount),
		Currency:      txn.Currency,
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt.Format(time.RFC3339),
	}
}
