package repo_interfaces

import (
	"context"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
)

type TransactionRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Transaction, error)
	// List returns transactions in id order. A nil accountID lists everything,
	// otherwise only transactions where the account is sender or receiver.
	List(ctx context.Context, accountID *int64) ([]domain.Transaction, error)
}
