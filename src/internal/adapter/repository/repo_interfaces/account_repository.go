package repo_interfaces

import (
	"context"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
	UpdateOwnerName(ctx context.Context, id int64, ownerName string) (domain.Account, error)
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
}
