package service_interfaces

import (
	"context"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, query models.ListAccountsQuery) (commons.Response[[]models.AccountResponse], error)
	UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error)
	DepositFunds(ctx context.Context, id int64, req models.DepositRequest) (commons.Response[models.AccountResponse], error)
}
