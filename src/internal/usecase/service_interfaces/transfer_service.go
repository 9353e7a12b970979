package service_interfaces

import (
	"context"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
)

type TransferService interface {
	TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error)
}

type TransactionService interface {
	GetTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error)
	ListTransactions(ctx context.Context, accountID *int64) (commons.Response[[]models.TransactionResponse], error)
}
