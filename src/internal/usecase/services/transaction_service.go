package services

import (
	"context"
	"errors"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.TransactionService = (*TransactionService)(nil)

type TransactionService struct {
	txnRepo repo_interfaces.TransactionRepository
}

func NewTransactionService(txnRepo repo_interfaces.TransactionRepository) *TransactionService {
	return &TransactionService{txnRepo: txnRepo}
}

func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (commons.Response[models.TransactionResponse], error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, commons.ErrRecordNotFound) {
			return commons.ErrorResponse[models.TransactionResponse]("Transaction not found"), err
		}
		logger.Error("transaction service get transaction failed", err, logger.Fields{"transactionId": id})
		return commons.ErrorResponse[models.TransactionResponse]("failed to get transaction", "Unable to fetch transaction right now"), err
	}

	return commons.SuccessResponse("transaction fetched successfully", models.NewTransactionResponse(txn)), nil
}

// ListTransactions returns every transaction, or those touching accountID on
// either side when it is set.
func (s *TransactionService) ListTransactions(ctx context.Context, accountID *int64) (commons.Response[[]models.TransactionResponse], error) {
	txns, err := s.txnRepo.List(ctx, accountID)
	if err != nil {
		logger.Error("transaction service list transactions failed", err, nil)
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to fetch transactions right now"), err
	}

	response := make([]models.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		response = append(response, models.NewTransactionResponse(txn))
	}

	return commons.SuccessResponse("transactions fetched successfully", response), nil
}
