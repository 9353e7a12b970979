package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewAccountService(accountRepo repo_interfaces.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Warn("account service create account validation failed", logger.Fields{"reason": err.Error()})
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), validationError(err)
	}

	created, err := s.accountRepo.Create(ctx, domain.Account{
		OwnerName: strings.TrimSpace(req.OwnerName),
		Balance:   req.InitialBalance,
		Currency:  strings.ToUpper(strings.TrimSpace(req.Currency)),
	})
	if err != nil {
		logger.Error("account service create account repository failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId": created.ID,
		"currency":  created.Currency,
	})

	return commons.SuccessResponse("account created successfully", models.NewAccountResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (commons.Response[models.AccountResponse], error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return accountLookupFailure("get account", id, err)
	}

	return commons.SuccessResponse("account fetched successfully", models.NewAccountResponse(account)), nil
}

func (s *AccountService) ListAccounts(ctx context.Context, query models.ListAccountsQuery) (commons.Response[[]models.AccountResponse], error) {
	filter, err := query.Filter()
	if err != nil {
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", err.Error()), validationError(err)
	}

	accounts, err := s.accountRepo.List(ctx, filter)
	if err != nil {
		logger.Error("account service list accounts failed", err, nil)
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to fetch accounts right now"), err
	}

	response := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, models.NewAccountResponse(account))
	}

	return commons.SuccessResponse("accounts fetched successfully", response), nil
}

// UpdateAccount changes the owner name only. Balances move through transfers
// and deposits.
func (s *AccountService) UpdateAccount(ctx context.Context, id int64, req models.UpdateAccountRequest) (commons.Response[models.AccountResponse], error) {
	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), validationError(err)
	}

	account, err := s.accountRepo.UpdateOwnerName(ctx, id, strings.TrimSpace(req.OwnerName))
	if err != nil {
		return accountLookupFailure("update account", id, err)
	}

	logger.Info("account service update account success", logger.Fields{"accountId": id})
	return commons.SuccessResponse("account updated successfully", models.NewAccountResponse(account)), nil
}

func (s *AccountService) DepositFunds(ctx context.Context, id int64, req models.DepositRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service deposit funds request", logger.Fields{
		"accountId": id,
		"payload":   logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), validationError(err)
	}

	account, err := s.accountRepo.Deposit(ctx, id, req.Amount)
	if err != nil {
		return accountLookupFailure("deposit funds", id, err)
	}

	logger.Info("account service deposit funds success", logger.Fields{
		"accountId": id,
		"amount":    req.Amount.String(),
		"balance":   account.Balance.String(),
	})
	return commons.SuccessResponse("funds deposited successfully", models.NewAccountResponse(account)), nil
}

func accountLookupFailure(operation string, id int64, err error) (commons.Response[models.AccountResponse], error) {
	if errors.Is(err, commons.ErrRecordNotFound) {
		logger.Info("account service "+operation+" not found", logger.Fields{"accountId": id})
		return commons.ErrorResponse[models.AccountResponse]("Account not found"), err
	}

	logger.Error("account service "+operation+" failed", err, logger.Fields{"accountId": id})
	return commons.ErrorResponse[models.AccountResponse]("failed to "+operation, "Unable to process account request right now"), err
}

func validationError(err error) error {
	return fmt.Errorf("%w: %s", commons.ErrValidation, err)
}
