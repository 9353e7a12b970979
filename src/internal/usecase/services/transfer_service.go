package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/telemetry"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TransactionPublisher interface {
	PublishTransactionCompleted(ctx context.Context, txn domain.Transaction) error
}

var _ service_interfaces.TransferService = (*TransferService)(nil)

// TransferService moves funds between two accounts inside one ledger unit of
// work. It holds no state between calls and is safe for concurrent use.
type TransferService struct {
	ledger    repo_interfaces.LedgerStore
	publisher TransactionPublisher
}

func NewTransferService(ledger repo_interfaces.LedgerStore, publisher TransactionPublisher) *TransferService {
	return &TransferService{
		ledger:    ledger,
		publisher: publisher,
	}
}

// Transfer debits fromAccountID and credits toAccountID by amount and records
// a COMPLETED transaction, or changes nothing and returns a *domain.TransferError.
//
// Holds are taken in ascending account id order so two transfers over the
// same pair of accounts never wait on each other in a cycle.
func (s *TransferService) Transfer(ctx context.Context, fromAccountID, toAccountID int64, amount decimal.Decimal) (txn domain.Transaction, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "transfer.execute", trace.WithAttributes(
		attribute.Int64("transfer.from_account_id", fromAccountID),
		attribute.Int64("transfer.to_account_id", toAccountID),
		attribute.String("transfer.amount", amount.String()),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		telemetry.TransferDuration.Observe(time.Since(start).Seconds())
		outcome := telemetry.TransferOutcomeCompleted
		if err != nil {
			outcome = strings.ToLower(string(domain.KindOf(err)))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		telemetry.TransfersTotal.WithLabelValues(outcome).Inc()
	}()

	if !amount.IsPositive() || !domain.FitsMoneyScale(amount) {
		return domain.Transaction{}, domain.NewInvalidAmountError(amount.String())
	}

	err = s.ledger.RunAtomically(ctx, func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		source, destination, err := holdAccounts(ctx, unit, fromAccountID, toAccountID)
		if err != nil {
			return err
		}

		if source.Currency != destination.Currency {
			return domain.NewCurrencyMismatchError(source.Currency, destination.Currency)
		}

		if err := applyDelta(ctx, unit, fromAccountID, amount.Neg()); err != nil {
			return err
		}
		if err := applyDelta(ctx, unit, toAccountID, amount); err != nil {
			return err
		}

		recorded, err := unit.AppendTransaction(ctx, domain.Transaction{
			FromAccountID: fromAccountID,
			ToAccountID:   toAccountID,
			Amount:        amount,
			Currency:      source.Currency,
			Status:        domain.TransactionStatusCompleted,
		})
		if err != nil {
			return domain.NewStoreFailureError("append transaction", err)
		}

		txn = recorded
		return nil
	})
	if err != nil {
		var transferErr *domain.TransferError
		if !errors.As(err, &transferErr) {
			err = domain.NewStoreFailureError("run transfer unit of work", err)
		}
		return domain.Transaction{}, err
	}

	span.SetAttributes(attribute.Int64("transaction.id", txn.ID))
	logger.Info("transfer service transfer completed", logger.Fields{
		"transactionId": txn.ID,
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount.String(),
		"currency":      txn.Currency,
	})

	if s.publisher != nil {
		if pubErr := s.publisher.PublishTransactionCompleted(ctx, txn); pubErr != nil {
			logger.Error("transfer service publish transaction completed failed", pubErr, logger.Fields{
				"transactionId": txn.ID,
			})
		}
	}

	return txn, nil
}

// holdAccounts acquires both holds, lower id first. A missing source is
// reported as soon as it is seen; a missing lower-id destination is only
// reported after the source hold confirms the source exists.
func holdAccounts(ctx context.Context, unit repo_interfaces.LedgerUnit, fromAccountID, toAccountID int64) (domain.Account, domain.Account, error) {
	lowID, highID := fromAccountID, toAccountID
	if highID < lowID {
		lowID, highID = highID, lowID
	}

	held := make(map[int64]domain.Account, 2)
	for _, id := range []int64{lowID, highID} {
		if _, ok := held[id]; ok {
			continue
		}

		account, err := unit.GetForUpdate(ctx, id)
		if err != nil {
			if !errors.Is(err, commons.ErrRecordNotFound) {
				return domain.Account{}, domain.Account{}, domain.NewStoreFailureError(fmt.Sprintf("hold account %d", id), err)
			}
			if id == fromAccountID {
				return domain.Account{}, domain.Account{}, domain.NewAccountNotFoundError(domain.AccountSideSource, fromAccountID)
			}
			continue
		}
		held[id] = account
	}

	source, ok := held[fromAccountID]
	if !ok {
		return domain.Account{}, domain.Account{}, domain.NewAccountNotFoundError(domain.AccountSideSource, fromAccountID)
	}
	destination, ok := held[toAccountID]
	if !ok {
		return domain.Account{}, domain.Account{}, domain.NewAccountNotFoundError(domain.AccountSideDestination, toAccountID)
	}

	return source, destination, nil
}

func applyDelta(ctx context.Context, unit repo_interfaces.LedgerUnit, accountID int64, delta decimal.Decimal) error {
	rows, err := unit.ApplyBalanceDelta(ctx, accountID, delta)
	if err != nil {
		return domain.NewStoreFailureError(fmt.Sprintf("apply balance delta to account %d", accountID), err)
	}
	if rows != 1 {
		return domain.NewStoreFailureError(fmt.Sprintf("apply balance delta to account %d affected %d rows", accountID, rows), nil)
	}
	return nil
}

func (s *TransferService) TransferFunds(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transfer service transfer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), fmt.Errorf("%w: %s", commons.ErrValidation, err)
	}

	txn, err := s.Transfer(ctx, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		var transferErr *domain.TransferError
		if errors.As(err, &transferErr) && transferErr.IsRejection() {
			logger.Warn("transfer service transfer rejected", logger.Fields{
				"kind":          transferErr.Kind,
				"fromAccountId": req.FromAccountID,
				"toAccountId":   req.ToAccountID,
				"reason":        transferErr.Error(),
			})
			return commons.ErrorResponse[models.TransactionResponse](transferRejectionMessage(transferErr), transferErr.Error()), err
		}

		logger.Error("transfer service transfer failed", err, logger.Fields{
			"fromAccountId": req.FromAccountID,
			"toAccountId":   req.ToAccountID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to process transfer", "Unable to process transfer right now"), err
	}

	return commons.SuccessResponse("transfer completed", models.NewTransactionResponse(txn)), nil
}

func transferRejectionMessage(err *domain.TransferError) string {
	switch err.Kind {
	case domain.ErrorKindInvalidAmount:
		return "Invalid amount"
	case domain.ErrorKindCurrencyMismatch:
		return "Currency mismatch"
	case domain.ErrorKindAccountNotFound:
		if err.Side == domain.AccountSideDestination {
			return "Destination account not found"
		}
		return "Source account not found"
	default:
		return "failed to process transfer"
	}
}
