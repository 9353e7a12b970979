package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/api-sage/money-transfer-service/src/internal/telemetry"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ repo_interfaces.LedgerStore = (*LedgerStore)(nil)

// Postgres error codes raised when a row lock cannot be taken.
const (
	pqCodeDeadlockDetected     = "40P01"
	pqCodeLockNotAvailable     = "55P03"
	pqCodeSerializationFailure = "40001"
)

// LedgerStore runs each unit of work in one database transaction. Holds are
// row locks taken with SELECT ... FOR UPDATE and released at commit or
// rollback.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func (s *LedgerStore) RunAtomically(ctx context.Context, fn func(ctx context.Context, unit repo_interfaces.LedgerUnit) error) (err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.run_atomically")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("ledger store begin tx failed", err, nil)
		recordSpanError(span, err)
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			recordSpanError(span, err)
			if code, ok := lockConflictCode(err); ok {
				logger.Warn("ledger store lock conflict", logger.Fields{"pqCode": code})
			}
		}
	}()

	if err = fn(ctx, &ledgerUnit{tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("ledger store commit tx failed", err, nil)
		return fmt.Errorf("commit ledger transaction: %w", err)
	}

	return nil
}

type ledgerUnit struct {
	tx *sql.Tx
}

func (u *ledgerUnit) GetForUpdate(ctx context.Context, accountID int64) (domain.Account, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.get_for_update",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	const query = `
SELECT id, owner_name, balance, currency, created_at, updated_at
FROM accounts
WHERE id = $1
FOR UPDATE`

	var account domain.Account
	if err := u.tx.QueryRowContext(ctx, query, accountID).Scan(
		&account.ID,
		&account.OwnerName,
		&account.Balance,
		&account.Currency,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("ledger store account not found", logger.Fields{
				"accountId": accountID,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("ledger store get for update failed", err, logger.Fields{
			"accountId": accountID,
		})
		recordSpanError(span, err)
		return domain.Account{}, fmt.Errorf("lock account %d: %w", accountID, err)
	}

	return account, nil
}

func (u *ledgerUnit) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal) (int64, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.apply_balance_delta",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1`

	rows, err := execRows(ctx, u.tx, query, accountID, delta)
	if err != nil {
		logger.Error("ledger store apply balance delta failed", err, logger.Fields{
			"accountId": accountID,
			"delta":     delta.String(),
		})
		recordSpanError(span, err)
		return 0, fmt.Errorf("apply balance delta to account %d: %w", accountID, err)
	}

	span.SetAttributes(attribute.Int64("rows.affected", rows))
	return rows, nil
}

func (u *ledgerUnit) AppendTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.append_transaction")
	defer span.End()

	const query = `
INSERT INTO transactions (
	from_account_id,
	to_account_id,
	amount,
	currency,
	status
) VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	if err := u.tx.QueryRowContext(
		ctx,
		query,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.Amount,
		txn.Currency,
		txn.Status,
	).Scan(&txn.ID, &txn.CreatedAt); err != nil {
		logger.Error("ledger store append transaction failed", err, logger.Fields{
			"fromAccountId": txn.FromAccountID,
			"toAccountId":   txn.ToAccountID,
		})
		recordSpanError(span, err)
		return domain.Transaction{}, fmt.Errorf("append transaction: %w", err)
	}

	span.SetAttributes(attribute.Int64("transaction.id", txn.ID))
	return txn, nil
}

func execRows(ctx context.Context, tx *sql.Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("execute transaction statement: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected: %w", err)
	}
	return rows, nil
}

func lockConflictCode(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}

	switch pqErr.Code {
	case pqCodeDeadlockDetected, pqCodeLockNotAvailable, pqCodeSerializationFailure:
		return string(pqErr.Code), true
	default:
		return "", false
	}
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
