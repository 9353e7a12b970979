package repo_interfaces

import (
	"context"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

// LedgerStore runs units of work whose operations commit together or not at
// all, isolated from concurrent units touching the same accounts.
type LedgerStore interface {
	RunAtomically(ctx context.Context, fn func(ctx context.Context, unit LedgerUnit) error) error
}

// LedgerUnit is only valid inside the RunAtomically callback that produced it.
type LedgerUnit interface {
	// GetForUpdate returns the account and holds it exclusively until the unit
	// ends. Returns commons.ErrRecordNotFound when the account does not exist.
	GetForUpdate(ctx context.Context, accountID int64) (domain.Account, error)
	// ApplyBalanceDelta adds delta (negative for debits) and returns the
	// number of affected rows.
	ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal) (int64, error)
	AppendTransaction(ctx context.Context, txn domain.Transaction) (domain.Transaction, error)
}
