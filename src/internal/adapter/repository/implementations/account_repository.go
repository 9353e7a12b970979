package implementations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/logger"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, owner_name, balance, currency, created_at, updated_at`

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.OwnerName,
		&account.Balance,
		&account.Currency,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	return account, err
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	logger.Info("account repository create", logger.Fields{
		"ownerName": account.OwnerName,
		"currency":  account.Currency,
	})

	const query = `
INSERT INTO accounts (
	owner_name,
	balance,
	currency
) VALUES ($1, $2, $3)
RETURNING ` + accountColumns

	created, err := scanAccount(r.db.QueryRowContext(ctx, query, account.OwnerName, account.Balance, account.Currency))
	if err != nil {
		logger.Error("account repository create failed", err, logger.Fields{
			"ownerName": account.OwnerName,
		})
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	logger.Info("account repository create success", logger.Fields{
		"accountId": created.ID,
	})
	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("account repository record not found", logger.Fields{
				"accountId": id,
			})
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository get failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query, args := buildAccountListQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("account repository list failed", err, logger.Fields{
			"currency": filter.Currency,
		})
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func buildAccountListQuery(filter domain.AccountFilter) (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 3)

	if filter.Currency != "" {
		args = append(args, filter.Currency)
		conditions = append(conditions, fmt.Sprintf("UPPER(currency) = UPPER($%d)", len(args)))
	}
	if filter.MinBalance != nil {
		args = append(args, *filter.MinBalance)
		conditions = append(conditions, fmt.Sprintf("balance >= $%d::numeric", len(args)))
	}
	if filter.OwnerNameContains != "" {
		args = append(args, "%"+filter.OwnerNameContains+"%")
		conditions = append(conditions, fmt.Sprintf("owner_name ILIKE $%d", len(args)))
	}
	if filter.NegativeOnly {
		conditions = append(conditions, "balance < 0")
	}

	query := `
SELECT ` + accountColumns + `
FROM accounts`
	if len(conditions) > 0 {
		query += "\nWHERE " + strings.Join(conditions, "\n  AND ")
	}
	query += "\nORDER BY id"

	return query, args
}

func (r *AccountRepository) UpdateOwnerName(ctx context.Context, id int64, ownerName string) (domain.Account, error) {
	logger.Info("account repository update owner name", logger.Fields{
		"accountId": id,
	})

	const query = `
UPDATE accounts
SET owner_name = $2,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id, ownerName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository update owner name failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("update account owner name: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	logger.Info("account repository deposit", logger.Fields{
		"accountId": id,
		"amount":    amount.String(),
	})

	const query = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id = $1
RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id, amount))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, commons.ErrRecordNotFound
		}
		logger.Error("account repository deposit failed", err, logger.Fields{
			"accountId": id,
		})
		return domain.Account{}, fmt.Errorf("deposit funds: %w", err)
	}

	logger.Info("account repository deposit success", logger.Fields{
		"accountId": id,
		"balance":   account.Balance.String(),
	})
	return account, nil
}
