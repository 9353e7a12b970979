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
)

const transactionColumns = `id, from_account_id, to_account_id, amount, currency, status, created_at`

var _ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.ID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&txn.Amount,
		&txn.Currency,
		&txn.Status,
		&txn.CreatedAt,
	)
	return txn, err
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (domain.Transaction, error) {
	const query = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE id = $1`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info("transaction repository record not found", logger.Fields{
				"transactionId": id,
			})
			return domain.Transaction{}, commons.ErrRecordNotFound
		}
		logger.Error("transaction repository get failed", err, logger.Fields{
			"transactionId": id,
		})
		return domain.Transaction{}, fmt.Errorf("get transaction by id: %w", err)
	}

	return txn, nil
}

func (r *TransactionRepository) List(ctx context.Context, accountID *int64) ([]domain.Transaction, error) {
	query := `
SELECT ` + transactionColumns + `
FROM transactions`
	args := []any{}
	if accountID != nil {
		query += `
WHERE from_account_id = $1 OR to_account_id = $1`
		args = append(args, *accountID)
	}
	query += `
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("transaction repository list failed", err, nil)
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txns, nil
}
