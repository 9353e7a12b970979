package memory

import (
	"context"
	"sort"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
)

var _ repo_interfaces.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	store *LedgerStore
}

func NewTransactionRepository(store *LedgerStore) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) GetByID(_ context.Context, id int64) (domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	txn, ok := r.store.transactions[id]
	if !ok {
		return domain.Transaction{}, commons.ErrRecordNotFound
	}
	return txn, nil
}

// List returns transactions in id order. A nil accountID lists everything;
// otherwise only transactions where the account is either side.
func (r *TransactionRepository) List(_ context.Context, accountID *int64) ([]domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(r.store.transactions))
	for _, txn := range r.store.transactions {
		if accountID != nil && txn.FromAccountID != *accountID && txn.ToAccountID != *accountID {
			continue
		}
		out = append(out, txn)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
