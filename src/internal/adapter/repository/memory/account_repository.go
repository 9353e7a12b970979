package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	store *LedgerStore
}

func NewAccountRepository(store *LedgerStore) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextAccountID++
	now := r.store.now()
	account.ID = r.store.nextAccountID
	account.CreatedAt = now
	account.UpdatedAt = now
	r.store.accounts[account.ID] = account

	return account, nil
}

func (r *AccountRepository) GetByID(_ context.Context, id int64) (domain.Account, error) {
	account, ok := r.store.account(id)
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	return account, nil
}

func (r *AccountRepository) List(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.store.accounts))
	for _, account := range r.store.accounts {
		if matchesFilter(account, filter) {
			out = append(out, account)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpdateOwnerName and Deposit go through a unit of work so they queue behind
// any transfer holding the same account.
func (r *AccountRepository) UpdateOwnerName(ctx context.Context, id int64, ownerName string) (domain.Account, error) {
	var updated domain.Account
	err := r.store.RunAtomically(ctx, func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		if _, err := unit.GetForUpdate(ctx, id); err != nil {
			return err
		}

		r.store.mu.Lock()
		defer r.store.mu.Unlock()

		account := r.store.accounts[id]
		account.OwnerName = ownerName
		account.UpdatedAt = r.store.now()
		r.store.accounts[id] = account
		updated = account
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	return updated, nil
}

func (r *AccountRepository) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	err := r.store.RunAtomically(ctx, func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		if _, err := unit.GetForUpdate(ctx, id); err != nil {
			return err
		}

		rows, err := unit.ApplyBalanceDelta(ctx, id, amount)
		if err != nil {
			return err
		}
		if rows != 1 {
			return fmt.Errorf("deposit affected %d rows", rows)
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	return r.GetByID(ctx, id)
}

func matchesFilter(account domain.Account, filter domain.AccountFilter) bool {
	if filter.Currency != "" && !strings.EqualFold(account.Currency, filter.Currency) {
		return false
	}
	if filter.MinBalance != nil && account.Balance.LessThan(*filter.MinBalance) {
		return false
	}
	if filter.OwnerNameContains != "" &&
		!strings.Contains(strings.ToLower(account.OwnerName), strings.ToLower(filter.OwnerNameContains)) {
		return false
	}
	if filter.NegativeOnly && !account.Balance.IsNegative() {
		return false
	}
	return true
}
