package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, repo *AccountRepository, owner string, balance string, currency string) domain.Account {
	t.Helper()
	account, err := repo.Create(context.Background(), domain.Account{
		OwnerName: owner,
		Balance:   decimal.RequireFromString(balance),
		Currency:  currency,
	})
	require.NoError(t, err)
	return account
}

func TestRunAtomicallyCommitsStagedChanges(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	txns := NewTransactionRepository(store)
	alice := seedAccount(t, accounts, "Alice", "100.00", "USD")

	err := store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		rows, err := unit.ApplyBalanceDelta(ctx, alice.ID, decimal.RequireFromString("-10.50"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		held, err := unit.GetForUpdate(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, held.Balance.Equal(decimal.RequireFromString("89.50")), "unit should read its own staged delta")

		_, err = unit.AppendTransaction(ctx, domain.Transaction{
			FromAccountID: alice.ID,
			ToAccountID:   alice.ID,
			Amount:        decimal.RequireFromString("10.50"),
			Currency:      "USD",
			Status:        domain.TransactionStatusCompleted,
		})
		return err
	})
	require.NoError(t, err)

	got, err := accounts.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("89.50")))

	list, err := txns.List(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	assert.False(t, list[0].CreatedAt.IsZero())
}

func TestRunAtomicallyDiscardsChangesOnError(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	txns := NewTransactionRepository(store)
	alice := seedAccount(t, accounts, "Alice", "100.00", "USD")
	boom := errors.New("boom")

	err := store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		if _, err := unit.ApplyBalanceDelta(ctx, alice.ID, decimal.RequireFromString("-40")); err != nil {
			return err
		}
		if _, err := unit.AppendTransaction(ctx, domain.Transaction{FromAccountID: alice.ID, ToAccountID: 2}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := accounts.GetByID(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.RequireFromString("100.00")))

	list, err := txns.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGetForUpdateMissingAccount(t *testing.T) {
	store := NewLedgerStore()

	err := store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		_, err := unit.GetForUpdate(ctx, 42)
		return err
	})
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestApplyBalanceDeltaMissingAccountAffectsNoRows(t *testing.T) {
	store := NewLedgerStore()

	err := store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		rows, err := unit.ApplyBalanceDelta(ctx, 42, decimal.NewFromInt(1))
		require.NoError(t, err)
		assert.Equal(t, int64(0), rows)
		return nil
	})
	require.NoError(t, err)
}

func TestHoldIsReentrantWithinUnit(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	alice := seedAccount(t, accounts, "Alice", "1", "USD")

	done := make(chan error, 1)
	go func() {
		done <- store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
			if _, err := unit.GetForUpdate(ctx, alice.ID); err != nil {
				return err
			}
			_, err := unit.GetForUpdate(ctx, alice.ID)
			return err
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected second hold on the same account to succeed without blocking")
	}
}

func TestHoldBlocksOtherUnitsUntilRelease(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	alice := seedAccount(t, accounts, "Alice", "1", "USD")

	acquired := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
			if _, err := unit.GetForUpdate(ctx, alice.ID); err != nil {
				return err
			}
			close(acquired)
			<-release
			return nil
		})
	}()
	<-acquired

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := store.RunAtomically(ctx, func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		_, err := unit.GetForUpdate(ctx, alice.ID)
		return err
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-firstDone)

	err = store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		_, err := unit.GetForUpdate(ctx, alice.ID)
		return err
	})
	assert.NoError(t, err)
}

func TestDepositAndUpdateOwnerName(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	alice := seedAccount(t, accounts, "Alice", "10", "USD")

	deposited, err := accounts.Deposit(context.Background(), alice.ID, decimal.RequireFromString("5.25"))
	require.NoError(t, err)
	assert.True(t, deposited.Balance.Equal(decimal.RequireFromString("15.25")))

	renamed, err := accounts.UpdateOwnerName(context.Background(), alice.ID, "Alice Smith")
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", renamed.OwnerName)
	assert.True(t, renamed.Balance.Equal(decimal.RequireFromString("15.25")))

	_, err = accounts.Deposit(context.Background(), 999, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}

func TestAccountListFilter(t *testing.T) {
	store := NewLedgerStore()
	accounts := NewAccountRepository(store)
	seedAccount(t, accounts, "Alice", "100", "USD")
	seedAccount(t, accounts, "Bob", "-5", "USD")
	seedAccount(t, accounts, "Carlos", "30", "EUR")

	usd, err := accounts.List(context.Background(), domain.AccountFilter{Currency: "usd"})
	require.NoError(t, err)
	assert.Len(t, usd, 2)

	minBalance := decimal.NewFromInt(30)
	rich, err := accounts.List(context.Background(), domain.AccountFilter{MinBalance: &minBalance})
	require.NoError(t, err)
	require.Len(t, rich, 2)
	assert.Equal(t, "Alice", rich[0].OwnerName)
	assert.Equal(t, "Carlos", rich[1].OwnerName)

	negative, err := accounts.List(context.Background(), domain.AccountFilter{NegativeOnly: true})
	require.NoError(t, err)
	require.Len(t, negative, 1)
	assert.Equal(t, "Bob", negative[0].OwnerName)

	named, err := accounts.List(context.Background(), domain.AccountFilter{OwnerNameContains: "ARL"})
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, "Carlos", named[0].OwnerName)
}

func TestTransactionListByAccount(t *testing.T) {
	store := NewLedgerStore()
	txns := NewTransactionRepository(store)

	err := store.RunAtomically(context.Background(), func(ctx context.Context, unit repo_interfaces.LedgerUnit) error {
		for _, pair := range [][2]int64{{1, 2}, {2, 3}, {3, 1}, {4, 5}} {
			if _, err := unit.AppendTransaction(ctx, domain.Transaction{FromAccountID: pair[0], ToAccountID: pair[1]}); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	accountID := int64(1)
	list, err := txns.List(context.Background(), &accountID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	_, err = txns.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, commons.ErrRecordNotFound)
}
