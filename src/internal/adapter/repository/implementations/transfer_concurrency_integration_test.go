package implementations

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type postgresTransferFixture struct {
	accounts *AccountRepository
	txns     *TransactionRepository
	svc      *services.TransferService
	alice    domain.Account
	bob      domain.Account
}

func newPostgresTransferFixture(t *testing.T) postgresTransferFixture {
	t.Helper()
	db := openTestDB(t)
	ctx := context.Background()

	f := postgresTransferFixture{
		accounts: NewAccountRepository(db),
		txns:     NewTransactionRepository(db),
		svc:      services.NewTransferService(NewLedgerStore(db), nil),
	}

	var err error
	f.alice, err = f.accounts.Create(ctx, domain.Account{OwnerName: "Alice", Balance: decimal.RequireFromString("100.00"), Currency: "USD"})
	require.NoError(t, err)
	f.bob, err = f.accounts.Create(ctx, domain.Account{OwnerName: "Bob", Balance: decimal.RequireFromString("50.00"), Currency: "USD"})
	require.NoError(t, err)
	return f
}

func (f postgresTransferFixture) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	account, err := f.accounts.GetByID(context.Background(), id)
	require.NoError(t, err)
	return account.Balance
}

// Both accounts are fresh, so every transaction touching alice is also one
// of this test's transfers.
func (f postgresTransferFixture) transactionCount(t *testing.T) int {
	t.Helper()
	list, err := f.txns.List(context.Background(), &f.alice.ID)
	require.NoError(t, err)
	return len(list)
}

func TestTransferPostgresConcurrentDebitsSerialize(t *testing.T) {
	f := newPostgresTransferFixture(t)
	const n = 40
	amount := decimal.RequireFromString("1.25")

	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, err := f.svc.Transfer(context.Background(), f.alice.ID, f.bob.ID, amount)
			return err
		})
	}
	require.NoError(t, g.Wait())

	debited := amount.Mul(decimal.NewFromInt(n))
	assert.True(t, f.balance(t, f.alice.ID).Equal(decimal.RequireFromString("100.00").Sub(debited)))
	assert.True(t, f.balance(t, f.bob.ID).Equal(decimal.RequireFromString("50.00").Add(debited)))
	assert.Equal(t, n, f.transactionCount(t))
}

func TestTransferPostgresOppositeDirectionsDoNotDeadlock(t *testing.T) {
	f := newPostgresTransferFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	const n = 100
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		from, to := f.alice.ID, f.bob.ID
		if i%2 == 1 {
			from, to = to, from
		}
		g.Go(func() error {
			_, err := f.svc.Transfer(ctx, from, to, decimal.RequireFromString("3"))
			return err
		})
	}
	require.NoError(t, g.Wait(), "a 40P01 deadlock surfaces here as a store failure")

	assert.True(t, f.balance(t, f.alice.ID).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, f.balance(t, f.bob.ID).Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, n, f.transactionCount(t))
}
