package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.LedgerStore = (*LedgerStore)(nil)

var errUnitClosed = errors.New("ledger unit used outside its unit of work")

// LedgerStore keeps accounts and transactions in process memory. Holds are
// per-account semaphores, so units touching disjoint accounts run in
// parallel while units sharing an account queue on it.
type LedgerStore struct {
	mu            sync.RWMutex
	accounts      map[int64]domain.Account
	transactions  map[int64]domain.Transaction
	nextAccountID int64
	nextTxnID     int64

	holdsMu sync.Mutex
	holds   map[int64]chan struct{}

	now func() time.Time
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		accounts:     make(map[int64]domain.Account),
		transactions: make(map[int64]domain.Transaction),
		holds:        make(map[int64]chan struct{}),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *LedgerStore) RunAtomically(ctx context.Context, fn func(ctx context.Context, unit repo_interfaces.LedgerUnit) error) error {
	u := &ledgerUnit{
		store:  s,
		held:   make(map[int64]chan struct{}),
		deltas: make(map[int64]decimal.Decimal),
	}
	defer u.release()

	if err := fn(ctx, u); err != nil {
		return err
	}

	u.commit()
	return nil
}

func (s *LedgerStore) hold(id int64) chan struct{} {
	s.holdsMu.Lock()
	defer s.holdsMu.Unlock()

	ch, ok := s.holds[id]
	if !ok {
		ch = make(chan struct{}, 1)
		s.holds[id] = ch
	}
	return ch
}

func (s *LedgerStore) account(id int64) (domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	return account, ok
}

type ledgerUnit struct {
	store   *LedgerStore
	held    map[int64]chan struct{}
	order   []int64
	deltas  map[int64]decimal.Decimal
	pending []domain.Transaction
	closed  bool
}

func (u *ledgerUnit) acquire(ctx context.Context, id int64) error {
	if _, ok := u.held[id]; ok {
		return nil
	}

	ch := u.store.hold(id)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.held[id] = ch
	u.order = append(u.order, id)
	return nil
}

func (u *ledgerUnit) GetForUpdate(ctx context.Context, accountID int64) (domain.Account, error) {
	if u.closed {
		return domain.Account{}, errUnitClosed
	}
	if err := u.acquire(ctx, accountID); err != nil {
		return domain.Account{}, err
	}

	account, ok := u.store.account(accountID)
	if !ok {
		return domain.Account{}, commons.ErrRecordNotFound
	}
	if delta, staged := u.deltas[accountID]; staged {
		account.Balance = account.Balance.Add(delta)
	}
	return account, nil
}

func (u *ledgerUnit) ApplyBalanceDelta(ctx context.Context, accountID int64, delta decimal.Decimal) (int64, error) {
	if u.closed {
		return 0, errUnitClosed
	}
	if err := u.acquire(ctx, accountID); err != nil {
		return 0, err
	}

	if _, ok := u.store.account(accountID); !ok {
		return 0, nil
	}

	current, staged := u.deltas[accountID]
	if !staged {
		current = decimal.Zero
	}
	u.deltas[accountID] = current.Add(delta)
	return 1, nil
}

func (u *ledgerUnit) AppendTransaction(_ context.Context, txn domain.Transaction) (domain.Transaction, error) {
	if u.closed {
		return domain.Transaction{}, errUnitClosed
	}

	u.store.mu.Lock()
	u.store.nextTxnID++
	txn.ID = u.store.nextTxnID
	u.store.mu.Unlock()

	txn.CreatedAt = u.store.now()
	u.pending = append(u.pending, txn)
	return txn, nil
}

func (u *ledgerUnit) commit() {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	now := u.store.now()
	for id, delta := range u.deltas {
		account := u.store.accounts[id]
		account.Balance = account.Balance.Add(delta)
		account.UpdatedAt = now
		u.store.accounts[id] = account
	}
	for _, txn := range u.pending {
		u.store.transactions[txn.ID] = txn
	}
}

func (u *ledgerUnit) release() {
	u.closed = true
	for i := len(u.order) - 1; i >= 0; i-- {
		<-u.held[u.order[i]]
	}
	u.held = nil
	u.order = nil
}
