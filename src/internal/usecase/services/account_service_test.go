package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/money-transfer-service/src/internal/adapter/http/models"
	"github.com/api-sage/money-transfer-service/src/internal/adapter/repository/memory"
	"github.com/api-sage/money-transfer-service/src/internal/commons"
	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/api-sage/money-transfer-service/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

type accountRepoStub struct {
	getByID func(ctx context.Context, id int64) (domain.Account, error)
}

func (s accountRepoStub) Create(_ context.Context, account domain.Account) (domain.Account, error) {
	return account, nil
}

func (s accountRepoStub) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	return s.getByID(ctx, id)
}

func (s accountRepoStub) List(context.Context, domain.AccountFilter) ([]domain.Account, error) {
	return nil, errors.New("connection refused")
}

func (s accountRepoStub) UpdateOwnerName(context.Context, int64, string) (domain.Account, error) {
	return domain.Account{}, commons.ErrRecordNotFound
}

func (s accountRepoStub) Deposit(context.Context, int64, decimal.Decimal) (domain.Account, error) {
	return domain.Account{}, commons.ErrRecordNotFound
}

func TestAccountServiceCreateAccountValidationError(t *testing.T) {
	svc := services.NewAccountService(nil)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{})
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountServiceCreateAccountRejectsSubCentBalance(t *testing.T) {
	repo := memory.NewAccountRepository(memory.NewLedgerStore())
	svc := services.NewAccountService(repo)

	_, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerName:      "Alice",
		Currency:       "USD",
		InitialBalance: decimal.RequireFromString("100.005"),
	})
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	accounts, err := repo.List(context.Background(), domain.AccountFilter{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(accounts) != 0 {
		t.Fatalf("expected no account to be created, got %d", len(accounts))
	}
}

func TestAccountServiceCreateAndGet(t *testing.T) {
	svc := services.NewAccountService(memory.NewAccountRepository(memory.NewLedgerStore()))

	created, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		OwnerName:      " Alice ",
		Currency:       "usd",
		InitialBalance: decimal.RequireFromString("100.5"),
	})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if created.Data.OwnerName != "Alice" || created.Data.Currency != "USD" {
		t.Fatalf("expected trimmed owner and upper-case currency, got %+v", created.Data)
	}
	if created.Data.Balance != "100.50" {
		t.Fatalf("expected balance 100.50, got %s", created.Data.Balance)
	}

	fetched, err := svc.GetAccount(context.Background(), created.Data.ID)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if fetched.Data.ID != created.Data.ID {
		t.Fatalf("expected id %d, got %d", created.Data.ID, fetched.Data.ID)
	}
}

func TestAccountServiceGetAccountNotFound(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{
		getByID: func(context.Context, int64) (domain.Account, error) {
			return domain.Account{}, commons.ErrRecordNotFound
		},
	})

	resp, err := svc.GetAccount(context.Background(), 7)
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if resp.Message != "Account not found" {
		t.Fatalf("expected Account not found, got %q", resp.Message)
	}
}

func TestAccountServiceListAccountsRepositoryFailure(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{})

	resp, err := svc.ListAccounts(context.Background(), models.ListAccountsQuery{})
	if err == nil {
		t.Fatal("expected repository error")
	}
	if resp.Success {
		t.Fatal("expected unsuccessful response")
	}
}

func TestAccountServiceListAccountsBadMinBalance(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{})

	_, err := svc.ListAccounts(context.Background(), models.ListAccountsQuery{MinBalance: "lots"})
	if !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountServiceDepositFunds(t *testing.T) {
	repo := memory.NewAccountRepository(memory.NewLedgerStore())
	svc := services.NewAccountService(repo)
	account, err := repo.Create(context.Background(), domain.Account{OwnerName: "Bob", Balance: decimal.NewFromInt(-5), Currency: "USD"})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	if _, err := svc.DepositFunds(context.Background(), account.ID, models.DepositRequest{}); !errors.Is(err, commons.ErrValidation) {
		t.Fatalf("expected validation error for zero deposit, got %v", err)
	}

	resp, err := svc.DepositFunds(context.Background(), account.ID, models.DepositRequest{Amount: decimal.RequireFromString("7.50")})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.Balance != "2.50" {
		t.Fatalf("expected balance 2.50, got %s", resp.Data.Balance)
	}
}

func TestAccountServiceUpdateAccountNotFound(t *testing.T) {
	svc := services.NewAccountService(accountRepoStub{})

	_, err := svc.UpdateAccount(context.Background(), 3, models.UpdateAccountRequest{OwnerName: "Carol"})
	if !errors.Is(err, commons.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
