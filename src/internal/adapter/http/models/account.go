package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/money-transfer-service/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	OwnerName      string          `json:"ownerName"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.OwnerName) == "" {
		errs = append(errs, "ownerName is required")
	}

	ccy := strings.TrimSpace(r.Currency)
	if ccy == "" {
		errs = append(errs, "currency is required")
	} else if !isCurrencyCode(ccy) {
		errs = append(errs, "currency must be 3 letters")
	}

	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	} else if !domain.FitsMoneyScale(r.InitialBalance) {
		errs = append(errs, fmt.Sprintf("initialBalance must have at most %d decimal places", domain.MoneyScale))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

type UpdateAccountRequest struct {
	OwnerName string `json:"ownerName"`
}

func (r UpdateAccountRequest) Validate() error {
	if strings.TrimSpace(r.OwnerName) == "" {
		return errors.New("ownerName is required")
	}
	return nil
}

type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (r DepositRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return errors.New("amount must be greater than zero")
	}
	if !domain.FitsMoneyScale(r.Amount) {
		return fmt.Errorf("amount must have at most %d decimal places", domain.MoneyScale)
	}
	return nil
}

// ListAccountsQuery mirrors the optional query parameters of GET /api/accounts.
type ListAccountsQuery struct {
	Currency     string
	MinBalance   string
	OwnerName    string
	NegativeOnly bool
}

func (q ListAccountsQuery) Filter() (domain.AccountFilter, error) {
	filter := domain.AccountFilter{
		Currency:          strings.ToUpper(strings.TrimSpace(q.Currency)),
		OwnerNameContains: strings.TrimSpace(q.OwnerName),
		NegativeOnly:      q.NegativeOnly,
	}

	if raw := strings.TrimSpace(q.MinBalance); raw != "" {
		minBalance, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.AccountFilter{}, errors.New("minBalance must be a decimal number")
		}
		filter.MinBalance = &minBalance
	}

	return filter, nil
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	OwnerName string `json:"ownerName"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewAccountResponse(account domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		OwnerName: account.OwnerName,
		Balance:   domain.FormatMoney(account.Balance),
		Currency:  account.Currency,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}

func isCurrencyCode(value string) bool {
	if len(value) != 3 {
		return false
	}
	for _, ch := range value {
		if (ch < 'A' || ch > 'Z') && (ch < 'a' || ch > 'z') {
			return false
		}
	}
	return true
}
