package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ErrorKindInvalidAmount    ErrorKind = "INVALID_AMOUNT"
	ErrorKindAccountNotFound  ErrorKind = "ACCOUNT_NOT_FOUND"
	ErrorKindCurrencyMismatch ErrorKind = "CURRENCY_MISMATCH"
	ErrorKindStoreFailure     ErrorKind = "STORE_FAILURE"
)

type AccountSide string

const (
	AccountSideSource      AccountSide = "source"
	AccountSideDestination AccountSide = "destination"
)

// TransferError carries the kind of a failed transfer so callers never have
// to inspect message text.
type TransferError struct {
	Kind      ErrorKind
	Side      AccountSide
	AccountID int64
	Detail    string
	Err       error
}

func (e *TransferError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// IsRejection reports whether the error is a caller mistake rather than a
// server-side condition.
func (e *TransferError) IsRejection() bool {
	return e.Kind != ErrorKindStoreFailure
}

func NewInvalidAmountError(amount string) *TransferError {
	return &TransferError{
		Kind:   ErrorKindInvalidAmount,
		Detail: fmt.Sprintf("transfer amount must be positive with at most %d decimal places, got %s", MoneyScale, amount),
	}
}

func NewAccountNotFoundError(side AccountSide, accountID int64) *TransferError {
	return &TransferError{
		Kind:      ErrorKindAccountNotFound,
		Side:      side,
		AccountID: accountID,
		Detail:    fmt.Sprintf("%s account not found: %d", side, accountID),
	}
}

func NewCurrencyMismatchError(fromCurrency string, toCurrency string) *TransferError {
	return &TransferError{
		Kind:   ErrorKindCurrencyMismatch,
		Detail: fmt.Sprintf("currency mismatch between accounts: %s vs %s", fromCurrency, toCurrency),
	}
}

func NewStoreFailureError(detail string, err error) *TransferError {
	return &TransferError{
		Kind:   ErrorKindStoreFailure,
		Detail: detail,
		Err:    err,
	}
}

// KindOf returns the kind of a transfer error, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var transferErr *TransferError
	if errors.As(err, &transferErr) {
		return transferErr.Kind
	}
	return ""
}
