package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID        int64
	OwnerName string
	Balance   decimal.Decimal
	Currency  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountFilter narrows account listings. Zero values mean "no constraint".
type AccountFilter struct {
	Currency          string
	MinBalance        *decimal.Decimal
	OwnerNameContains string
	NegativeOnly      bool
}
