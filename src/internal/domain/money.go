package domain

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places every stored amount and balance
// carries. The NUMERIC columns in src/migrations use the same scale.
const MoneyScale int32 = 2

// FitsMoneyScale reports whether value can be stored without rounding.
func FitsMoneyScale(value decimal.Decimal) bool {
	return value.Equal(value.Truncate(MoneyScale))
}

// FormatMoney renders value with exactly MoneyScale decimal places.
func FormatMoney(value decimal.Decimal) string {
	return value.StringFixed(MoneyScale)
}
