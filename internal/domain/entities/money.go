package entities

import "github.com/shopspring/decimal"

// CurrencyBRL is the only currency billed today.
const CurrencyBRL = "BRL"

// MoneyTolerance is half of the currency minor unit.
var MoneyTolerance = decimal.RequireFromString("0.005")

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds to the currency minor unit.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ApplyDiscount returns base reduced by percent (0-100), rounded to cents.
func ApplyDiscount(base, percent decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(percent).Div(hundred)
	return RoundMoney(base.Mul(factor))
}

// IsZeroMoney reports whether d is zero within MoneyTolerance.
func IsZeroMoney(d decimal.Decimal) bool {
	return d.Abs().LessThan(MoneyTolerance)
}
