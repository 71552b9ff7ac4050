package utils

import (
	"github.com/shopspring/decimal"
)

// MaxPrice is the exclusive upper bound of a menu price stored as decimal(6,2).
var MaxPrice = decimal.NewFromInt(10000)

var hundred = decimal.NewFromInt(100)

// FormatMoney renders amount with exactly two fractional digits.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// LineTotal is unit price times quantity.
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// WithTax adds rate (0.10 for ten percent) to amount, rounded to cents.
func WithTax(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Add(rate)).Round(2)
}

// HasCents reports whether amount needs no more than two fractional digits.
func HasCents(amount decimal.Decimal) bool {
	return amount.Mul(hundred).IsInteger()
}

func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(amounts[0], amounts[1:]...).Round(2)
}
