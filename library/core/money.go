package core

import (
	"fmt"
	"math"
)

const centsPerUnit = 100

// Money is an amount in cents of the library's currency.
// Fines are accumulated per day, so integer cents avoid any rounding drift.
type Money int64

// MoneyFromFloat converts an amount in currency units (e.g. 0.50) to Money, rounding to the nearest cent.
func MoneyFromFloat(units float64) Money {
	return Money(math.Round(units * centsPerUnit))
}

// Cents returns the raw number of cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Times multiplies the amount by n.
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// String renders the amount with two decimals, e.g. "2.50".
func (m Money) String() string {
	sign := ""
	cents := int64(m)

	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/centsPerUnit, cents%centsPerUnit)
}
