// internal/core/money.go
package core

import (
	"encoding/json"
	"math"
	"strconv"
)

// Money is a fixed-precision currency amount in cents. All intermediate
// deal arithmetic happens on this type; floats only appear at rate
// multiplications, which round back to cent precision immediately.
type Money int64

// Dollars converts a dollar amount to Money, rounding to the nearest cent.
func Dollars(d float64) Money {
	return Money(math.Round(d * 100))
}

// Cents converts a raw cent count to Money.
func Cents(c int64) Money {
	return Money(c)
}

// Float returns the amount in dollars.
func (m Money) Float() float64 {
	return float64(m) / 100
}

// MulRate multiplies by a rate and rounds to the nearest cent.
func (m Money) MulRate(r float64) Money {
	return Money(math.Round(float64(m) * r))
}

// MulInt multiplies by an integer factor.
func (m Money) MulInt(n int) Money {
	return m * Money(n)
}

// RoundDollar rounds to the nearest whole dollar.
func (m Money) RoundDollar() Money {
	return Money(math.Round(float64(m)/100)) * 100
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// ClampZero returns the amount, floored at zero.
func (m Money) ClampZero() Money {
	if m < 0 {
		return 0
	}
	return m
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

// MarshalJSON encodes the amount as decimal dollars.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a decimal dollar amount.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*m = Dollars(d)
	return nil
}
