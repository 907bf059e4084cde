package fundsync

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is a monetary value used for diagnostics. The ledger's amounts are
// all in yuan, so construction defaults to CNY.
type Money struct {
	value decimal.Decimal
	cur   string
}

// CNY wraps an amount in yuan.
func CNY(value decimal.Decimal) Money { return Money{value: value, cur: money.CNY} }

// currency returns a never-nil currency for the formatter.
func (m Money) currency() money.Currency {
	return *money.New(0, m.cur).Currency()
}

// String formats the amount with its currency symbol.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

func (m Money) IsZero() bool     { return m.value.IsZero() }
func (m Money) IsNegative() bool { return m.value.IsNegative() }

// SignedString formats the amount with an explicit sign, and zero as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
