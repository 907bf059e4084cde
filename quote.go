package fundsync

import "github.com/shopspring/decimal"

// Source labels written into the holding's source field. They are data the
// ledger owner sees, so they keep the feeds' native names.
const (
	SourceFundgz = "天天基金"
	SourceF10    = "东方财富(历史净值)"
	SourceFailed = "失败"
)

// Quote is one fund valuation as resolved from the market feeds. A failed
// resolution is a Quote carrying only the SourceFailed label, so the failure
// is still visible in the ledger instead of silently skipping the holding.
type Quote struct {
	Name      string
	UnitNAV   decimal.NullDecimal // last settled net asset value per unit
	EstNAV    decimal.NullDecimal // intraday estimated net asset value
	ChangePct decimal.NullDecimal // estimated change, in percent
	Time      string              // valuation time, ISO-8601 or empty
	Source    string
}

// Usable reports whether the quote carries at least one valuation figure.
func (q Quote) Usable() bool { return q.UnitNAV.Valid || q.ChangePct.Valid }

// NAV returns the best per-unit value for marking positions to market: the
// intraday estimate when present, else the settled unit value. ok is false
// unless the chosen value is strictly positive.
func (q Quote) NAV() (decimal.Decimal, bool) {
	if q.EstNAV.Valid && q.EstNAV.Decimal.IsPositive() {
		return q.EstNAV.Decimal, true
	}
	if q.UnitNAV.Valid && q.UnitNAV.Decimal.IsPositive() {
		return q.UnitNAV.Decimal, true
	}
	return decimal.Decimal{}, false
}
