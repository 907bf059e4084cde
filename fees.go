package fundsync

import "github.com/shopspring/decimal"

// Redemption fee tiers. Funds front-load an early-redemption penalty that
// fully amortizes after 30 days of holding.
var (
	rateWeek  = decimal.NewFromFloat(0.015) // held less than 7 days
	rateMonth = decimal.NewFromFloat(0.005) // held less than 30 days
)

// SellFeeRate returns the estimated redemption fee rate for a position held
// the given number of days. Intervals are inclusive-low, exclusive-high; a
// negative holding period should not occur and maps to a zero rate.
func SellFeeRate(days float64) decimal.Decimal {
	switch {
	case days < 0:
		return decimal.Zero
	case days < 7:
		return rateWeek
	case days < 30:
		return rateMonth
	default:
		return decimal.Zero
	}
}
