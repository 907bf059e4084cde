// Package eastmoney resolves Chinese open-fund market data. The primary
// source is the fundgz intraday-estimate feed; when it is unreachable or
// incomplete, the eastmoney F10 historical-NAV endpoint provides the last
// settled valuation instead.
package eastmoney

import (
	"net/http"
	"time"

	"github.com/hyliu/fundsync"
)

// Resolver fetches quotes with a fixed per-call timeout and a short fixed
// delay between base-URL attempts. The zero value is not usable; call
// NewResolver.
type Resolver struct {
	client *http.Client
	bases  []string // fundgz base URLs, tried in order
	f10    string   // F10 lsjz endpoint, %s is the fund code
	now    func() time.Time
	sleep  func(time.Duration)
}

// NewResolver returns a resolver against the live feeds.
func NewResolver() *Resolver {
	return &Resolver{
		client: &http.Client{Timeout: 8 * time.Second},
		bases:  []string{"http://fundgz.1234567.com.cn", "https://fundgz.1234567.com.cn"},
		f10:    "https://api.fund.eastmoney.com/f10/lsjz?fundCode=%s&pageIndex=1&pageSize=1&startDate=&endDate=",
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Valuation resolves the current quote for a fund code. The fallback chain
// is: fundgz estimate; else, or when it lacks a change percent, the last
// settled NAV from F10; else a sentinel quote carrying only the failure
// label, so the outcome is still visible in the ledger.
func (r *Resolver) Valuation(code string) fundsync.Quote {
	quote, ok := r.fetchEstimate(code)
	if !ok || !quote.ChangePct.Valid {
		if settled, sok := r.fetchSettled(code); sok {
			// the F10 rows carry no display name, keep the primary's if any
			settled.Name = quote.Name
			quote = settled
		}
	}
	if !quote.Usable() {
		return fundsync.Quote{Source: fundsync.SourceFailed}
	}
	return quote
}

// Name resolves only the fund's display name, from the primary feed.
func (r *Resolver) Name(code string) (string, bool) {
	payload, ok := r.fetchPayload(code)
	if !ok || payload.Name == "" {
		return "", false
	}
	return payload.Name, true
}
