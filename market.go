package fundsync

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hyliu/fundsync/notion"
)

// This file implements the market phase: every holding's valuation is
// refreshed from the feeds and written back.

// MarketStats counts the outcome of one market sweep.
type MarketStats struct {
	Total   int // holdings with a resolvable code
	Updated int
	Failed  int
}

func (s MarketStats) String() string {
	return fmt.Sprintf("MARKET Done. updated=%d, failed=%d, total=%d", s.Updated, s.Failed, s.Total)
}

// UpdateMarket sweeps all holdings and patches each with its current market
// valuation. Holdings without a resolvable code are skipped without counting
// toward the totals; a failed patch is counted and the sweep continues.
func (s *Session) UpdateMarket() (MarketStats, error) {
	var stats MarketStats

	err := s.eachPage(s.cfg.HoldingsDB, nil, s.cfg.HoldingPageSize, func(holding notion.Page) error {
		raw := holding.Prop(s.cfg.Holding.Code).Text()
		if raw == "" {
			raw = holding.Prop(s.cfg.Holding.Title).Text()
		}
		code := Zpad6(raw)
		if code == "" {
			return nil
		}
		stats.Total++

		quote := s.feed.Valuation(code)

		name := quote.Name
		if name == "" {
			name = holding.Prop(s.cfg.Holding.Title).Text()
		}
		if name == "" {
			name = code
		}

		if err := s.store.UpdatePage(holding.ID, s.marketProps(code, name, quote)); err != nil {
			log.Printf("[ERR] MARKET %s: %v", code, err)
			stats.Failed++
			return nil
		}
		log.Printf("[MARKET] %s %s | source=%s | chg=%s", code, name, quote.Source, nullString(quote.ChangePct))
		stats.Updated++
		return nil
	})
	return stats, err
}

// marketProps builds the holding patch for one quote. Absent numbers are
// written as explicit nulls so stale figures do not survive a feed outage;
// the valuation time is only touched when the feed produced an ISO-like one.
func (s *Session) marketProps(code, name string, q Quote) map[string]notion.Value {
	props := map[string]notion.Value{
		s.cfg.Holding.Title:     notion.Title(name),
		s.cfg.Holding.Code:      notion.Text(code),
		s.cfg.Holding.UnitNAV:   numberValue(q.UnitNAV),
		s.cfg.Holding.EstNAV:    numberValue(q.EstNAV),
		s.cfg.Holding.ChangePct: numberValue(q.ChangePct),
		s.cfg.Holding.Source:    notion.Select(q.Source),
		s.cfg.Holding.UpdatedAt: notion.Date(NowCN().Format(time.RFC3339)),
	}
	if q.Time != "" && IsISOLike(q.Time) {
		props[s.cfg.Holding.ValuedAt] = notion.Date(q.Time)
	}
	return props
}

func numberValue(d decimal.NullDecimal) notion.Value {
	if !d.Valid {
		return notion.NumberPtr(nil)
	}
	v := d.Decimal.InexactFloat64()
	return notion.Number(v)
}

func nullString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
