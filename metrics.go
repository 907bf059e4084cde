package fundsync

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/hyliu/fundsync/notion"
)

// This file implements the trade-metric pass: estimated redemption fee and
// unrealized holding profit, derived from the linked holding's valuation.

// TradeStats counts the outcome of one metric sweep.
type TradeStats struct {
	Total   int
	Updated int
	Failed  int
}

func (s TradeStats) String() string {
	return fmt.Sprintf("TRADES UPDATE Done. total=%d, updated=%d, failed=%d", s.Total, s.Updated, s.Failed)
}

// RecalcTradeMetrics sweeps every trade that is linked to a holding and
// holds a positive quantity, recomputing its estimated fee and holding
// profit from the holding's current valuation. This runs after every mode so
// metrics stay fresh even when the link phase had nothing to do.
func (s *Session) RecalcTradeMetrics() (TradeStats, error) {
	var stats TradeStats

	filter := notion.And(
		notion.RelationNotEmpty(s.cfg.Trade.Relation),
		notion.NumberGreaterThan(s.cfg.Trade.Quantity, 0),
	)
	err := s.eachPage(s.cfg.TradesDB, filter, s.cfg.TradePageSize, func(trade notion.Page) error {
		stats.Total++
		refs := trade.Prop(s.cfg.Trade.Relation).Relation()
		if len(refs) == 0 {
			return nil
		}
		if err := s.updateTradeMetrics(trade.ID, refs[0]); err != nil {
			log.Printf("[ERR] metrics for trade %s: %v", trade.ID, err)
			stats.Failed++
			return nil
		}
		stats.Updated++
		return nil
	})
	return stats, err
}

// updateTradeMetrics recomputes both metrics for one trade and patches the
// ones that could be derived. Each unmet precondition is reported and skips
// only the metric that needs it; a store failure is the only error.
func (s *Session) updateTradeMetrics(tradeID, holdingID string) error {
	trade, err := s.store.GetPage(tradeID)
	if err != nil {
		return fmt.Errorf("cannot read trade %s: %w", tradeID, err)
	}

	quantity, ok := s.tradeQuantity(trade)
	if !ok {
		return nil
	}
	nav, ok := s.holdingNAV(holdingID)
	if !ok {
		log.Printf("[WARN] holding %s has no positive estimated value", holdingID)
		return nil
	}
	// current mark-to-market value of the held units
	value := quantity.Mul(nav)

	props := make(map[string]notion.Value)

	if days, ok := s.tradeHoldingDays(trade); ok {
		fee := SellFeeRate(days).Mul(value)
		props[s.cfg.Trade.Fee] = notion.Number(fee.InexactFloat64())
		log.Printf("[FEE] trade %s estimated fee: %s (rate=%s%%, quantity=%s, nav=%s)",
			tradeID, CNY(fee), SellFeeRate(days).Mul(decimal.NewFromInt(100)), quantity, nav)
	}

	if amountProp := trade.Prop(s.cfg.Trade.Amount); amountProp.Kind() == notion.KindOther {
		log.Printf("[WARN] trade %s has no amount property", tradeID)
	} else if amount, ok := amountProp.Number(); !ok {
		log.Printf("[WARN] trade %s amount is not numeric", tradeID)
	} else {
		profit := value.Sub(decimal.NewFromFloat(amount))
		props[s.cfg.Trade.Profit] = notion.Number(profit.InexactFloat64())
		log.Printf("[PROFIT] trade %s holding profit: %s (quantity=%s, nav=%s, amount=%s)",
			tradeID, CNY(profit).SignedString(), quantity, nav, CNY(decimal.NewFromFloat(amount)))
	}

	if len(props) == 0 {
		return nil
	}
	if err := s.store.UpdatePage(tradeID, props); err != nil {
		return fmt.Errorf("cannot patch metrics of trade %s: %w", tradeID, err)
	}
	return nil
}

// tradeHoldingDays extracts the holding period. It must come from the
// store's derived (formula) field: a plain or missing number means the
// schema is wrong and the fee cannot be trusted.
func (s *Session) tradeHoldingDays(trade notion.Page) (float64, bool) {
	prop := trade.Prop(s.cfg.Trade.HoldingDays)
	if prop.Kind() != notion.KindFormula {
		log.Printf("[WARN] trade %s has no holding-period formula field", trade.ID)
		return 0, false
	}
	days, ok := prop.Number()
	if !ok {
		log.Printf("[WARN] trade %s holding period did not evaluate", trade.ID)
		return 0, false
	}
	return days, true
}

// tradeQuantity extracts the held quantity, which must be strictly positive.
func (s *Session) tradeQuantity(trade notion.Page) (decimal.Decimal, bool) {
	prop := trade.Prop(s.cfg.Trade.Quantity)
	if prop.Kind() == notion.KindOther {
		log.Printf("[WARN] trade %s has no quantity property", trade.ID)
		return decimal.Decimal{}, false
	}
	v, ok := prop.Number()
	if !ok || v <= 0 {
		log.Printf("[WARN] trade %s quantity is invalid: %v", trade.ID, v)
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(v), true
}

// holdingNAV reads the holding's best per-unit value: the intraday estimate,
// else the settled unit value. ok is false unless strictly positive.
func (s *Session) holdingNAV(holdingID string) (decimal.Decimal, bool) {
	page, err := s.store.GetPage(holdingID)
	if err != nil {
		log.Printf("[WARN] cannot read holding %s: %v", holdingID, err)
		return decimal.Decimal{}, false
	}
	v, ok := page.Prop(s.cfg.Holding.EstNAV).Number()
	if !ok {
		v, ok = page.Prop(s.cfg.Holding.UnitNAV).Number()
	}
	if !ok || v <= 0 {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(v), true
}
