package fundsync

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/hyliu/fundsync/notion"
)

// This file implements the position phase: each holding's share of total
// cost basis is written back as a fraction in [0, 1].

// PositionStats counts the outcome of one weighting sweep.
type PositionStats struct {
	Total     int // holdings with a resolvable cost
	Updated   int
	Failed    int
	TotalCost decimal.Decimal
	Skipped   bool // true when the whole pass was aborted
}

func (s PositionStats) String() string {
	if s.Skipped {
		return fmt.Sprintf("POSITION skipped: total_cost=%s is not positive", s.TotalCost)
	}
	return fmt.Sprintf("POSITION Done. updated=%d/%d, total_cost=%s", s.Updated, s.Total, s.TotalCost)
}

// UpdateWeights computes every holding's portfolio weight as its cost basis
// divided by the total cost basis. When the total is not strictly positive
// the pass performs no writes at all: there is nothing meaningful to
// normalize against.
func (s *Session) UpdateWeights() (PositionStats, error) {
	var stats PositionStats

	// Aggregation needs the full cost list; it is bounded by the number of
	// holdings, never by trades.
	type holdingCost struct {
		id   string
		cost decimal.Decimal
	}
	var costs []holdingCost
	total := decimal.Zero
	err := s.eachPage(s.cfg.HoldingsDB, nil, s.cfg.HoldingPageSize, func(holding notion.Page) error {
		if v, ok := holding.Prop(s.cfg.Holding.Cost).Number(); ok {
			c := decimal.NewFromFloat(v)
			costs = append(costs, holdingCost{id: holding.ID, cost: c})
			total = total.Add(c)
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	stats.Total = len(costs)
	stats.TotalCost = total
	log.Printf("[POSITION] total_cost=%s", total)

	if !total.IsPositive() {
		stats.Skipped = true
		log.Printf("[POSITION] total cost is not positive, skipping weight writes")
		return stats, nil
	}

	for _, hc := range costs {
		weight := hc.cost.Div(total)
		if err := s.store.UpdatePage(hc.id, map[string]notion.Value{
			s.cfg.Holding.Weight: notion.Number(weight.InexactFloat64()),
		}); err != nil {
			log.Printf("[ERR] POSITION %s: %v", hc.id, err)
			stats.Failed++
			continue
		}
		stats.Updated++
	}
	return stats, nil
}
