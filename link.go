package fundsync

import (
	"fmt"
	"log"

	"github.com/hyliu/fundsync/notion"
)

// This file implements the linking phase: trades without a holding relation
// are matched to (or create) their holding, and fund names are backfilled.

// LinkStats counts the outcome of one linking sweep.
type LinkStats struct {
	Processed int // trades examined
	Created   int // holdings created
	Linked    int // relations written
	Named     int // trade display names written
}

func (s LinkStats) String() string {
	return fmt.Sprintf("TRADES Done. processed=%d, created_holdings=%d, linked=%d, named=%d",
		s.Processed, s.Created, s.Linked, s.Named)
}

// LinkTrades sweeps every trade that has a parseable code and no holding
// relation yet, restricted to trades created today (UTC+8) when todayOnly is
// set. Re-running is a no-op: the driving filter only matches unlinked
// trades.
func (s *Session) LinkTrades(todayOnly bool) (LinkStats, error) {
	var stats LinkStats

	parts := []notion.Filter{
		notion.TextNotEmpty(s.cfg.Trade.Code),
		notion.RelationEmpty(s.cfg.Trade.Relation),
	}
	if todayOnly {
		parts = append(parts, notion.CreatedOnOrAfter(TodayCN()))
	}
	filter := notion.And(parts...)

	err := s.eachPage(s.cfg.TradesDB, filter, s.cfg.TradePageSize, func(trade notion.Page) error {
		stats.Processed++

		code := Zpad6(trade.Prop(s.cfg.Trade.Code).Text())
		if code == "" {
			// not an error: a trade without digits in its code is simply not actionable
			return nil
		}

		holdingID, err := s.findHoldingByCode(code)
		if err != nil {
			return err
		}
		fetchedName := ""
		if holdingID == "" {
			if name, ok := s.feed.Name(code); ok {
				fetchedName = name
			} else {
				fetchedName = code
			}
			holdingID, err = s.createHolding(code, fetchedName)
			if err != nil {
				return err
			}
			stats.Created++
		}

		if err := s.backfillHoldingTitle(holdingID, code, fetchedName); err != nil {
			return err
		}

		if err := s.store.UpdatePage(trade.ID, map[string]notion.Value{
			s.cfg.Trade.Relation: notion.Relation(holdingID),
		}); err != nil {
			return fmt.Errorf("cannot link trade %s: %w", trade.ID, err)
		}
		stats.Linked++

		if fetchedName == "" {
			fetchedName = s.resolveName(holdingID, code)
		}
		named, err := s.setTradeName(trade.ID, fetchedName)
		if err != nil {
			return err
		}
		if named {
			stats.Named++
		}

		// metrics are refreshed immediately so a freshly linked trade does
		// not wait for the batch pass
		s.updateTradeMetrics(trade.ID, holdingID)

		log.Printf("[OK] trade %s -> holding %s (code=%s, name=%s)", trade.ID, holdingID, code, fetchedName)
		return nil
	})
	return stats, err
}

// findHoldingByCode returns the id of the holding with this exact code, or
// "" when none exists.
func (s *Session) findHoldingByCode(code string) (string, error) {
	res, err := s.store.Query(s.cfg.HoldingsDB, notion.TextEquals(s.cfg.Holding.Code, code), "", 1)
	if err != nil {
		return "", fmt.Errorf("cannot look up holding for code %s: %w", code, err)
	}
	if len(res.Results) == 0 {
		return "", nil
	}
	return res.Results[0].ID, nil
}

// createHolding creates a holding page titled with the fund name, falling
// back to the bare code.
func (s *Session) createHolding(code, name string) (string, error) {
	if name == "" {
		name = code
	}
	id, err := s.store.CreatePage(s.cfg.HoldingsDB, map[string]notion.Value{
		s.cfg.Holding.Title: notion.Title(name),
		s.cfg.Holding.Code:  notion.Text(code),
	})
	if err != nil {
		return "", fmt.Errorf("cannot create holding for code %s: %w", code, err)
	}
	return id, nil
}

// backfillHoldingTitle patches the holding title when it is still unset
// (empty, numeric, or a bare code). Running on every processed trade lets
// manually cleared titles self-heal.
func (s *Session) backfillHoldingTitle(holdingID, code, fetchedName string) error {
	title, err := s.holdingTitle(holdingID)
	if err != nil {
		return err
	}
	if !TitleUnset(title, code) {
		return nil
	}
	name := fetchedName
	if name == "" {
		if n, ok := s.feed.Name(code); ok {
			name = n
		} else {
			name = code
		}
	}
	if err := s.store.UpdatePage(holdingID, map[string]notion.Value{
		s.cfg.Holding.Title: notion.Title(name),
	}); err != nil {
		return fmt.Errorf("cannot backfill title of holding %s: %w", holdingID, err)
	}
	return nil
}

func (s *Session) holdingTitle(holdingID string) (string, error) {
	page, err := s.store.GetPage(holdingID)
	if err != nil {
		return "", fmt.Errorf("cannot read holding %s: %w", holdingID, err)
	}
	return page.Prop(s.cfg.Holding.Title).Text(), nil
}

// resolveName returns the best display name available: the holding's title,
// else a fresh feed lookup, else the bare code.
func (s *Session) resolveName(holdingID, code string) string {
	if title, err := s.holdingTitle(holdingID); err == nil && title != "" {
		return title
	}
	if name, ok := s.feed.Name(code); ok {
		return name
	}
	return code
}

// setTradeName writes the resolved name into the trade's display-name
// property, but only when the schema exposes it as a title or rich_text
// field; a formula or any other kind cannot be written and is a silent
// no-op. Reports whether a name was written.
func (s *Session) setTradeName(tradeID, name string) (bool, error) {
	if name == "" {
		return false, nil
	}
	page, err := s.store.GetPage(tradeID)
	if err != nil {
		return false, fmt.Errorf("cannot read trade %s: %w", tradeID, err)
	}
	var value notion.Value
	switch page.Prop(s.cfg.Trade.Name).Kind() {
	case notion.KindTitle:
		value = notion.Title(name)
	case notion.KindText:
		value = notion.Text(name)
	default:
		return false, nil
	}
	if err := s.store.UpdatePage(tradeID, map[string]notion.Value{s.cfg.Trade.Name: value}); err != nil {
		return false, fmt.Errorf("cannot name trade %s: %w", tradeID, err)
	}
	return true, nil
}
