package fundsync

import (
	"fmt"
	"log"
)

// Mode selects which phases a run performs. Whatever the mode, the metric
// pass runs last whenever a trades database is configured.
type Mode string

const (
	ModeLink     Mode = "link"
	ModeMarket   Mode = "market"
	ModePosition Mode = "position"
	ModeAll      Mode = "all"
)

// ParseMode parses a mode argument; the empty string means ModeAll.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAll, nil
	case ModeLink, ModeMarket, ModePosition, ModeAll:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (want link, market, position or all)", s)
	}
}

// Run executes the phases selected by mode, sequentially. Phases are not
// isolated from each other: the first phase error terminates the run.
// A missing trades database only degrades the phases that need it.
func (s *Session) Run(mode Mode, todayOnly bool) error {
	if mode == ModeLink || mode == ModeAll {
		if s.cfg.TradesDB == "" {
			log.Printf("[WARN] TRADES_DB_ID is not set, skipping trade linking")
		} else {
			stats, err := s.LinkTrades(todayOnly)
			if err != nil {
				return err
			}
			log.Println(stats)
		}
	}

	if mode == ModeMarket || mode == ModeAll {
		stats, err := s.UpdateMarket()
		if err != nil {
			return err
		}
		log.Println(stats)

		if s.cfg.DashboardDB != "" {
			dash, err := s.TagDashboard()
			if err != nil {
				return err
			}
			log.Println(dash)
		}
	}

	if mode == ModePosition || mode == ModeAll {
		stats, err := s.UpdateWeights()
		if err != nil {
			return err
		}
		log.Println(stats)
	}

	// every mode refreshes trade metrics as its final step
	if s.cfg.TradesDB == "" {
		log.Printf("[WARN] TRADES_DB_ID is not set, skipping trade metrics")
		return nil
	}
	stats, err := s.RecalcTradeMetrics()
	if err != nil {
		return err
	}
	log.Println(stats)
	return nil
}
