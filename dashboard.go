package fundsync

import (
	"fmt"
	"log"
	"strings"

	"github.com/hyliu/fundsync/notion"
)

// This file implements the optional dashboard tagger: every holding gets a
// relation to a single marker page (the ledger's dashboard), so the
// dashboard's rollups can see all holdings. The feature is orthogonal to
// valuation and metrics and only runs when a dashboard database is
// configured.

const dashboardEmoji = "📊"

// Marker discovery heuristics, in priority order after the icon match.
var dashboardTitleHints = []string{"总览", "Dashboard"}

// DashStats counts the outcome of one tagging sweep.
type DashStats struct {
	Total  int // holdings examined that expose the relation
	Tagged int
	Failed int
}

func (s DashStats) String() string {
	return fmt.Sprintf("DASHBOARD Done. tagged=%d, failed=%d, total=%d", s.Tagged, s.Failed, s.Total)
}

// TagDashboard links every holding with an empty dashboard relation to the
// discovered marker page. Holdings already tagged are left alone.
func (s *Session) TagDashboard() (DashStats, error) {
	var stats DashStats

	marker, err := s.dashboardMarker()
	if err != nil {
		return stats, err
	}
	if marker == "" {
		log.Printf("[WARN] no dashboard marker page found, skipping tagging")
		return stats, nil
	}

	err = s.eachPage(s.cfg.HoldingsDB, nil, s.cfg.HoldingPageSize, func(holding notion.Page) error {
		prop := holding.Prop(s.cfg.Holding.Dashboard)
		if prop.Kind() != notion.KindRelation {
			return nil
		}
		stats.Total++
		if prop.HasRelation() {
			return nil
		}
		if err := s.store.UpdatePage(holding.ID, map[string]notion.Value{
			s.cfg.Holding.Dashboard: notion.Relation(marker),
		}); err != nil {
			log.Printf("[ERR] DASHBOARD %s: %v", holding.ID, err)
			stats.Failed++
			return nil
		}
		stats.Tagged++
		return nil
	})
	return stats, err
}

// dashboardMarker discovers the marker page: first page whose icon is the
// dashboard emoji, else whose title contains one of the hints, tried in
// order. The result, found or not, is memoized for the run.
func (s *Session) dashboardMarker() (string, error) {
	if s.dashboardDone {
		return s.dashboardID, nil
	}

	var pages []notion.Page
	err := s.eachPage(s.cfg.DashboardDB, nil, s.cfg.HoldingPageSize, func(page notion.Page) error {
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return "", err
	}

	for _, page := range pages {
		if page.Icon != nil && page.Icon.Type == "emoji" && page.Icon.Emoji == dashboardEmoji {
			s.dashboardID, s.dashboardDone = page.ID, true
			return page.ID, nil
		}
	}
	for _, hint := range dashboardTitleHints {
		for _, page := range pages {
			if strings.Contains(pageTitle(page), hint) {
				s.dashboardID, s.dashboardDone = page.ID, true
				return page.ID, nil
			}
		}
	}
	s.dashboardDone = true
	return "", nil
}

// pageTitle returns the text of a page's title property, whatever it is
// named in that database's schema.
func pageTitle(page notion.Page) string {
	for _, prop := range page.Properties {
		if prop.Kind() == notion.KindTitle {
			return prop.Text()
		}
	}
	return ""
}
