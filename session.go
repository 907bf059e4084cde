package fundsync

import (
	"fmt"

	"github.com/hyliu/fundsync/notion"
)

// Store is the record-store contract the phases run against. *notion.Client
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	Query(databaseID string, filter notion.Filter, cursor string, pageSize int) (notion.QueryResult, error)
	CreatePage(databaseID string, props map[string]notion.Value) (string, error)
	GetPage(pageID string) (notion.Page, error)
	UpdatePage(pageID string, props map[string]notion.Value) error
}

// Feed resolves fund market data. *eastmoney.Resolver satisfies it.
type Feed interface {
	// Valuation resolves the current quote for a 6-digit fund code. It never
	// fails: an unreachable market degrades to a SourceFailed sentinel.
	Valuation(code string) Quote
	// Name resolves only the fund's display name; ok is false when no feed
	// could provide one.
	Name(code string) (name string, ok bool)
}

// Session is the state of one job run: the collaborators, the configuration
// and the memoized lookups whose lifecycle is exactly one run.
type Session struct {
	store Store
	feed  Feed
	cfg   Config

	// dashboard marker discovery is memoized for the run
	dashboardID   string
	dashboardDone bool
}

// NewSession builds a run session around a store and a feed.
func NewSession(cfg Config, store Store, feed Feed) *Session {
	return &Session{store: store, feed: feed, cfg: cfg}
}

// eachPage sweeps a full paginated query, invoking fn for every record. Only
// one page of raw results is held in memory at a time. A failed page fetch
// aborts the sweep: without the cursor there is nothing left to paginate.
func (s *Session) eachPage(databaseID string, filter notion.Filter, pageSize int, fn func(notion.Page) error) error {
	cursor := ""
	for {
		res, err := s.store.Query(databaseID, filter, cursor, pageSize)
		if err != nil {
			return fmt.Errorf("query of database %s failed: %w", databaseID, err)
		}
		for _, page := range res.Results {
			if err := fn(page); err != nil {
				return err
			}
		}
		if !res.HasMore {
			return nil
		}
		cursor = res.NextCursor
	}
}
