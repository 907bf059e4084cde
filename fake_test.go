package fundsync

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	"github.com/hyliu/fundsync/notion"
)

// This file holds the in-memory test doubles the phase tests run against:
// a record store with just enough filter semantics, and a canned feed.

// --- property fixtures ---

// prop builds a notion.Property from its read-side wire shape.
func prop(t *testing.T, wire map[string]any) notion.Property {
	t.Helper()
	data, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("cannot marshal property fixture: %v", err)
	}
	var p notion.Property
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("cannot unmarshal property fixture: %v", err)
	}
	return p
}

func textProp(t *testing.T, s string) notion.Property {
	spans := []any{}
	if s != "" {
		spans = append(spans, map[string]any{"plain_text": s})
	}
	return prop(t, map[string]any{"type": "rich_text", "rich_text": spans})
}

func titleProp(t *testing.T, s string) notion.Property {
	spans := []any{}
	if s != "" {
		spans = append(spans, map[string]any{"plain_text": s})
	}
	return prop(t, map[string]any{"type": "title", "title": spans})
}

func numberProp(t *testing.T, v float64) notion.Property {
	return prop(t, map[string]any{"type": "number", "number": v})
}

func formulaNumberProp(t *testing.T, v float64) notion.Property {
	return prop(t, map[string]any{"type": "formula", "formula": map[string]any{"type": "number", "number": v}})
}

func rollupNumberProp(t *testing.T, v float64) notion.Property {
	return prop(t, map[string]any{"type": "rollup", "rollup": map[string]any{"type": "number", "number": v}})
}

func relationProp(t *testing.T, ids ...string) notion.Property {
	refs := []any{}
	for _, id := range ids {
		refs = append(refs, map[string]any{"id": id})
	}
	return prop(t, map[string]any{"type": "relation", "relation": refs})
}

// --- fake store ---

type fakeStore struct {
	t     *testing.T
	dbs   map[string][]string     // database id -> page ids, insertion order
	pages map[string]*notion.Page // page id -> page
	seq   int                     // id sequence

	updates int // count of UpdatePage calls
	creates int // count of CreatePage calls
	failing map[string]bool
}

func newFakeStore(t *testing.T) *fakeStore {
	return &fakeStore{
		t:       t,
		dbs:     make(map[string][]string),
		pages:   make(map[string]*notion.Page),
		failing: make(map[string]bool),
	}
}

// addPage seeds a page into a database and returns its id.
func (f *fakeStore) addPage(db string, props map[string]notion.Property) string {
	f.seq++
	id := fmt.Sprintf("%s-%d", db, f.seq)
	page := &notion.Page{ID: id, CreatedTime: "2000-01-01T00:00:00+08:00", Properties: props}
	f.pages[id] = page
	f.dbs[db] = append(f.dbs[db], id)
	return id
}

func (f *fakeStore) page(id string) *notion.Page { return f.pages[id] }

func (f *fakeStore) Query(db string, filter notion.Filter, cursor string, pageSize int) (notion.QueryResult, error) {
	var matched []notion.Page
	for _, id := range f.dbs[db] {
		if f.matches(*f.pages[id], filter) {
			matched = append(matched, *f.pages[id])
		}
	}
	start := 0
	if cursor != "" {
		start, _ = strconv.Atoi(cursor)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	res := notion.QueryResult{Results: matched[start:end]}
	if end < len(matched) {
		res.HasMore = true
		res.NextCursor = strconv.Itoa(end)
	}
	return res, nil
}

func (f *fakeStore) CreatePage(db string, props map[string]notion.Value) (string, error) {
	f.creates++
	id := f.addPage(db, nil)
	f.pages[id].Properties = map[string]notion.Property{}
	f.apply(f.pages[id], props)
	return id, nil
}

func (f *fakeStore) GetPage(id string) (notion.Page, error) {
	page, ok := f.pages[id]
	if !ok {
		return notion.Page{}, fmt.Errorf("no such page %s", id)
	}
	return *page, nil
}

func (f *fakeStore) UpdatePage(id string, props map[string]notion.Value) error {
	if f.failing[id] {
		return fmt.Errorf("patch of %s refused", id)
	}
	page, ok := f.pages[id]
	if !ok {
		return fmt.Errorf("no such page %s", id)
	}
	f.updates++
	f.apply(page, props)
	return nil
}

// apply merges encoded values into a page, mimicking what Notion stores.
func (f *fakeStore) apply(page *notion.Page, props map[string]notion.Value) {
	for name, value := range props {
		page.Properties[name] = f.decodeValue(value)
	}
}

// decodeValue converts a write-side Value into the read-side Property the
// store would return afterwards.
func (f *fakeStore) decodeValue(v notion.Value) notion.Property {
	wire := map[string]any{}
	for key, payload := range v {
		wire["type"] = key
		switch key {
		case "title", "rich_text":
			spans := []any{}
			for _, span := range payload.([]any) {
				content := span.(map[string]any)["text"].(map[string]any)["content"]
				spans = append(spans, map[string]any{"plain_text": content})
			}
			wire[key] = spans
		case "relation":
			wire[key] = payload
		case "number", "select", "date":
			wire[key] = payload
		default:
			f.t.Fatalf("fake store cannot decode value kind %q", key)
		}
	}
	return prop(f.t, wire)
}

// matches evaluates the few filter predicates the phases use.
func (f *fakeStore) matches(page notion.Page, filter notion.Filter) bool {
	if filter == nil {
		return true
	}
	if parts, ok := filter["and"]; ok {
		for _, part := range parts.([]any) {
			if !f.matches(page, part.(notion.Filter)) {
				return false
			}
		}
		return true
	}
	if ts, ok := filter["timestamp"]; ok && ts == "created_time" {
		cond := filter["created_time"].(map[string]any)
		return page.CreatedTime >= cond["on_or_after"].(string)
	}
	name := filter["property"].(string)
	p := page.Prop(name)
	if cond, ok := filter["rich_text"]; ok {
		c := cond.(map[string]any)
		if want, ok := c["equals"]; ok {
			return p.Text() == want.(string)
		}
		if want, ok := c["is_not_empty"]; ok && want.(bool) {
			return p.Text() != ""
		}
	}
	if cond, ok := filter["relation"]; ok {
		c := cond.(map[string]any)
		if want, ok := c["is_empty"]; ok && want.(bool) {
			return !p.HasRelation()
		}
		if want, ok := c["is_not_empty"]; ok && want.(bool) {
			return p.HasRelation()
		}
	}
	if cond, ok := filter["number"]; ok {
		c := cond.(map[string]any)
		if want, ok := c["greater_than"]; ok {
			v, valid := p.Number()
			return valid && v > want.(float64)
		}
	}
	f.t.Fatalf("fake store cannot evaluate filter %v", filter)
	return false
}

// newTestSession wires a session around the fakes with the default schema
// and well-known database ids.
func newTestSession(store Store, feed Feed) *Session {
	cfg := DefaultConfig()
	cfg.Token = "secret"
	cfg.HoldingsDB = "holdings"
	cfg.TradesDB = "trades"
	cfg.DashboardDB = "dash"
	return NewSession(cfg, store, feed)
}

// --- fake feed ---

type fakeFeed struct {
	names  map[string]string
	quotes map[string]Quote

	nameCalls int
}

func (f *fakeFeed) Name(code string) (string, bool) {
	f.nameCalls++
	name, ok := f.names[code]
	return name, ok
}

func (f *fakeFeed) Valuation(code string) Quote {
	if q, ok := f.quotes[code]; ok {
		return q
	}
	return Quote{Source: SourceFailed}
}
