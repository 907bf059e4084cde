package fundsync

import (
	"testing"

	"github.com/hyliu/fundsync/notion"
)

func TestTagDashboard(t *testing.T) {
	store := newFakeStore(t)
	store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "notes"),
	})
	markerID := store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "random"),
	})
	store.page(markerID).Icon = &notion.Icon{Type: "emoji", Emoji: "📊"}

	untagged := store.addPage("holdings", map[string]notion.Property{
		"Dashboard": relationProp(t),
	})
	tagged := store.addPage("holdings", map[string]notion.Property{
		"Dashboard": relationProp(t, "elsewhere"),
	})
	store.addPage("holdings", map[string]notion.Property{
		"基金名称": titleProp(t, "旧档案"), // schema without the relation
	})
	s := newTestSession(store, &fakeFeed{})

	stats, err := s.TagDashboard()
	if err != nil {
		t.Fatalf("TagDashboard: %v", err)
	}
	if stats.Total != 2 || stats.Tagged != 1 || stats.Failed != 0 {
		t.Errorf("stats=%+v", stats)
	}
	if refs := store.page(untagged).Prop("Dashboard").Relation(); len(refs) != 1 || refs[0] != markerID {
		t.Errorf("relation=%v, want [%s]", refs, markerID)
	}
	if refs := store.page(tagged).Prop("Dashboard").Relation(); len(refs) != 1 || refs[0] != "elsewhere" {
		t.Errorf("an already tagged holding was rewritten: %v", refs)
	}
}

func TestDashboardMarkerByTitleHint(t *testing.T) {
	store := newFakeStore(t)
	store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "scratch"),
	})
	hinted := store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "资产总览"),
	})
	s := newTestSession(store, &fakeFeed{})

	marker, err := s.dashboardMarker()
	if err != nil {
		t.Fatalf("dashboardMarker: %v", err)
	}
	if marker != hinted {
		t.Errorf("marker=%q, want the hinted page %q", marker, hinted)
	}
}

func TestDashboardMarkerPrefersIconOverHint(t *testing.T) {
	store := newFakeStore(t)
	store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "Dashboard"),
	})
	iconed := store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "random"),
	})
	store.page(iconed).Icon = &notion.Icon{Type: "emoji", Emoji: "📊"}
	s := newTestSession(store, &fakeFeed{})

	marker, err := s.dashboardMarker()
	if err != nil {
		t.Fatalf("dashboardMarker: %v", err)
	}
	if marker != iconed {
		t.Errorf("marker=%q, the icon match outranks the title hint", marker)
	}
}

func TestDashboardMarkerIsMemoized(t *testing.T) {
	store := newFakeStore(t)
	markerID := store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "Dashboard"),
	})
	s := newTestSession(store, &fakeFeed{})

	if _, err := s.dashboardMarker(); err != nil {
		t.Fatalf("dashboardMarker: %v", err)
	}
	delete(store.dbs, "dash") // a second discovery sweep would now find nothing
	marker, err := s.dashboardMarker()
	if err != nil {
		t.Fatalf("memoized dashboardMarker: %v", err)
	}
	if marker != markerID {
		t.Errorf("marker=%q, want the memoized %q", marker, markerID)
	}
}

func TestTagDashboardWithoutMarker(t *testing.T) {
	store := newFakeStore(t)
	store.addPage("dash", map[string]notion.Property{
		"Name": titleProp(t, "nothing to see"),
	})
	store.addPage("holdings", map[string]notion.Property{
		"Dashboard": relationProp(t),
	})
	s := newTestSession(store, &fakeFeed{})

	stats, err := s.TagDashboard()
	if err != nil {
		t.Fatalf("TagDashboard: %v", err)
	}
	if stats.Tagged != 0 || store.updates != 0 {
		t.Errorf("stats=%+v updates=%d, want nothing tagged", stats, store.updates)
	}
}
