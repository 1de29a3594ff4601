package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestToggleBookmarkTwiceRestoresState(t *testing.T) {
	t.Parallel()

	prefs := DefaultPreferences()

	if !prefs.ToggleBookmark("a1") {
		t.Fatalf("first toggle should bookmark")
	}
	if prefs.ToggleBookmark("a1") {
		t.Fatalf("second toggle should remove the bookmark")
	}
	if prefs.BookmarkedArticles.Has("a1") {
		t.Fatalf("bookmark state not restored")
	}
}

func TestMarkReadIsMonotonic(t *testing.T) {
	t.Parallel()

	prefs := DefaultPreferences()
	sequence := []string{"a", "b", "a", "c", "b"}

	previous := 0
	for _, id := range sequence {
		prefs.MarkRead(id)
		if len(prefs.ReadArticles) < previous {
			t.Fatalf("read set shrank after %s", id)
		}
		previous = len(prefs.ReadArticles)
	}
	if previous != 3 {
		t.Fatalf("expected 3 read ids, got %d", previous)
	}
}

func TestToggleCategoryAndSources(t *testing.T) {
	t.Parallel()

	prefs := DefaultPreferences()
	if len(prefs.Categories()) != len(AllCategories()) {
		t.Fatalf("expected all categories selected by default")
	}

	prefs.ToggleCategory(CategorySports)
	if prefs.SelectedCategories.Has(CategorySports) {
		t.Fatalf("sports should be deselected")
	}
	prefs.ToggleCategory(CategorySports)
	if !prefs.SelectedCategories.Has(CategorySports) {
		t.Fatalf("sports should be selected again")
	}

	prefs.BlockSource("tabloid")
	if !prefs.BlockedSources.Has("tabloid") {
		t.Fatalf("source not blocked")
	}
	prefs.UnblockSource("tabloid")
	if prefs.BlockedSources.Has("tabloid") {
		t.Fatalf("source still blocked")
	}
}

func TestPreferencesJSONUsesSortedArrays(t *testing.T) {
	t.Parallel()

	prefs := DefaultPreferences()
	prefs.BookmarkedArticles = NewSet("b", "a")
	prefs.LastLocation = &UserLocation{Latitude: 1, Longitude: 2, Timestamp: time.Unix(0, 0).UTC()}

	raw, err := json.Marshal(prefs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal fields: %v", err)
	}
	if string(fields["bookmarkedArticles"]) != `["a","b"]` {
		t.Fatalf("unexpected bookmarks encoding: %s", fields["bookmarkedArticles"])
	}

	var decoded Preferences
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !decoded.BookmarkedArticles.Has("a") || decoded.ReadArticles == nil {
		t.Fatalf("decoded sets incomplete: %+v", decoded)
	}
}

func TestNormalizeFillsMissingSets(t *testing.T) {
	t.Parallel()

	var prefs Preferences
	if err := json.Unmarshal([]byte(`{"preferredCountry":"de"}`), &prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	prefs.Normalize()

	if prefs.PreferredCountry != "de" {
		t.Fatalf("country lost: %q", prefs.PreferredCountry)
	}
	if len(prefs.SelectedCategories) != len(AllCategories()) || prefs.BookmarkedArticles == nil {
		t.Fatalf("sets not normalised: %+v", prefs)
	}
	if prefs.RefreshInterval.Duration() != 30*time.Minute {
		t.Fatalf("unexpected refresh interval %s", prefs.RefreshInterval)
	}
}

func TestLocationMessage(t *testing.T) {
	t.Parallel()

	if LocationMessage(nil) != "" {
		t.Fatalf("expected empty message for nil error")
	}
	if AuthorizationAuthorized.Err() != nil {
		t.Fatalf("authorised status should not error")
	}
	msg := LocationMessage(AuthorizationDenied.Err())
	if msg == "" || msg != LocationMessage(AuthorizationRestricted.Err()) {
		t.Fatalf("denied and restricted should share a settings hint, got %q", msg)
	}
}

func TestParseRefreshInterval(t *testing.T) {
	t.Parallel()

	cases := map[string]RefreshInterval{
		"15min":   RefreshFifteenMinutes,
		" 1Hour ": RefreshOneHour,
		"manual":  RefreshManual,
	}
	for raw, want := range cases {
		got, err := ParseRefreshInterval(raw)
		if err != nil || got != want {
			t.Fatalf("parse %q: got %q err %v", raw, got, err)
		}
	}

	if _, err := ParseRefreshInterval("5min"); err == nil {
		t.Fatalf("expected error for unknown interval")
	}
}
