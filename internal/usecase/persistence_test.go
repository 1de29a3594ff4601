package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"newsease/internal/domain"
	"newsease/internal/infrastructure/storage"
)

func TestPersistenceFallsBackOnCorruptValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	_ = store.Set(ctx, KeyPreferences, []byte("{not json"))
	_ = store.Set(ctx, KeyReadingStats, []byte("[]"))
	_ = store.Set(ctx, KeySearchHistory, []byte(`"oops"`))

	p := NewPersistence(store, 0, nil)

	prefs := p.LoadPreferences(ctx)
	if len(prefs.SelectedCategories) != len(domain.AllCategories()) || prefs.RefreshInterval != domain.RefreshThirtyMinutes {
		t.Fatalf("expected default preferences, got %+v", prefs)
	}
	raw, _, _ := store.Get(ctx, KeyPreferences)
	if !json.Valid(raw) {
		t.Fatalf("defaults should overwrite the corrupt value")
	}

	if stats := p.LoadStats(ctx); stats.TotalRead != 0 || stats.WeeklyGoal != domain.DefaultWeeklyGoal {
		t.Fatalf("expected fresh stats, got %+v", stats)
	}
	if history := p.LoadHistory(ctx); len(history) != 0 {
		t.Fatalf("expected empty history, got %v", history)
	}
}

func TestPersistenceCacheExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	p := NewPersistence(storage.NewMemoryStore(), 30*time.Minute, nil)

	articles := []domain.Article{{ID: "a", Title: "Cached", TrendingScore: 9, IsHot: true}}
	if err := p.CacheArticles(ctx, articles, testNow); err != nil {
		t.Fatalf("cache: %v", err)
	}

	fresh := p.CachedArticles(ctx, testNow.Add(29*time.Minute))
	if len(fresh) != 1 || fresh[0].Title != "Cached" {
		t.Fatalf("expected cached article, got %+v", fresh)
	}
	if fresh[0].TrendingScore != 0 || fresh[0].IsHot {
		t.Fatalf("trending attributes must not be persisted: %+v", fresh[0])
	}

	if stale := p.CachedArticles(ctx, testNow.Add(30*time.Minute)); len(stale) != 0 {
		t.Fatalf("cache should expire after the TTL")
	}

	if err := p.ClearCache(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cleared := p.CachedArticles(ctx, testNow); len(cleared) != 0 {
		t.Fatalf("cache should be empty after clear")
	}
}

func TestPushHistory(t *testing.T) {
	t.Parallel()

	got := pushHistory([]string{"b", "a", "c"}, "a")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected order %v", got)
	}
	if same := pushHistory([]string{"x"}, ""); len(same) != 1 {
		t.Fatalf("empty query should be ignored")
	}
}
