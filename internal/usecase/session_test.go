package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"newsease/internal/domain"
	"newsease/internal/feed"
	"newsease/internal/infrastructure/storage"
	"newsease/internal/ports"
)

var testNow = time.Date(2025, time.September, 9, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu        sync.Mutex
	feed      []domain.Article
	results   []domain.Article
	fetches   []ports.FetchRequest
	searches  []string
	headlines []domain.Category
	err       error
}

func (f *fakeSource) Fetch(_ context.Context, req ports.FetchRequest) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches = append(f.fetches, req)
	return cloneAll(f.feed), f.err
}

func (f *fakeSource) Search(_ context.Context, query string, _ []domain.Category) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	return cloneAll(f.results), f.err
}

func (f *fakeSource) TopHeadlines(_ context.Context, _ string, category domain.Category) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headlines = append(f.headlines, category)
	return cloneAll(f.feed), f.err
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

type fakeLocation struct {
	status domain.AuthorizationStatus
	coord  *domain.Coordinate
	err    error
}

func (l fakeLocation) Status() domain.AuthorizationStatus { return l.status }

func (l fakeLocation) CurrentLocation(context.Context) (*domain.Coordinate, error) {
	return l.coord, l.err
}

func (l fakeLocation) Address(context.Context) (string, error) { return "Testville", nil }

func cloneAll(in []domain.Article) []domain.Article {
	out := make([]domain.Article, len(in))
	copy(out, in)
	return out
}

func article(id, title string, c domain.Category, source string, age time.Duration) domain.Article {
	return domain.Article{
		ID:          id,
		Title:       title,
		Description: title + " description",
		Source:      domain.Source{ID: source, Name: source},
		PublishedAt: testNow.Add(-age),
		URL:         "https://example.com/" + id,
		Category:    c,
	}
}

func sampleFeed() []domain.Article {
	return []domain.Article{
		article("a", "Quantum chips arrive", domain.CategoryTechnology, "tech-insider", time.Hour),
		article("b", "Markets rally on chips", domain.CategoryBusiness, "market-watch", 2*time.Hour),
		article("c", "Final breaks records", domain.CategorySports, "news-central", 3*time.Hour),
	}
}

func newTestSession(t *testing.T, src *fakeSource, store ports.KeyValueStore) *Session {
	t.Helper()
	if store == nil {
		store = storage.NewMemoryStore()
	}
	return NewSession(SessionDeps{
		Source: src,
		Store:  store,
		Zone:   time.UTC,
		Now:    func() time.Time { return testNow },
	})
}

func TestLoadInitialRefreshesWhenCacheEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	src := &fakeSource{feed: sampleFeed()}
	s := newTestSession(t, src, store)

	fetched, err := s.LoadInitial(ctx)
	if err != nil {
		t.Fatalf("load initial: %v", err)
	}
	if !fetched || src.fetchCount() != 1 {
		t.Fatalf("expected one fetch, got %d", src.fetchCount())
	}
	if got := len(s.Articles()); got != 3 {
		t.Fatalf("expected 3 articles, got %d", got)
	}
	if req := src.fetches[0]; len(req.Categories) != len(domain.AllCategories()) || req.Country != "us" || req.Language != "en" {
		t.Fatalf("unexpected fetch request %+v", req)
	}

	if _, found, _ := store.Get(ctx, KeyPreferences); !found {
		t.Fatalf("default preferences should be persisted")
	}
	if _, found, _ := store.Get(ctx, KeyCachedArticles); !found {
		t.Fatalf("fetched articles should be cached")
	}

	again := newTestSession(t, src, store)
	fetched, err = again.LoadInitial(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if fetched || src.fetchCount() != 1 {
		t.Fatalf("valid cache should avoid a fetch")
	}
	if len(again.Articles()) != 3 {
		t.Fatalf("expected cached articles")
	}

	if err := again.ClearCache(ctx); err != nil {
		t.Fatalf("clear cache: %v", err)
	}
	if len(again.Articles()) != 3 {
		t.Fatalf("clearing the cache should keep the loaded collection")
	}
	third := newTestSession(t, src, store)
	if fetched, err := third.LoadInitial(ctx); err != nil || !fetched || src.fetchCount() != 2 {
		t.Fatalf("cleared cache should force a fetch: fetched=%v err=%v count=%d", fetched, err, src.fetchCount())
	}
}

func TestToggleBookmarkAndBookmarksOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := newTestSession(t, &fakeSource{feed: sampleFeed()}, store)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if !s.ToggleBookmark(ctx, "b") {
		t.Fatalf("first toggle should bookmark")
	}
	s.SetSearchText("quantum")
	s.SelectCategory(domain.CategoryTechnology)
	if !s.ToggleBookmarksOnly() {
		t.Fatalf("bookmarks-only should be on")
	}

	visible := s.Visible(feed.FeedLimit)
	if len(visible) != 1 || visible[0].ID != "b" || !visible[0].Bookmarked {
		t.Fatalf("bookmarks-only should ignore search and category, got %+v", visible)
	}

	raw, _, _ := store.Get(ctx, KeyPreferences)
	var stored domain.Preferences
	if err := json.Unmarshal(raw, &stored); err != nil || !stored.BookmarkedArticles.Has("b") {
		t.Fatalf("bookmark not persisted: %s", raw)
	}

	if s.ToggleBookmark(ctx, "b") {
		t.Fatalf("second toggle should clear the bookmark")
	}
	if len(s.Bookmarks()) != 0 {
		t.Fatalf("bookmark state should return to original")
	}
}

func TestMarkAsReadCountsEveryCall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSession(t, &fakeSource{feed: sampleFeed()}, nil)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := s.MarkAsRead(ctx, "a"); err != nil {
			t.Fatalf("mark read: %v", err)
		}
	}
	if err := s.MarkAsRead(ctx, "missing"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	stats := s.Stats()
	if stats.TotalRead != 2 || stats.PerCategory[domain.CategoryTechnology] != 2 || stats.ReadToday != 2 || stats.CurrentStreak != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if read := s.ReadArticles(); len(read) != 1 || !read[0].Read {
		t.Fatalf("unexpected read articles %+v", read)
	}
	if !s.Preferences().ReadArticles.Has("a") {
		t.Fatalf("read id missing from preferences")
	}
	if sum := s.Summary(); sum.Unread != 2 || sum.Total != 3 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestSearchUpdatesHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := &fakeSource{results: []domain.Article{
		article("s1", "Solar power booms", domain.CategoryScience, "news-central", time.Hour),
	}}
	s := newTestSession(t, src, nil)

	if err := s.Search(ctx, "   "); err != nil {
		t.Fatalf("blank search: %v", err)
	}
	if len(src.searches) != 0 {
		t.Fatalf("blank search should not hit the source")
	}

	for _, q := range []string{"solar", "wind", " solar "} {
		if err := s.Search(ctx, q); err != nil {
			t.Fatalf("search %q: %v", q, err)
		}
	}

	history := s.SearchHistory()
	if len(history) != 2 || history[0] != "solar" || history[1] != "wind" {
		t.Fatalf("unexpected history %v", history)
	}
	if visible := s.Visible(feed.NoLimit); len(visible) != 1 || visible[0].ID != "s1" {
		t.Fatalf("unexpected search listing %+v", visible)
	}

	s.ClearSearchHistory(ctx)
	if len(s.SearchHistory()) != 0 {
		t.Fatalf("history not cleared")
	}
}

func TestSearchHistoryCap(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	s := newTestSession(t, &fakeSource{}, store)

	for _, q := range strings.Fields("a b c d e f g h i j k l") {
		s.AddToSearchHistory(ctx, q)
	}
	s.AddToSearchHistory(ctx, "")

	history := s.SearchHistory()
	if len(history) != SearchHistoryLimit || history[0] != "l" || history[9] != "c" {
		t.Fatalf("unexpected history %v", history)
	}

	restored := NewPersistence(store, 0, nil).LoadHistory(ctx)
	if len(restored) != SearchHistoryLimit || restored[0] != "l" {
		t.Fatalf("history not persisted: %v", restored)
	}
}

func TestRefreshLocation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	coord := &domain.Coordinate{Latitude: 1, Longitude: 2}

	src := &fakeSource{feed: sampleFeed()}
	s := NewSession(SessionDeps{
		Source:   src,
		Location: fakeLocation{status: domain.AuthorizationAuthorized, coord: coord},
		Now:      func() time.Time { return testNow },
	})
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if src.fetches[0].Location != coord || s.LocationMessage() != "" {
		t.Fatalf("expected coordinate in request")
	}
	if last := s.Preferences().LastLocation; last == nil || last.Latitude != 1 || last.City != "Testville" {
		t.Fatalf("last location not recorded: %+v", last)
	}

	denied := &fakeSource{feed: sampleFeed()}
	d := NewSession(SessionDeps{
		Source:   denied,
		Location: fakeLocation{status: domain.AuthorizationDenied},
	})
	if err := d.Refresh(ctx); err != nil {
		t.Fatalf("denied location must not fail refresh: %v", err)
	}
	if denied.fetches[0].Location != nil || !strings.Contains(d.LocationMessage(), "Location access is required") {
		t.Fatalf("unexpected location handling: %+v %q", denied.fetches[0], d.LocationMessage())
	}

	d.SetLocationBasedNews(ctx, false)
	if err := d.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if d.LocationMessage() != "" {
		t.Fatalf("message should clear when local news is off")
	}
}

func TestRefreshErrorsKeepArticles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	src := &fakeSource{feed: sampleFeed()}
	s := newTestSession(t, src, nil)
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	boom := errors.New("boom")
	src.err = boom
	if err := s.Refresh(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if len(s.Articles()) != 3 || s.Loading() {
		t.Fatalf("failed refresh must keep articles and clear loading")
	}

	if err := NewSession(SessionDeps{}).Refresh(ctx); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestBlockSourceAndStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSession(t, &fakeSource{feed: sampleFeed()}, nil)

	if got := s.StatusMessage(); got != "No articles available" {
		t.Fatalf("unexpected empty status %q", got)
	}
	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := s.StatusMessage(); got != "3 articles" {
		t.Fatalf("unexpected status %q", got)
	}

	s.BlockSource(ctx, "market-watch")
	if got := s.StatusMessage(); got != "2 articles" {
		t.Fatalf("blocked source still visible: %q", got)
	}
	s.UnblockSource(ctx, "market-watch")
	if len(s.Visible(feed.NoLimit)) != 3 {
		t.Fatalf("unblock should restore articles")
	}

	s.ToggleCategory(ctx, domain.CategorySports)
	if s.Preferences().SelectedCategories.Has(domain.CategorySports) {
		t.Fatalf("category toggle ignored")
	}
}

func TestTrendingShareAndDownload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSession(t, &fakeSource{feed: sampleFeed()}, nil)
	if err := s.TopHeadlines(ctx); err != nil {
		t.Fatalf("headlines: %v", err)
	}

	analysis := s.Trending()
	if len(analysis.Topics) == 0 || analysis.Keywords.Count("chips") != 4 {
		t.Fatalf("unexpected analysis %+v", analysis.Topics)
	}

	text, err := s.ShareText("a")
	if err != nil || text != "Quantum chips arrive\n\nQuantum chips arrive description\n\nRead more: https://example.com/a" {
		t.Fatalf("unexpected share text %q err=%v", text, err)
	}

	downloaded, err := s.DownloadForOffline("a")
	if err != nil || !downloaded.Downloaded || downloaded.DownloadedContent == "" {
		t.Fatalf("unexpected download %+v err=%v", downloaded, err)
	}
	if _, err := s.DownloadForOffline("zzz"); !errors.Is(err, ErrArticleNotFound) {
		t.Fatalf("expected not found")
	}
}
