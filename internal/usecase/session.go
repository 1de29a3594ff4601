package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"newsease/internal/domain"
	"newsease/internal/feed"
	"newsease/internal/ports"
	"newsease/internal/trending"
)

// ErrArticleNotFound is returned for ids missing from the current collection.
var ErrArticleNotFound = errors.New("article not found")

const offlinePlaceholder = `This is the full downloaded content of the article. In a real app, this would be fetched from the article's URL and cached locally for offline reading.

The content would include the complete article text, formatted for optimal reading experience. Users could access this content even without an internet connection.`

// SessionDeps wires driven adapters into a Session.
type SessionDeps struct {
	Source   ports.ArticleSource
	Store    ports.KeyValueStore
	Location ports.LocationProvider
	Engine   *trending.Engine
	Logger   *slog.Logger
	CacheTTL time.Duration
	Zone     *time.Location
	Now      func() time.Time
}

// Session owns the article collection, preference context, reading stats,
// search history and filter query. All state changes are serialised by one
// mutex; source calls run outside it.
type Session struct {
	mu sync.Mutex

	source   ports.ArticleSource
	location ports.LocationProvider
	engine   *trending.Engine
	persist  *Persistence
	logger   *slog.Logger
	zone     *time.Location
	now      func() time.Time

	articles    []domain.Article
	prefs       domain.Preferences
	stats       domain.ReadingStats
	history     []string
	query       feed.Query
	loading     int
	refreshedAt time.Time
	locationMsg string
}

// NewSession builds a session with default preferences. Call LoadInitial to
// restore persisted state.
func NewSession(deps SessionDeps) *Session {
	engine := deps.Engine
	if engine == nil {
		engine = trending.NewEngine()
	}
	zone := deps.Zone
	if zone == nil {
		zone = time.Local
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Session{
		source:   deps.Source,
		location: deps.Location,
		engine:   engine,
		persist:  NewPersistence(deps.Store, deps.CacheTTL, deps.Logger),
		logger:   deps.Logger,
		zone:     zone,
		now:      now,
		articles: []domain.Article{},
		prefs:    domain.DefaultPreferences(),
		stats:    domain.NewReadingStats(),
		history:  []string{},
	}
}

// LoadInitial restores preferences, stats, history and cached articles,
// refreshing from the source when the cache is empty or expired. fetched
// reports whether that refresh ran.
func (s *Session) LoadInitial(ctx context.Context) (fetched bool, err error) {
	prefs := s.persist.LoadPreferences(ctx)
	stats := s.persist.LoadStats(ctx)
	history := s.persist.LoadHistory(ctx)
	cached := s.persist.CachedArticles(ctx, s.clock())

	s.mu.Lock()
	s.prefs = prefs
	s.stats = stats
	s.history = history
	s.setArticlesLocked(cached)
	empty := len(s.articles) == 0
	s.mu.Unlock()

	s.debug("session restored", "cached_articles", len(cached), "history", len(history))

	if !empty {
		return false, nil
	}
	return true, s.Refresh(ctx)
}

// Preferences returns a copy of the preference context.
func (s *Session) Preferences() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.Clone()
}

// Articles returns the full collection, newest first.
func (s *Session) Articles() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyArticles(s.articles)
}

// Visible applies the filter query and preferences to the collection.
func (s *Session) Visible(limit int) []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.Visible(s.articles, s.query, s.prefs, limit)
}

func (s *Session) Bookmarks() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.Bookmarked(s.articles, s.prefs)
}

func (s *Session) ReadArticles() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.ReadArticles(s.articles, s.prefs)
}

func (s *Session) LocalArticles() []domain.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	return feed.Local(s.articles)
}

// Trending analyses the current collection.
func (s *Session) Trending() trending.Analysis {
	s.mu.Lock()
	articles := copyArticles(s.articles)
	s.mu.Unlock()
	return s.engine.Analyze(articles, s.clock())
}

// Find returns the article with id.
func (s *Session) Find(id string) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.articles[i], nil
	}
	return domain.Article{}, ErrArticleNotFound
}

// ToggleBookmark flips the bookmark on id and returns the new state.
func (s *Session) ToggleBookmark(ctx context.Context, id string) bool {
	s.mu.Lock()
	bookmarked := s.prefs.ToggleBookmark(id)
	if i := s.indexLocked(id); i >= 0 {
		s.articles[i].Bookmarked = bookmarked
	}
	prefs := s.prefs.Clone()
	s.mu.Unlock()

	s.savePreferences(ctx, prefs)
	return bookmarked
}

// MarkAsRead marks id as read and records one read in the stats. Every call
// is counted, including repeated reads of the same article.
func (s *Session) MarkAsRead(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrArticleNotFound
	}
	s.prefs.MarkRead(id)
	s.articles[i].Read = true
	s.stats.RecordRead(s.articles[i].Category, s.clock())
	prefs := s.prefs.Clone()
	stats := s.stats
	s.mu.Unlock()

	s.savePreferences(ctx, prefs)
	if err := s.persist.SaveStats(ctx, stats); err != nil {
		s.warn("save reading stats", err)
	}
	return nil
}

// AddReadingTime accumulates time spent in reading mode.
func (s *Session) AddReadingTime(ctx context.Context, d time.Duration) {
	s.mu.Lock()
	s.stats.AddReadingTime(d)
	stats := s.stats
	s.mu.Unlock()

	if err := s.persist.SaveStats(ctx, stats); err != nil {
		s.warn("save reading stats", err)
	}
}

// SelectCategory restricts the listing to c; an empty category clears it.
func (s *Session) SelectCategory(c domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Category = c
}

// SetSearchText updates the local search filter without querying the source.
func (s *Session) SetSearchText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.SearchText = text
}

// ToggleBookmarksOnly flips the bookmarks-only filter and returns its state.
func (s *Session) ToggleBookmarksOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.BookmarksOnly = !s.query.BookmarksOnly
	return s.query.BookmarksOnly
}

// BlockSource hides every article from sourceID.
func (s *Session) BlockSource(ctx context.Context, sourceID string) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.BlockSource(sourceID) })
}

func (s *Session) UnblockSource(ctx context.Context, sourceID string) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.UnblockSource(sourceID) })
}

// ToggleCategory flips whether c is fetched on refresh.
func (s *Session) ToggleCategory(ctx context.Context, c domain.Category) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.ToggleCategory(c) })
}

// SetRefreshInterval stores the auto-refresh preference.
func (s *Session) SetRefreshInterval(ctx context.Context, interval domain.RefreshInterval) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.RefreshInterval = interval })
}

// SetLocationBasedNews toggles local articles on refresh.
func (s *Session) SetLocationBasedNews(ctx context.Context, enabled bool) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.LocationBasedNews = enabled })
}

// ResetPreferences restores and persists the default preferences.
func (s *Session) ResetPreferences(ctx context.Context) {
	s.updatePreferences(ctx, func(p *domain.Preferences) { *p = domain.DefaultPreferences() })
}

// Stats returns a copy of the reading stats.
func (s *Session) Stats() domain.ReadingStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.stats
	out.PerCategory = make(map[domain.Category]int, len(s.stats.PerCategory))
	for c, n := range s.stats.PerCategory {
		out.PerCategory[c] = n
	}
	return out
}

// SearchHistory returns remembered queries, most recent first.
func (s *Session) SearchHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...)
}

// AddToSearchHistory remembers query. Empty queries are ignored.
func (s *Session) AddToSearchHistory(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	s.history = pushHistory(s.history, query)
	history := append([]string(nil), s.history...)
	s.mu.Unlock()

	if err := s.persist.SaveHistory(ctx, history); err != nil {
		s.warn("save search history", err)
	}
}

func (s *Session) ClearSearchHistory(ctx context.Context) {
	s.mu.Lock()
	s.history = []string{}
	s.mu.Unlock()

	if err := s.persist.SaveHistory(ctx, []string{}); err != nil {
		s.warn("save search history", err)
	}
}

// ClearCache drops the persisted article cache. The in-memory collection is
// kept; the next LoadInitial fetches again.
func (s *Session) ClearCache(ctx context.Context) error {
	if err := s.persist.ClearCache(ctx); err != nil {
		return err
	}
	s.debug("article cache cleared")
	return nil
}

// DownloadForOffline attaches placeholder offline content to id.
func (s *Session) DownloadForOffline(id string) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return domain.Article{}, ErrArticleNotFound
	}
	s.articles[i].Downloaded = true
	s.articles[i].DownloadedContent = offlinePlaceholder
	return s.articles[i], nil
}

// ShareText renders the share message for id.
func (s *Session) ShareText(id string) (string, error) {
	article, err := s.Find(id)
	if err != nil {
		return "", err
	}
	return article.ShareText(), nil
}

// LocationMessage is the last user-facing location problem, if any.
func (s *Session) LocationMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locationMsg
}

// Loading reports whether a source call is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// StatusMessage describes the feed state for a status line.
func (s *Session) StatusMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Summary counts the collection for overview screens.
type Summary struct {
	Total        int
	Visible      int
	Unread       int
	Local        int
	Bookmarked   int
	Categories   []domain.Category
	SearchActive bool
	RefreshedAt  time.Time
	Status       string
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Total:        len(s.articles),
		Visible:      len(feed.Visible(s.articles, s.query, s.prefs, feed.FeedLimit)),
		Unread:       feed.UnreadCount(s.articles, s.prefs),
		Local:        len(feed.Local(s.articles)),
		Bookmarked:   len(feed.Bookmarked(s.articles, s.prefs)),
		Categories:   feed.CategoriesPresent(s.articles),
		SearchActive: s.query.Search() != "",
		RefreshedAt:  s.refreshedAt,
		Status:       s.statusLocked(),
	}
}

func (s *Session) statusLocked() string {
	if s.loading > 0 {
		return "Loading news..."
	}
	visible := feed.Visible(s.articles, s.query, s.prefs, feed.FeedLimit)
	if len(visible) == 0 {
		return "No articles available"
	}
	return fmt.Sprintf("%d articles", len(visible))
}

func (s *Session) updatePreferences(ctx context.Context, mutate func(*domain.Preferences)) {
	s.mu.Lock()
	mutate(&s.prefs)
	s.prefs.Normalize()
	s.syncFlagsLocked()
	prefs := s.prefs.Clone()
	s.mu.Unlock()

	s.savePreferences(ctx, prefs)
}

func (s *Session) savePreferences(ctx context.Context, prefs domain.Preferences) {
	if err := s.persist.SavePreferences(ctx, prefs); err != nil {
		s.warn("save preferences", err)
	}
}

// setArticlesLocked replaces the collection, re-deriving bookmark, read and
// trending flags.
func (s *Session) setArticlesLocked(articles []domain.Article) {
	analysis := s.engine.Analyze(articles, s.clock())
	s.articles = analysis.Articles
	s.syncFlagsLocked()
}

func (s *Session) syncFlagsLocked() {
	for i := range s.articles {
		s.articles[i].Bookmarked = s.prefs.BookmarkedArticles.Has(s.articles[i].ID)
		s.articles[i].Read = s.prefs.ReadArticles.Has(s.articles[i].ID)
	}
}

func (s *Session) indexLocked(id string) int {
	for i := range s.articles {
		if s.articles[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) clock() time.Time {
	return s.now().In(s.zone)
}

func (s *Session) warn(msg string, err error) {
	if s.logger != nil {
		s.logger.Warn(msg, "error", err)
	}
}

func (s *Session) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func copyArticles(in []domain.Article) []domain.Article {
	out := make([]domain.Article, len(in))
	copy(out, in)
	return out
}
