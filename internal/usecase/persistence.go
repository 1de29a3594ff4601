package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"newsease/internal/domain"
	"newsease/internal/ports"
)

// Persistence keys.
const (
	KeyPreferences     = "UserPreferences"
	KeyReadingStats    = "ReadingStats"
	KeySearchHistory   = "SearchHistory"
	KeyCachedArticles  = "CachedNewsArticles"
	KeyCacheExpiration = "CacheExpiration"
)

const (
	// DefaultCacheTTL is how long cached articles stay valid.
	DefaultCacheTTL = 30 * time.Minute
	// SearchHistoryLimit caps the number of remembered queries.
	SearchHistoryLimit = 10
)

// Persistence loads and saves session state through a key-value store.
// Loads never fail: missing or undecodable values yield defaults.
type Persistence struct {
	store  ports.KeyValueStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewPersistence wraps store. A non-positive ttl uses DefaultCacheTTL.
func NewPersistence(store ports.KeyValueStore, ttl time.Duration, logger *slog.Logger) *Persistence {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Persistence{store: store, ttl: ttl, logger: logger}
}

// LoadPreferences returns stored preferences, or defaults (which are then
// written back) when nothing usable is stored.
func (p *Persistence) LoadPreferences(ctx context.Context) domain.Preferences {
	var prefs domain.Preferences
	if p.load(ctx, KeyPreferences, &prefs) {
		prefs.Normalize()
		return prefs
	}

	prefs = domain.DefaultPreferences()
	if err := p.SavePreferences(ctx, prefs); err != nil {
		p.warn("save default preferences", err)
	}
	return prefs
}

func (p *Persistence) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	return p.save(ctx, KeyPreferences, prefs)
}

// LoadStats returns stored reading stats or a fresh aggregate.
func (p *Persistence) LoadStats(ctx context.Context) domain.ReadingStats {
	stats := domain.NewReadingStats()
	if !p.load(ctx, KeyReadingStats, &stats) {
		return domain.NewReadingStats()
	}
	if stats.PerCategory == nil {
		stats.PerCategory = map[domain.Category]int{}
	}
	if stats.WeeklyGoal <= 0 {
		stats.WeeklyGoal = domain.DefaultWeeklyGoal
	}
	return stats
}

func (p *Persistence) SaveStats(ctx context.Context, stats domain.ReadingStats) error {
	return p.save(ctx, KeyReadingStats, stats)
}

// LoadHistory returns stored search queries, most recent first.
func (p *Persistence) LoadHistory(ctx context.Context) []string {
	var history []string
	if !p.load(ctx, KeySearchHistory, &history) {
		return []string{}
	}
	if len(history) > SearchHistoryLimit {
		history = history[:SearchHistoryLimit]
	}
	return history
}

func (p *Persistence) SaveHistory(ctx context.Context, history []string) error {
	return p.save(ctx, KeySearchHistory, history)
}

// CacheArticles stores articles together with the caching time.
func (p *Persistence) CacheArticles(ctx context.Context, articles []domain.Article, now time.Time) error {
	if err := p.save(ctx, KeyCachedArticles, articles); err != nil {
		return err
	}
	return p.save(ctx, KeyCacheExpiration, now)
}

// CachedArticles returns the cached articles if they were stored less than
// the TTL before now, otherwise an empty slice.
func (p *Persistence) CachedArticles(ctx context.Context, now time.Time) []domain.Article {
	var cachedAt time.Time
	if !p.load(ctx, KeyCacheExpiration, &cachedAt) {
		return []domain.Article{}
	}
	if now.Sub(cachedAt) >= p.ttl {
		p.debug("article cache expired", "cached_at", cachedAt)
		return []domain.Article{}
	}

	var articles []domain.Article
	if !p.load(ctx, KeyCachedArticles, &articles) {
		return []domain.Article{}
	}
	return articles
}

// ClearCache drops the cached articles and their timestamp.
func (p *Persistence) ClearCache(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	for _, key := range []string{KeyCachedArticles, KeyCacheExpiration} {
		if err := p.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return nil
}

// pushHistory moves query to the front, dropping older duplicates and
// entries beyond the limit. Empty queries leave history unchanged.
func pushHistory(history []string, query string) []string {
	if query == "" {
		return history
	}
	out := make([]string, 0, SearchHistoryLimit)
	out = append(out, query)
	for _, q := range history {
		if q == query {
			continue
		}
		if len(out) == SearchHistoryLimit {
			break
		}
		out = append(out, q)
	}
	return out
}

func (p *Persistence) load(ctx context.Context, key string, dst any) bool {
	if p.store == nil {
		return false
	}
	raw, found, err := p.store.Get(ctx, key)
	if err != nil {
		p.warn("load "+key, err)
		return false
	}
	if !found {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.warn("decode "+key, err)
		return false
	}
	return true
}

func (p *Persistence) save(ctx context.Context, key string, value any) error {
	if p.store == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := p.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (p *Persistence) warn(msg string, err error) {
	if p.logger != nil {
		p.logger.Warn(msg, "error", err)
	}
}

func (p *Persistence) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
