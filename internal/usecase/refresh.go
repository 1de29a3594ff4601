package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"newsease/internal/domain"
	"newsease/internal/ports"
)

// ErrNoSource is returned when the session has no article source.
var ErrNoSource = errors.New("article source is not configured")

// Refresh fetches the feed for the selected categories, adding local news
// when location-based news is enabled and permitted, and caches the result.
// An empty category selection fetches every category.
func (s *Session) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}

	prefs := s.beginLoading()
	defer s.endLoading()

	req := ports.FetchRequest{
		Categories: prefs.Categories(),
		Location:   s.resolveLocation(ctx, prefs),
		Country:    prefs.PreferredCountry,
		Language:   prefs.PreferredLanguage,
	}

	s.debug("refresh", "categories", len(req.Categories), "local", req.Location != nil)

	articles, err := s.source.Fetch(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch news: %w", err)
	}

	s.replaceArticles(ctx, articles, true)
	return nil
}

// Search sets the search text and, when it is not blank, replaces the
// collection with source results and remembers the query.
func (s *Session) Search(ctx context.Context, text string) error {
	query := strings.TrimSpace(text)

	s.mu.Lock()
	s.query.SearchText = text
	category := s.query.Category
	s.mu.Unlock()

	if query == "" {
		return nil
	}
	if s.source == nil {
		return ErrNoSource
	}

	prefs := s.beginLoading()
	defer s.endLoading()

	categories := prefs.Categories()
	if category != "" {
		categories = []domain.Category{category}
	}

	articles, err := s.source.Search(ctx, query, categories)
	if err != nil {
		return fmt.Errorf("search news %q: %w", query, err)
	}

	s.replaceArticles(ctx, articles, false)
	s.AddToSearchHistory(ctx, query)
	return nil
}

// TopHeadlines replaces the collection with headlines for the preferred
// country and the selected category, if any.
func (s *Session) TopHeadlines(ctx context.Context) error {
	if s.source == nil {
		return ErrNoSource
	}

	prefs := s.beginLoading()
	defer s.endLoading()

	s.mu.Lock()
	category := s.query.Category
	s.mu.Unlock()

	articles, err := s.source.TopHeadlines(ctx, prefs.PreferredCountry, category)
	if err != nil {
		return fmt.Errorf("top headlines: %w", err)
	}

	s.replaceArticles(ctx, articles, true)
	return nil
}

func (s *Session) beginLoading() domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading++
	return s.prefs.Clone()
}

func (s *Session) endLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading--
}

func (s *Session) replaceArticles(ctx context.Context, articles []domain.Article, cache bool) {
	now := s.clock()

	s.mu.Lock()
	s.setArticlesLocked(articles)
	s.refreshedAt = now
	snapshot := copyArticles(s.articles)
	s.mu.Unlock()

	s.debug("articles replaced", "count", len(snapshot), "cached", cache)

	if !cache {
		return
	}
	if err := s.persist.CacheArticles(ctx, snapshot, now); err != nil {
		s.warn("cache articles", err)
	}
}

// resolveLocation returns the coordinate to fetch local news for, or nil.
// Location problems are recorded as a user-facing message and never fail
// the refresh.
func (s *Session) resolveLocation(ctx context.Context, prefs domain.Preferences) *domain.Coordinate {
	if !prefs.LocationBasedNews || s.location == nil {
		s.setLocationMessage("")
		return nil
	}

	if err := s.location.Status().Err(); err != nil {
		s.setLocationMessage(domain.LocationMessage(err))
		return nil
	}

	coord, err := s.location.CurrentLocation(ctx)
	if err == nil && coord == nil {
		err = domain.ErrLocationUnavailable
	}
	if err != nil {
		s.warn("current location", err)
		s.setLocationMessage(domain.LocationMessage(err))
		return nil
	}
	s.setLocationMessage("")

	last := &domain.UserLocation{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
		Timestamp: s.clock(),
	}
	if addr, err := s.location.Address(ctx); err == nil {
		last.City = addr
	}
	s.updatePreferences(ctx, func(p *domain.Preferences) { p.LastLocation = last })

	return coord
}

func (s *Session) setLocationMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locationMsg = msg
}
