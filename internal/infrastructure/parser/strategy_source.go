package parser

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"newsease/internal/config"
	"newsease/internal/domain"
	"newsease/internal/ports"
	"newsease/internal/scanner"
)

// StrategySource implements ArticleSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	latency  time.Duration
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites. Every
// call waits latency before scanning.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, latency time.Duration, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		latency:  latency,
		logger:   log,
	}
}

// Fetch returns the feed for the requested categories, plus local articles
// when a coordinate is given.
func (s *StrategySource) Fetch(ctx context.Context, req ports.FetchRequest) ([]domain.Article, error) {
	return s.scan(ctx, scanner.Request{
		Kind:       scanner.KindFeed,
		Categories: req.Categories,
		Location:   req.Location,
		Country:    req.Country,
		Language:   req.Language,
	})
}

// Search returns articles related to query.
func (s *StrategySource) Search(ctx context.Context, query string, categories []domain.Category) ([]domain.Article, error) {
	return s.scan(ctx, scanner.Request{
		Kind:       scanner.KindSearch,
		Query:      query,
		Categories: categories,
	})
}

// TopHeadlines returns the headline listing; an empty category mixes all.
func (s *StrategySource) TopHeadlines(ctx context.Context, country string, category domain.Category) ([]domain.Article, error) {
	req := scanner.Request{Kind: scanner.KindHeadlines, Country: country}
	if category != "" {
		req.Categories = []domain.Category{category}
	}
	return s.scan(ctx, req)
}

func (s *StrategySource) scan(ctx context.Context, base scanner.Request) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.debug("scan sites", "kind", base.Kind, "sites", len(s.sites))

	var aggregated []domain.Article
	for _, site := range s.sites {
		categories, ok := siteCategories(site, base.Categories)
		if !ok {
			s.debug("skip site", "site", site.Name, "reason", "no requested categories")
			continue
		}

		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		req := base
		req.SiteName = site.Name
		req.Options = site.Options
		req.Categories = categories

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		for i := range results {
			if results[i].Source.Name == "" {
				results[i].Source.Name = site.Name
			}
		}
		s.debug("site produced articles", "site", site.Name, "count", len(results))
		aggregated = append(aggregated, results...)
	}

	sort.SliceStable(aggregated, func(i, j int) bool {
		return aggregated[i].PublishedAt.After(aggregated[j].PublishedAt)
	})

	s.debug("strategy source done", "total_articles", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// siteCategories narrows the requested categories to the ones a site
// serves. A site without a category list serves everything.
func siteCategories(site config.SiteConfig, requested []domain.Category) ([]domain.Category, bool) {
	if len(site.Categories) == 0 {
		return requested, true
	}

	served := domain.NewSet[domain.Category]()
	for _, raw := range site.Categories {
		if c, err := domain.ParseCategory(raw); err == nil {
			served.Add(c)
		}
	}

	if len(requested) == 0 {
		return served.Sorted(), len(served) > 0
	}

	var out []domain.Category
	for _, c := range requested {
		if served.Has(c) {
			out = append(out, c)
		}
	}
	return out, len(out) > 0
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
