// Package feed turns the session's article collection into the list a
// screen displays.
package feed

import (
	"strings"

	"newsease/internal/domain"
)

// Display caps used by the different listings.
const (
	NoLimit      = 0
	FeedLimit    = 20
	PreviewLimit = 10
)

// Query is the transient filter state of a listing.
type Query struct {
	SearchText    string
	Category      domain.Category
	BookmarksOnly bool
}

// HasCategory reports whether a category restriction is active.
func (q Query) HasCategory() bool {
	return q.Category != ""
}

// Search returns the trimmed search text.
func (q Query) Search() string {
	return strings.TrimSpace(q.SearchText)
}

// Visible applies the query and the preference context to all, preserving
// the source order, and truncates the result to limit (limit ≤ 0 disables
// the cap).
//
// A bookmarks-only query ignores search text and category. Blocked sources
// are always excluded.
func Visible(all []domain.Article, q Query, prefs domain.Preferences, limit int) []domain.Article {
	search := strings.ToLower(q.Search())

	out := make([]domain.Article, 0)
	for _, article := range all {
		if prefs.BlockedSources.Has(article.Source.ID) {
			continue
		}

		if q.BookmarksOnly {
			if !prefs.BookmarkedArticles.Has(article.ID) {
				continue
			}
		} else {
			if search != "" && !matchesSearch(article, search) {
				continue
			}
			if q.HasCategory() && article.Category != q.Category {
				continue
			}
		}

		out = append(out, article)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func matchesSearch(a domain.Article, lowered string) bool {
	return strings.Contains(strings.ToLower(a.Title), lowered) ||
		strings.Contains(strings.ToLower(a.Description), lowered)
}

// Bookmarked lists bookmarked articles without a cap.
func Bookmarked(all []domain.Article, prefs domain.Preferences) []domain.Article {
	return Visible(all, Query{BookmarksOnly: true}, prefs, NoLimit)
}

// ReadArticles lists articles whose ids are in the read set.
func ReadArticles(all []domain.Article, prefs domain.Preferences) []domain.Article {
	out := make([]domain.Article, 0)
	for _, a := range all {
		if prefs.ReadArticles.Has(a.ID) {
			out = append(out, a)
		}
	}
	return out
}

// Local lists location-tagged articles without a cap.
func Local(all []domain.Article) []domain.Article {
	out := make([]domain.Article, 0)
	for _, a := range all {
		if a.IsLocal() {
			out = append(out, a)
		}
	}
	return out
}

// UnreadCount counts articles not yet marked as read.
func UnreadCount(all []domain.Article, prefs domain.Preferences) int {
	n := 0
	for _, a := range all {
		if !prefs.ReadArticles.Has(a.ID) {
			n++
		}
	}
	return n
}

// CategoriesPresent returns the categories that have at least one article,
// in enumeration order.
func CategoriesPresent(all []domain.Article) []domain.Category {
	present := domain.Set[domain.Category]{}
	for _, a := range all {
		present.Add(a.Category)
	}

	out := make([]domain.Category, 0, len(present))
	for _, c := range domain.AllCategories() {
		if present.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
