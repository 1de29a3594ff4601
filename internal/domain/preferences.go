package domain

import (
	"fmt"
	"strings"
	"time"
)

// RefreshInterval is the user-selected auto-refresh period.
type RefreshInterval string

const (
	RefreshFifteenMinutes RefreshInterval = "15min"
	RefreshThirtyMinutes  RefreshInterval = "30min"
	RefreshOneHour        RefreshInterval = "1hour"
	RefreshTwoHours       RefreshInterval = "2hours"
	RefreshManual         RefreshInterval = "manual"
)

// Duration returns the period, or zero for manual refresh.
func (r RefreshInterval) Duration() time.Duration {
	switch r {
	case RefreshFifteenMinutes:
		return 15 * time.Minute
	case RefreshThirtyMinutes:
		return 30 * time.Minute
	case RefreshOneHour:
		return time.Hour
	case RefreshTwoHours:
		return 2 * time.Hour
	default:
		return 0
	}
}

// ParseRefreshInterval resolves one of the interval names ("15min", "30min",
// "1hour", "2hours", "manual").
func ParseRefreshInterval(value string) (RefreshInterval, error) {
	r := RefreshInterval(strings.ToLower(strings.TrimSpace(value)))
	if r == RefreshManual || r.Duration() > 0 {
		return r, nil
	}
	return "", fmt.Errorf("unknown refresh interval %q", value)
}

// UserLocation is the last coordinate the user was seen at.
type UserLocation struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	City      string    `json:"city,omitempty"`
	Country   string    `json:"country,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Preferences is the per-session preference context read by every filter pass.
type Preferences struct {
	SelectedCategories Set[Category]   `json:"selectedCategories"`
	PreferredLanguage  string          `json:"preferredLanguage"`
	PreferredCountry   string          `json:"preferredCountry"`
	LocationBasedNews  bool            `json:"locationBasedNews"`
	RefreshInterval    RefreshInterval `json:"refreshInterval"`
	BookmarkedArticles Set[string]     `json:"bookmarkedArticles"`
	ReadArticles       Set[string]     `json:"readArticles"`
	BlockedSources     Set[string]     `json:"blockedSources"`
	LastLocation       *UserLocation   `json:"lastLocation,omitempty"`
}

// DefaultPreferences selects every category and enables local news.
func DefaultPreferences() Preferences {
	return Preferences{
		SelectedCategories: NewSet(AllCategories()...),
		PreferredLanguage:  "en",
		PreferredCountry:   "us",
		LocationBasedNews:  true,
		RefreshInterval:    RefreshThirtyMinutes,
		BookmarkedArticles: Set[string]{},
		ReadArticles:       Set[string]{},
		BlockedSources:     Set[string]{},
	}
}

// Normalize fills nil sets left behind by partial decodes.
func (p *Preferences) Normalize() {
	if p.SelectedCategories == nil {
		p.SelectedCategories = NewSet(AllCategories()...)
	}
	if p.BookmarkedArticles == nil {
		p.BookmarkedArticles = Set[string]{}
	}
	if p.ReadArticles == nil {
		p.ReadArticles = Set[string]{}
	}
	if p.BlockedSources == nil {
		p.BlockedSources = Set[string]{}
	}
	if p.RefreshInterval == "" {
		p.RefreshInterval = RefreshThirtyMinutes
	}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (p Preferences) Clone() Preferences {
	out := p
	out.SelectedCategories = p.SelectedCategories.Clone()
	out.BookmarkedArticles = p.BookmarkedArticles.Clone()
	out.ReadArticles = p.ReadArticles.Clone()
	out.BlockedSources = p.BlockedSources.Clone()
	if p.LastLocation != nil {
		loc := *p.LastLocation
		out.LastLocation = &loc
	}
	return out
}

// ToggleBookmark flips the bookmark membership of id and returns the new state.
func (p *Preferences) ToggleBookmark(id string) bool {
	if p.BookmarkedArticles.Has(id) {
		p.BookmarkedArticles.Remove(id)
		return false
	}
	p.BookmarkedArticles.Add(id)
	return true
}

// MarkRead records id as read. Read ids are never removed.
func (p *Preferences) MarkRead(id string) {
	p.ReadArticles.Add(id)
}

// ToggleCategory flips whether category c is selected.
func (p *Preferences) ToggleCategory(c Category) {
	if p.SelectedCategories.Has(c) {
		p.SelectedCategories.Remove(c)
		return
	}
	p.SelectedCategories.Add(c)
}

func (p *Preferences) BlockSource(sourceID string) {
	p.BlockedSources.Add(sourceID)
}

func (p *Preferences) UnblockSource(sourceID string) {
	p.BlockedSources.Remove(sourceID)
}

// Categories returns the selected categories in enumeration order.
func (p Preferences) Categories() []Category {
	out := make([]Category, 0, len(p.SelectedCategories))
	for _, c := range allCategories {
		if p.SelectedCategories.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
