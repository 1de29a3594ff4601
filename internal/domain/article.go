package domain

import (
	"fmt"
	"time"
)

// Article is a core entity describing a news item held for the session.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Author      string    `json:"author,omitempty"`
	Source      Source    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    Category  `json:"category"`
	Location    *Location `json:"location,omitempty"`

	Bookmarked bool `json:"isBookmarked"`
	Read       bool `json:"isRead"`

	// Volatile popularity attributes, recomputed on every trending pass.
	TrendingScore float64 `json:"-"`
	IsHot         bool    `json:"-"`
	IsTrending    bool    `json:"-"`
	IsBreaking    bool    `json:"-"`

	Downloaded        bool   `json:"isDownloaded,omitempty"`
	DownloadedContent string `json:"downloadedContent,omitempty"`
}

// Source describes the publisher of an article.
type Source struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
	Category    string `json:"category,omitempty"`
	Language    string `json:"language"`
	Country     string `json:"country"`
}

// Location tags an article with the place it reports on.
type Location struct {
	City       string      `json:"city,omitempty"`
	Country    string      `json:"country"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IsLocal reports whether the article carries a location tag.
func (a Article) IsLocal() bool {
	return a.Location != nil
}

// Age returns how long ago the article was published relative to now.
func (a Article) Age(now time.Time) time.Duration {
	return now.Sub(a.PublishedAt)
}

// TimeAgo renders the age as "Nm ago", "Nh ago" or "Nd ago".
func (a Article) TimeAgo(now time.Time) string {
	age := a.Age(now)
	switch {
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(age.Hours()/24))
	}
}

// ShareText formats the article for sharing outside the app.
func (a Article) ShareText() string {
	return fmt.Sprintf("%s\n\n%s\n\nRead more: %s", a.Title, a.Description, a.URL)
}
