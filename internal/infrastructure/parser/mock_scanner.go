package parser

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"newsease/internal/domain"
	"newsease/internal/scanner"
)

const (
	feedMaxAge     = 7 * 24 * time.Hour
	localMaxAge    = 3 * 24 * time.Hour
	searchMaxAge   = 2 * 24 * time.Hour
	headlineMaxAge = 12 * time.Hour

	localOffset = 0.5
)

// MockScanner synthesises plausible articles from built-in catalogues.
type MockScanner struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewMockScanner wires a random source and clock; nil values use a
// time-seeded generator and time.Now.
func NewMockScanner(rng *rand.Rand, now func() time.Time) *MockScanner {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if now == nil {
		now = time.Now
	}
	return &MockScanner{rng: rng, now: now}
}

// Name identifies the strategy inside the registry.
func (m *MockScanner) Name() string {
	return "mock"
}

// Scan produces the listing selected by req.Kind.
func (m *MockScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch req.Kind {
	case scanner.KindFeed, "":
		return m.feed(req), nil
	case scanner.KindSearch:
		return m.search(req), nil
	case scanner.KindHeadlines:
		return m.headlines(req), nil
	default:
		return nil, fmt.Errorf("mock scanner: unsupported kind %q", req.Kind)
	}
}

func (m *MockScanner) feed(req scanner.Request) []domain.Article {
	categories := req.Categories
	if len(categories) == 0 {
		categories = domain.AllCategories()
	}

	var out []domain.Article
	for _, category := range categories {
		cat, ok := catalogues[category]
		if !ok {
			continue
		}
		count := min(3+m.rng.IntN(6), len(cat.titles))
		for i := 0; i < count; i++ {
			src := m.pickSource(cat.sources)
			article := m.article(cat.titles[i], cat.descriptions[i%len(cat.descriptions)], src, category, feedMaxAge, "article")
			if req.Location != nil {
				article.Location = m.nearby(*req.Location)
			}
			out = append(out, article)
		}
	}

	if req.Location != nil {
		count := 2 + m.rng.IntN(4)
		for i := 0; i < count; i++ {
			src := domain.Source{
				ID:          fmt.Sprintf("local-news-%d", 1000+m.rng.IntN(9000)),
				Name:        "Local News Network",
				Description: "Your trusted source for local news",
				URL:         "https://localnews.com",
				Category:    string(domain.CategoryGeneral),
				Language:    "en",
				Country:     "us",
			}
			article := m.article(localTitles[i], localDescriptions[i%len(localDescriptions)], src, domain.CategoryGeneral, localMaxAge, "article")
			article.URL = "https://localnews.com/article-" + shortID()
			article.ImageURL = localImageURL
			article.Location = m.nearby(*req.Location)
			out = append(out, article)
		}
	}

	return out
}

func (m *MockScanner) search(req scanner.Request) []domain.Article {
	query := strings.TrimSpace(req.Query)
	titled := cases.Title(language.English).String(query)
	description := fmt.Sprintf("Comprehensive coverage and analysis of %s developments and their impact on various industries.", query)

	out := make([]domain.Article, 0, len(searchTemplates))
	for _, tmpl := range searchTemplates {
		category := m.pickCategory(req.Categories)
		src := m.pickSource(sourcesFor(category))
		out = append(out, m.article(fmt.Sprintf(tmpl, titled), description, src, category, searchMaxAge, "search"))
	}
	return out
}

func (m *MockScanner) headlines(req scanner.Request) []domain.Article {
	out := make([]domain.Article, 0, len(headlineTitles))
	for _, title := range headlineTitles {
		category := m.pickCategory(req.Categories)
		src := m.pickSource(sourcesFor(category))
		article := m.article(title, "Top headline story covering the most important developments of the day.", src, category, headlineMaxAge, "headline")
		if req.Country != "" {
			article.Source.Country = req.Country
		}
		out = append(out, article)
	}
	return out
}

func (m *MockScanner) article(title, description string, src domain.Source, category domain.Category, maxAge time.Duration, path string) domain.Article {
	return domain.Article{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Content:     strings.Join(contentParagraphs, "\n\n"),
		Author:      m.author(),
		Source:      src,
		PublishedAt: m.now().Add(-time.Duration(m.rng.Int64N(int64(maxAge) + 1))),
		URL:         fmt.Sprintf("https://%s.com/%s-%s", src.ID, path, shortID()),
		ImageURL:    imageURLs[m.rng.IntN(len(imageURLs))],
		Category:    category,
	}
}

func (m *MockScanner) nearby(c domain.Coordinate) *domain.Location {
	return &domain.Location{
		City:    "Local City",
		Country: "United States",
		Coordinate: &domain.Coordinate{
			Latitude:  c.Latitude + m.offset(),
			Longitude: c.Longitude + m.offset(),
		},
	}
}

func (m *MockScanner) offset() float64 {
	return (m.rng.Float64()*2 - 1) * localOffset
}

func (m *MockScanner) author() string {
	return firstNames[m.rng.IntN(len(firstNames))] + " " + lastNames[m.rng.IntN(len(lastNames))]
}

func (m *MockScanner) pickSource(sources []domain.Source) domain.Source {
	return sources[m.rng.IntN(len(sources))]
}

func (m *MockScanner) pickCategory(categories []domain.Category) domain.Category {
	if len(categories) == 0 {
		all := domain.AllCategories()
		return all[m.rng.IntN(len(all))]
	}
	return categories[m.rng.IntN(len(categories))]
}

func sourcesFor(category domain.Category) []domain.Source {
	if cat, ok := catalogues[category]; ok && len(cat.sources) > 0 {
		return cat.sources
	}
	return generalSources
}

func shortID() string {
	return uuid.NewString()[:8]
}
