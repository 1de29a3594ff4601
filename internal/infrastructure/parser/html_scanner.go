package parser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"newsease/internal/domain"
	"newsease/internal/scanner"
)

const headlineCount = 8

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02", "2 Jan 2006"}

// HTMLScanner reads an article listing from a saved HTML page (options.path)
// or a remote one (options.url).
type HTMLScanner struct {
	client *http.Client
	now    func() time.Time
}

// NewHTMLScanner wires an HTTP client and clock; nil values use defaults.
func NewHTMLScanner(client *http.Client, now func() time.Time) *HTMLScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if now == nil {
		now = time.Now
	}
	return &HTMLScanner{client: client, now: now}
}

// Name identifies the strategy inside the registry.
func (h *HTMLScanner) Name() string {
	return "html"
}

// Scan parses every <article> element of the listing and keeps the ones that
// match the requested kind.
func (h *HTMLScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	doc, err := h.document(ctx, req.Options)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteName, err)
	}

	base := req.Options["url"]
	query := strings.ToLower(strings.TrimSpace(req.Query))

	var results []domain.Article
	seen := map[string]struct{}{}
	doc.Find("article").Each(func(_ int, sel *goquery.Selection) {
		article, ok := h.parseEntry(sel, req.SiteName, base)
		if !ok || !req.Wants(article.Category) {
			return
		}
		if req.Kind == scanner.KindSearch && !matchesQuery(article, query) {
			return
		}
		if _, dup := seen[article.ID]; dup {
			return
		}
		seen[article.ID] = struct{}{}
		results = append(results, article)
	})

	if req.Kind == scanner.KindHeadlines && len(results) > headlineCount {
		results = results[:headlineCount]
	}
	return results, nil
}

func (h *HTMLScanner) document(ctx context.Context, options map[string]string) (*goquery.Document, error) {
	if path := options["path"]; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open listing: %w", err)
		}
		defer f.Close()
		return parseDocument(f)
	}

	pageURL := options["url"]
	if pageURL == "" {
		return nil, fmt.Errorf("html scanner needs a path or url option")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NewsEase/1.0")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}
	return parseDocument(resp.Body)
}

func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func (h *HTMLScanner) parseEntry(sel *goquery.Selection, siteName, base string) (domain.Article, bool) {
	title := cleanText(sel.Find("h2").First().Text())
	if title == "" {
		return domain.Article{}, false
	}

	href, _ := sel.Find("a[href]").First().Attr("href")
	href = resolveLink(base, strings.TrimSpace(href))

	category := domain.CategoryGeneral
	if raw, ok := sel.Attr("data-category"); ok {
		if parsed, err := domain.ParseCategory(raw); err == nil {
			category = parsed
		}
	}

	sourceName := siteName
	if raw, ok := sel.Attr("data-source"); ok && strings.TrimSpace(raw) != "" {
		sourceName = strings.TrimSpace(raw)
	}

	id, _ := sel.Attr("data-id")
	if id == "" {
		id = href
	}
	if id == "" {
		id = uuid.NewString()
	}

	paragraphs := sel.Find("p")
	description := cleanText(paragraphs.First().Text())
	var content []string
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		if text := cleanText(p.Text()); text != "" {
			content = append(content, text)
		}
	})

	return domain.Article{
		ID:          id,
		Title:       title,
		Description: description,
		Content:     strings.Join(content, "\n\n"),
		Author:      cleanText(sel.Find(".author").First().Text()),
		Source: domain.Source{
			ID:       sourceID(sourceName),
			Name:     sourceName,
			Category: string(category),
			Language: "en",
			Country:  "us",
		},
		PublishedAt: h.publishedAt(sel.Find("time").First()),
		URL:         href,
		Category:    category,
	}, true
}

func (h *HTMLScanner) publishedAt(sel *goquery.Selection) time.Time {
	raw, ok := sel.Attr("datetime")
	if !ok {
		raw = sel.Text()
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed
		}
	}
	return h.now()
}

func matchesQuery(a domain.Article, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Title), query) ||
		strings.Contains(strings.ToLower(a.Description), query)
}

func resolveLink(base, href string) string {
	if href == "" || base == "" || strings.HasPrefix(href, "http") {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func sourceID(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}
