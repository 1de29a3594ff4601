package scanner

import (
	"context"
	"fmt"
	"sort"

	"newsease/internal/domain"
)

// Kind selects which listing a scan produces.
type Kind string

const (
	KindFeed      Kind = "feed"
	KindSearch    Kind = "search"
	KindHeadlines Kind = "headlines"
)

// Request carries all parameters required to execute a scan.
type Request struct {
	Kind       Kind
	SiteName   string
	Categories []domain.Category
	Location   *domain.Coordinate
	Country    string
	Language   string
	Query      string
	Options    map[string]string
}

// Wants reports whether category c is requested. An empty list requests all.
func (r Request) Wants(c domain.Category) bool {
	if len(r.Categories) == 0 {
		return true
	}
	for _, want := range r.Categories {
		if want == c {
			return true
		}
	}
	return false
}

// Scanner captures a single source strategy (mock catalogue, HTML snapshot).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.Article, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}

// Names lists registered scanners alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scanners))
	for name := range r.scanners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
