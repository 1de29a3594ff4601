package ports

import (
	"context"
	"time"

	"newsease/internal/domain"
)

// FetchRequest carries the parameters of a feed fetch.
type FetchRequest struct {
	Categories []domain.Category
	Location   *domain.Coordinate
	Country    string
	Language   string
}

// ArticleSource supplies articles to the session.
type ArticleSource interface {
	Fetch(ctx context.Context, req FetchRequest) ([]domain.Article, error)
	Search(ctx context.Context, query string, categories []domain.Category) ([]domain.Article, error)
	TopHeadlines(ctx context.Context, country string, category domain.Category) ([]domain.Article, error)
}

// KeyValueStore persists opaque values for the client. Get reports a miss
// with found=false and a nil error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LocationProvider exposes the device position.
type LocationProvider interface {
	Status() domain.AuthorizationStatus
	CurrentLocation(ctx context.Context) (*domain.Coordinate, error)
	Address(ctx context.Context) (string, error)
}

// Scheduler controls when refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
