package driven

import (
	"context"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// RouteStore persists sitemap routes.
type RouteStore interface {
	// Save stores or updates a route.
	Save(ctx context.Context, route domain.Route) error

	// Get retrieves a route by ID.
	Get(ctx context.Context, id string) (*domain.Route, error)

	// Delete removes a route.
	Delete(ctx context.Context, id string) error

	// List returns all routes ordered by position.
	List(ctx context.Context) ([]domain.Route, error)

	// NextPosition returns the position after the last stored route.
	NextPosition(ctx context.Context) (int, error)
}

// SitemapLoader reads route definitions from a sitemap file.
type SitemapLoader interface {
	// Load parses the file at path. Positions follow file order.
	Load(path string) ([]domain.Route, error)
}
