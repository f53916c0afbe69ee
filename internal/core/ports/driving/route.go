package driving

import (
	"context"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// RouteService manages stored routes.
type RouteService interface {
	// Add validates and stores a route, assigning an ID and position when unset.
	Add(ctx context.Context, route domain.Route) (*domain.Route, error)

	// Get retrieves a route by ID.
	Get(ctx context.Context, id string) (*domain.Route, error)

	// Remove deletes a route by ID.
	Remove(ctx context.Context, id string) error

	// List returns all stored routes in evaluation order.
	List(ctx context.Context) ([]domain.Route, error)

	// Import validates and appends routes read from a sitemap file.
	Import(ctx context.Context, path string) ([]domain.Route, error)

	// Validate checks a route definition without storing it.
	Validate(route domain.Route) error
}
