package driving

import (
	"context"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// MatchService matches requests against the active sitemap.
type MatchService interface {
	// Match tests a single wildcard pattern against an input string.
	Match(pattern, input string) domain.MatchResult

	// Route returns the first route matching req.
	// Returns domain.ErrNoRoute when nothing matches.
	Route(ctx context.Context, req domain.Request) (*domain.RouteMatch, error)

	// SetRoutes replaces the active routes.
	SetRoutes(routes []domain.Route) error

	// Routes returns the active routes in evaluation order.
	Routes() []domain.Route
}
