package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
	"github.com/custodia-labs/sitemap/internal/wildcard"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

// DefaultPatternCacheSize bounds the number of compiled ad-hoc patterns kept by Match.
const DefaultPatternCacheSize = 256

type compiledRoute struct {
	route   domain.Route
	matcher driven.Matcher
}

// MatchService evaluates requests against the active sitemap.
// It is safe for concurrent use; SetRoutes swaps the route set atomically.
type MatchService struct {
	factory driven.MatcherFactory

	mu     sync.RWMutex
	routes []compiledRoute

	cacheMu  sync.Mutex
	cache    map[string]*wildcard.Pattern
	cacheCap int
}

// NewMatchService creates a match service that builds matchers with factory.
func NewMatchService(factory driven.MatcherFactory) *MatchService {
	return &MatchService{
		factory:  factory,
		cache:    make(map[string]*wildcard.Pattern),
		cacheCap: DefaultPatternCacheSize,
	}
}

// Match tests a single wildcard pattern against an input string.
func (s *MatchService) Match(pattern, input string) domain.MatchResult {
	result := domain.MatchResult{Pattern: pattern, Input: input}
	caps, ok := s.compiled(pattern).Match(input)
	if ok {
		result.Matched = true
		result.Captures = caps
	}
	return result
}

// compiled returns a cached compiled form of pattern.
// The cache is emptied when it reaches capacity.
func (s *MatchService) compiled(pattern string) *wildcard.Pattern {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if p, ok := s.cache[pattern]; ok {
		return p
	}
	if len(s.cache) >= s.cacheCap {
		clear(s.cache)
	}
	p := wildcard.Compile(pattern)
	s.cache[pattern] = p
	return p
}

// SetRoutes compiles and activates routes in the order given.
// On error the previous route set stays active.
func (s *MatchService) SetRoutes(routes []domain.Route) error {
	if s.factory == nil {
		return domain.ErrNotImplemented
	}
	compiled := make([]compiledRoute, 0, len(routes))
	for _, route := range routes {
		m, err := s.factory.Build(route)
		if err != nil {
			return fmt.Errorf("route %s (%q): %w", routeLabel(route), route.Pattern, err)
		}
		compiled = append(compiled, compiledRoute{route: route, matcher: m})
	}

	s.mu.Lock()
	s.routes = compiled
	s.mu.Unlock()

	logger.Debug("Activated %d routes", len(compiled))
	return nil
}

// Routes returns the active routes in evaluation order.
func (s *MatchService) Routes() []domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	routes := make([]domain.Route, len(s.routes))
	for i, c := range s.routes {
		routes[i] = c.route
	}
	return routes
}

// Route returns the first active route matching req with its target expanded.
func (s *MatchService) Route(ctx context.Context, req domain.Request) (*domain.RouteMatch, error) {
	s.mu.RLock()
	routes := s.routes
	s.mu.RUnlock()

	for _, c := range routes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		caps, ok := c.matcher.Match(req)
		if !ok {
			continue
		}
		target, err := expandTarget(c.route, req, caps)
		if err != nil {
			return nil, fmt.Errorf("%w: route %s target: %w", domain.ErrInvalidRoute, routeLabel(c.route), err)
		}
		logger.Debug("Route %s matched %q", routeLabel(c.route), req.URI)
		return &domain.RouteMatch{Route: c.route, Captures: caps, Target: target}, nil
	}
	return nil, domain.ErrNoRoute
}

// expandTarget substitutes captures into the route target.
// A read route without a target reads the requested path itself.
func expandTarget(r domain.Route, req domain.Request, caps []string) (string, error) {
	if r.Target == "" && r.Action != domain.ActionRedirect {
		return req.SitemapURI(), nil
	}
	return wildcard.Substitute(r.Target, caps)
}

func routeLabel(r domain.Route) string {
	if r.Name != "" {
		return r.Name
	}
	if r.ID != "" {
		return r.ID
	}
	return fmt.Sprintf("#%d", r.Position)
}
