package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
	"github.com/custodia-labs/sitemap/internal/wildcard"
)

// Ensure RouteService implements the interface.
var _ driving.RouteService = (*RouteService)(nil)

// RouteService manages stored sitemap routes.
type RouteService struct {
	store   driven.RouteStore
	factory driven.MatcherFactory
	loader  driven.SitemapLoader
}

// NewRouteService creates a new route service.
func NewRouteService(store driven.RouteStore, factory driven.MatcherFactory) *RouteService {
	return &RouteService{
		store:   store,
		factory: factory,
	}
}

// SetSitemapLoader sets the loader used by Import.
func (s *RouteService) SetSitemapLoader(loader driven.SitemapLoader) {
	s.loader = loader
}

// Validate checks a route definition without storing it.
func (s *RouteService) Validate(route domain.Route) error {
	if route.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", domain.ErrInvalidRoute)
	}
	if err := s.validateMatcherType(route.MatcherOrDefault()); err != nil {
		return err
	}
	if !route.Action.IsValid() {
		return fmt.Errorf("%w: action %q", domain.ErrUnsupportedType, route.Action)
	}
	if route.Action == domain.ActionRedirect {
		if route.Target == "" {
			return fmt.Errorf("%w: redirect needs a target", domain.ErrInvalidRoute)
		}
		if route.Status != 0 && (route.Status < 300 || route.Status > 399) {
			return fmt.Errorf("%w: redirect status %d", domain.ErrInvalidRoute, route.Status)
		}
	}
	if s.factory == nil {
		return nil
	}

	m, err := s.factory.Build(route)
	if err != nil {
		return err
	}
	highest, err := wildcard.MaxPlaceholder(route.Target)
	if err != nil {
		return fmt.Errorf("%w: target %q: %v", domain.ErrInvalidRoute, route.Target, err)
	}
	if highest > m.Captures() {
		return fmt.Errorf("%w: target %q uses {%d} but pattern %q has %d captures",
			domain.ErrInvalidRoute, route.Target, highest, route.Pattern, m.Captures())
	}
	return nil
}

// validateMatcherType rejects matcher types the factory cannot build.
func (s *RouteService) validateMatcherType(typ domain.MatcherType) error {
	if s.factory == nil {
		if !typ.IsValid() {
			return fmt.Errorf("%w: matcher %q", domain.ErrUnsupportedType, typ)
		}
		return nil
	}
	types := s.factory.Types()
	if slices.Contains(types, typ) {
		return nil
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return fmt.Errorf("%w: matcher %q (supported: %s)",
		domain.ErrUnsupportedType, typ, strings.Join(names, ", "))
}

// withDefaults fills in the action and matcher when unset.
func withDefaults(route domain.Route) domain.Route {
	if route.Action == "" {
		route.Action = domain.ActionRead
	}
	route.Matcher = route.MatcherOrDefault()
	return route
}

// Add validates and stores a route, assigning an ID and position when unset.
// A route with a position of zero or less is appended after the last stored route.
func (s *RouteService) Add(ctx context.Context, route domain.Route) (*domain.Route, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	route = withDefaults(route)
	if err := s.Validate(route); err != nil {
		return nil, err
	}

	if route.ID == "" {
		route.ID = uuid.New().String()
	} else {
		existing, err := s.store.Get(ctx, route.ID)
		if err == nil && existing != nil {
			return nil, domain.ErrAlreadyExists
		}
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	if route.Position <= 0 {
		next, err := s.store.NextPosition(ctx)
		if err != nil {
			return nil, err
		}
		route.Position = next
	}
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}

	if err := s.store.Save(ctx, route); err != nil {
		return nil, err
	}
	logger.Debug("Added route %s: %s %q", route.ID, route.Matcher, route.Pattern)
	return &route, nil
}

// Get retrieves a route by ID.
func (s *RouteService) Get(ctx context.Context, id string) (*domain.Route, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.Get(ctx, id)
}

// Remove deletes a route by ID.
func (s *RouteService) Remove(ctx context.Context, id string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	return s.store.Delete(ctx, id)
}

// List returns all stored routes in evaluation order.
func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Import reads a sitemap file and appends its routes after the stored ones,
// preserving file order. Every route is validated before any is stored, and
// routes already saved are removed again if a later save fails.
func (s *RouteService) Import(ctx context.Context, path string) ([]domain.Route, error) {
	if s.store == nil || s.loader == nil {
		return nil, domain.ErrNotImplemented
	}
	routes, err := s.loader.Load(path)
	if err != nil {
		return nil, err
	}

	for i := range routes {
		routes[i] = withDefaults(routes[i])
		if err := s.Validate(routes[i]); err != nil {
			return nil, fmt.Errorf("route %d: %w", i+1, err)
		}
	}

	base, err := s.store.NextPosition(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range routes {
		if routes[i].ID == "" {
			routes[i].ID = uuid.New().String()
		}
		routes[i].Position = base + i
		routes[i].CreatedAt = now
		if err := s.store.Save(ctx, routes[i]); err != nil {
			s.rollback(ctx, routes[:i])
			return nil, fmt.Errorf("saving route %d: %w", i+1, err)
		}
	}
	logger.Info("Imported %d routes from %s", len(routes), path)
	return routes, nil
}

// rollback deletes routes saved by a failed import.
func (s *RouteService) rollback(ctx context.Context, saved []domain.Route) {
	for _, r := range saved {
		if err := s.store.Delete(ctx, r.ID); err != nil {
			logger.Warn("Rolling back route %s: %v", r.ID, err)
		}
	}
}
