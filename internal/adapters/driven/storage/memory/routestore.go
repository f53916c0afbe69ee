package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

// Ensure RouteStore implements the interface.
var _ driven.RouteStore = (*RouteStore)(nil)

// RouteStore is an in-memory implementation of driven.RouteStore.
type RouteStore struct {
	mu     sync.RWMutex
	routes map[string]domain.Route
}

// NewRouteStore creates a new in-memory route store.
func NewRouteStore() *RouteStore {
	return &RouteStore{
		routes: make(map[string]domain.Route),
	}
}

// Save stores or updates a route.
func (s *RouteStore) Save(_ context.Context, route domain.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.routes[route.ID]; ok && route.CreatedAt.IsZero() {
		route.CreatedAt = existing.CreatedAt
	}
	if route.CreatedAt.IsZero() {
		route.CreatedAt = time.Now().UTC()
	}
	s.routes[route.ID] = route
	return nil
}

// Get retrieves a route by ID.
func (s *RouteStore) Get(_ context.Context, id string) (*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	route, ok := s.routes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &route, nil
}

// Delete removes a route.
func (s *RouteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.routes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.routes, id)
	return nil
}

// List returns all routes ordered by position.
func (s *RouteStore) List(_ context.Context) ([]domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Route, 0, len(s.routes))
	for _, route := range s.routes {
		result = append(result, route)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result, nil
}

// NextPosition returns the position after the last stored route.
func (s *RouteStore) NextPosition(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	next := 0
	for _, route := range s.routes {
		if route.Position >= next {
			next = route.Position + 1
		}
	}
	return next, nil
}
