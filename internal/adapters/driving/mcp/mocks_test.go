package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// mockMatchService is a mock implementation of driving.MatchService.
type mockMatchService struct {
	result domain.MatchResult
	match  *domain.RouteMatch
	routes []domain.Route
	err    error
}

func (m *mockMatchService) Match(pattern, input string) domain.MatchResult {
	res := m.result
	res.Pattern, res.Input = pattern, input
	return res
}

func (m *mockMatchService) Route(_ context.Context, _ domain.Request) (*domain.RouteMatch, error) {
	return m.match, m.err
}

func (m *mockMatchService) SetRoutes(routes []domain.Route) error {
	m.routes = routes
	return m.err
}

func (m *mockMatchService) Routes() []domain.Route {
	return m.routes
}

// mockRouteService is a mock implementation of driving.RouteService.
type mockRouteService struct {
	routes []domain.Route
	route  *domain.Route
	err    error
}

func (m *mockRouteService) Add(_ context.Context, r domain.Route) (*domain.Route, error) {
	return &r, m.err
}

func (m *mockRouteService) Get(_ context.Context, _ string) (*domain.Route, error) {
	return m.route, m.err
}

func (m *mockRouteService) Remove(_ context.Context, _ string) error {
	return m.err
}

func (m *mockRouteService) List(_ context.Context) ([]domain.Route, error) {
	return m.routes, m.err
}

func (m *mockRouteService) Import(_ context.Context, _ string) ([]domain.Route, error) {
	return m.routes, m.err
}

func (m *mockRouteService) Validate(_ domain.Route) error {
	return m.err
}

// mockNamespaceService is a mock implementation of driving.NamespaceService.
type mockNamespaceService struct {
	nodes []domain.ResolvedNode
	err   error
	got   string
}

func (m *mockNamespaceService) Resolve(_ context.Context, r io.Reader) ([]domain.ResolvedNode, error) {
	data, _ := io.ReadAll(r)
	m.got = string(data)
	return m.nodes, m.err
}
