package matchers

import (
	"fmt"
	"slices"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.MatcherFactory = (*Registry)(nil)

// BuilderFunc creates a Matcher from a route definition.
type BuilderFunc func(route domain.Route) (driven.Matcher, error)

// Registry maps matcher types to their builders.
type Registry struct {
	builders map[domain.MatcherType]BuilderFunc
}

// NewRegistry creates an empty matcher registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[domain.MatcherType]BuilderFunc),
	}
}

// DefaultRegistry returns a registry with every built-in matcher registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.MatcherURI, func(route domain.Route) (driven.Matcher, error) {
		return NewURIMatcher(route.Pattern), nil
	})
	r.Register(domain.MatcherRegexp, func(route domain.Route) (driven.Matcher, error) {
		return NewRegexpMatcher(route.Pattern)
	})
	r.Register(domain.MatcherParameter, func(route domain.Route) (driven.Matcher, error) {
		if route.Param == "" {
			return nil, fmt.Errorf("%w: parameter matcher needs a parameter name", domain.ErrInvalidRoute)
		}
		return NewParameterMatcher(route.Param, route.Pattern), nil
	})
	r.Register(domain.MatcherHeader, func(route domain.Route) (driven.Matcher, error) {
		if route.Param == "" {
			return nil, fmt.Errorf("%w: header matcher needs a header name", domain.ErrInvalidRoute)
		}
		return NewHeaderMatcher(route.Param, route.Pattern), nil
	})
	r.Register(domain.MatcherHost, func(route domain.Route) (driven.Matcher, error) {
		return NewHostMatcher(route.Pattern), nil
	})
	return r
}

// Register adds a matcher builder, replacing any builder for the same type.
func (r *Registry) Register(typ domain.MatcherType, builder BuilderFunc) {
	r.builders[typ] = builder
}

// Build creates the matcher for a route. An empty matcher type means uri.
func (r *Registry) Build(route domain.Route) (driven.Matcher, error) {
	typ := route.MatcherOrDefault()
	builder, ok := r.builders[typ]
	if !ok {
		return nil, fmt.Errorf("%w: matcher %q", domain.ErrUnsupportedType, typ)
	}
	return builder(route)
}

// Types returns the registered matcher types, sorted.
func (r *Registry) Types() []domain.MatcherType {
	types := make([]domain.MatcherType, 0, len(r.builders))
	for typ := range r.builders {
		types = append(types, typ)
	}
	slices.Sort(types)
	return types
}
