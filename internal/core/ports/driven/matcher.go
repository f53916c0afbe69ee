package driven

import "github.com/custodia-labs/sitemap/internal/core/domain"

// Matcher tests requests against a single compiled pattern.
// Implementations must be safe for concurrent use.
type Matcher interface {
	// Type returns the matcher type this instance implements.
	Type() domain.MatcherType

	// Match reports whether the request matches. On a match the captures
	// hold the whole matched string at index 0 followed by the pattern's
	// captures in order.
	Match(req domain.Request) ([]string, bool)

	// Captures returns the number of captures a match yields after the
	// whole-string capture at index 0.
	Captures() int
}

// MatcherFactory builds matchers from route definitions.
type MatcherFactory interface {
	// Build compiles the route's pattern for its matcher type.
	// Returns domain.ErrUnsupportedType for unknown matcher types.
	Build(route domain.Route) (Matcher, error)

	// Types returns the registered matcher types.
	Types() []domain.MatcherType
}
