package matchers

import (
	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/wildcard"
)

// WildcardMatcher tests one facet of a request against a wildcard pattern.
type WildcardMatcher struct {
	typ     domain.MatcherType
	pattern *wildcard.Pattern
	extract func(req domain.Request) (string, bool)
}

var _ driven.Matcher = (*WildcardMatcher)(nil)

// NewURIMatcher matches the sitemap URI, which never has a leading slash.
func NewURIMatcher(pattern string) *WildcardMatcher {
	return &WildcardMatcher{
		typ:     domain.MatcherURI,
		pattern: wildcard.Compile(pattern),
		extract: func(req domain.Request) (string, bool) {
			return req.SitemapURI(), true
		},
	}
}

// NewParameterMatcher matches the value of request parameter name.
// Requests without the parameter never match.
func NewParameterMatcher(name, pattern string) *WildcardMatcher {
	return &WildcardMatcher{
		typ:     domain.MatcherParameter,
		pattern: wildcard.Compile(pattern),
		extract: func(req domain.Request) (string, bool) {
			return req.Param(name)
		},
	}
}

// NewHeaderMatcher matches the value of request header name.
// Requests without the header never match.
func NewHeaderMatcher(name, pattern string) *WildcardMatcher {
	return &WildcardMatcher{
		typ:     domain.MatcherHeader,
		pattern: wildcard.Compile(pattern),
		extract: func(req domain.Request) (string, bool) {
			return req.Header(name)
		},
	}
}

// NewHostMatcher matches the request host.
func NewHostMatcher(pattern string) *WildcardMatcher {
	return &WildcardMatcher{
		typ:     domain.MatcherHost,
		pattern: wildcard.Compile(pattern),
		extract: func(req domain.Request) (string, bool) {
			return req.Host, req.Host != ""
		},
	}
}

// Type returns the matcher type.
func (m *WildcardMatcher) Type() domain.MatcherType {
	return m.typ
}

// Pattern returns the source pattern.
func (m *WildcardMatcher) Pattern() string {
	return m.pattern.String()
}

// Captures returns the number of wildcards in the pattern.
func (m *WildcardMatcher) Captures() int {
	return m.pattern.Wildcards()
}

// Match tests the request.
func (m *WildcardMatcher) Match(req domain.Request) ([]string, bool) {
	value, ok := m.extract(req)
	if !ok {
		return nil, false
	}
	return m.pattern.Match(value)
}
