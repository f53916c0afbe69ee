package matchers

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

// RegexpMatchTimeout bounds a single regular expression evaluation.
const RegexpMatchTimeout = 100 * time.Millisecond

// RegexpMatcher matches the sitemap URI against a regular expression.
// The expression is unanchored; group n becomes capture n.
type RegexpMatcher struct {
	re *regexp2.Regexp
}

var _ driven.Matcher = (*RegexpMatcher)(nil)

// NewRegexpMatcher compiles pattern.
func NewRegexpMatcher(pattern string) (*RegexpMatcher, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling %q: %v", domain.ErrInvalidRoute, pattern, err)
	}
	re.MatchTimeout = RegexpMatchTimeout
	return &RegexpMatcher{re: re}, nil
}

// Type returns domain.MatcherRegexp.
func (m *RegexpMatcher) Type() domain.MatcherType {
	return domain.MatcherRegexp
}

// Pattern returns the source expression.
func (m *RegexpMatcher) Pattern() string {
	return m.re.String()
}

// Captures returns the number of groups in the expression.
func (m *RegexpMatcher) Captures() int {
	return len(m.re.GetGroupNumbers()) - 1
}

// Match tests the request. A timed-out evaluation counts as no match.
func (m *RegexpMatcher) Match(req domain.Request) ([]string, bool) {
	match, err := m.re.FindStringMatch(req.SitemapURI())
	if err != nil || match == nil {
		return nil, false
	}
	groups := match.Groups()
	caps := make([]string, len(groups))
	for i := range groups {
		caps[i] = groups[i].String()
	}
	return caps, true
}
