package domain

import "time"

// MatcherType identifies how a route's pattern is evaluated.
type MatcherType string

// Available matcher types.
const (
	// MatcherURI matches the sitemap URI against a wildcard pattern.
	MatcherURI MatcherType = "uri"

	// MatcherRegexp matches the sitemap URI against a regular expression.
	MatcherRegexp MatcherType = "regexp"

	// MatcherParameter matches a named request parameter against a wildcard pattern.
	MatcherParameter MatcherType = "parameter"

	// MatcherHeader matches a named request header against a wildcard pattern.
	MatcherHeader MatcherType = "header"

	// MatcherHost matches the request host against a wildcard pattern.
	MatcherHost MatcherType = "host"
)

// IsValid returns true if the matcher type is recognised.
func (m MatcherType) IsValid() bool {
	switch m {
	case MatcherURI, MatcherRegexp, MatcherParameter, MatcherHeader, MatcherHost:
		return true
	default:
		return false
	}
}

// NeedsParam returns true if the matcher inspects a named parameter or header.
func (m MatcherType) NeedsParam() bool {
	return m == MatcherParameter || m == MatcherHeader
}

// Action defines what happens when a route matches.
type Action string

// Available route actions.
const (
	// ActionRead serves the file named by the route target.
	ActionRead Action = "read"

	// ActionRedirect redirects the client to the route target.
	ActionRedirect Action = "redirect"
)

// IsValid returns true if the action is recognised.
func (a Action) IsValid() bool {
	return a == ActionRead || a == ActionRedirect
}

// DefaultRedirectStatus is used when a redirect route does not set a status.
const DefaultRedirectStatus = 302

// Route is a single sitemap entry.
// Routes are evaluated in Position order and the first match wins.
type Route struct {
	// ID is the unique identifier for the route.
	ID string

	// Name is an optional human-readable label.
	Name string

	// Matcher selects how Pattern is evaluated. Empty means MatcherURI.
	Matcher MatcherType

	// Pattern is the wildcard or regular expression to match.
	Pattern string

	// Param names the request parameter or header for parameter/header matchers.
	Param string

	// Action is what to do on a match.
	Action Action

	// Target is the file path or redirect location.
	// It may contain {n} placeholders replaced by the match captures.
	Target string

	// MIME overrides the content type of a read action.
	MIME string

	// Status overrides the HTTP status of a redirect action.
	Status int

	// Position orders routes. Lower positions are evaluated first.
	Position int

	// CreatedAt is when the route was stored.
	CreatedAt time.Time
}

// MatcherOrDefault returns the route's matcher type, defaulting to MatcherURI.
func (r *Route) MatcherOrDefault() MatcherType {
	if r.Matcher == "" {
		return MatcherURI
	}
	return r.Matcher
}

// RedirectStatus returns the redirect status, defaulting to DefaultRedirectStatus.
func (r *Route) RedirectStatus() int {
	if r.Status == 0 {
		return DefaultRedirectStatus
	}
	return r.Status
}

// MatchResult is the outcome of testing a single pattern against an input.
type MatchResult struct {
	// Pattern is the pattern that was tested.
	Pattern string `json:"pattern"`

	// Input is the string the pattern was tested against.
	Input string `json:"input"`

	// Matched reports whether the pattern matched.
	Matched bool `json:"matched"`

	// Captures holds the whole input at index 0 followed by wildcard captures.
	// Nil when the pattern did not match.
	Captures []string `json:"captures,omitempty"`
}

// RouteMatch is a route selected for a request.
type RouteMatch struct {
	// Route is the route that matched.
	Route Route

	// Captures holds the whole match at index 0 followed by wildcard captures.
	Captures []string

	// Target is Route.Target with capture placeholders substituted.
	Target string
}
