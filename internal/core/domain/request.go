package domain

import "strings"

// Request carries the parts of an incoming request that matchers inspect.
// It is transport-neutral so that CLI, MCP and HTTP callers share it.
type Request struct {
	// URI is the request path. A leading slash is optional.
	URI string

	// Host is the host name the request was addressed to.
	Host string

	// Params contains request parameters (query string or form values).
	Params map[string]string

	// Headers contains request headers. Lookups are case-insensitive.
	Headers map[string]string
}

// SitemapURI returns the URI relative to the sitemap, without the leading slash.
func (r Request) SitemapURI() string {
	return strings.TrimPrefix(r.URI, "/")
}

// Param returns a request parameter and whether it was present.
func (r Request) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	return v, ok
}

// Header returns a request header, matching the name case-insensitively.
func (r Request) Header(name string) (string, bool) {
	if v, ok := r.Headers[name]; ok {
		return v, true
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}
