// Package matchers provides the request matchers a route can select.
//
// Every matcher extracts one string from a request and tests it against a
// pattern compiled once at construction:
//
//   - uri: the sitemap URI (no leading slash), wildcard pattern
//   - regexp: the sitemap URI, regular expression (groups become captures)
//   - parameter: a named request parameter, wildcard pattern
//   - header: a named request header, wildcard pattern
//   - host: the request host, wildcard pattern
//
// Matchers are built from route definitions through a Registry.
package matchers
