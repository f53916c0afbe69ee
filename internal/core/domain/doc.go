// Package domain defines the core entities for sitemap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Request: The request facets a matcher can inspect
//   - Route: A sitemap entry binding a matcher to an action
//   - RouteMatch: A route selected for a request, with captures applied
//   - ResolvedNode: An element or attribute name after namespace resolution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
