// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - MatchService: pattern testing and first-match routing
//   - RouteService: stored route management and sitemap import
//   - NamespaceService: namespace resolution over XML documents
package services
