// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Matcher: Tests a request against one compiled route pattern
//   - MatcherFactory: Builds matchers from route definitions
//   - RouteStore: Route persistence (SQLite or in-memory)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - SitemapLoader: Reads route definitions from TOML or YAML files.
//     Without it, routes can only come from the RouteStore.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or matcher package
package driven
