package mcp

import (
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Match tests patterns and routes requests.
	Match driving.MatchService

	// Route manages stored routes.
	Route driving.RouteService

	// Namespace resolves XML names.
	Namespace driving.NamespaceService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Match == nil {
		return ErrMissingMatchService
	}
	return nil
}
