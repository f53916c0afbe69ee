// Package tui provides an interactive pattern tester for the sitemap.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Match tests patterns and routes requests.
	Match driving.MatchService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Match == nil {
		return ErrMissingMatchService
	}
	return nil
}
