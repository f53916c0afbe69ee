package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sitemap resources.
	uriScheme = "sitemap://"
)

// routeInfo is the JSON shape of a route in resource listings.
type routeInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Matcher  string `json:"matcher"`
	Pattern  string `json:"pattern"`
	Param    string `json:"param,omitempty"`
	Action   string `json:"action"`
	Target   string `json:"target,omitempty"`
	Position int    `json:"position"`
}

func newRouteInfo(r domain.Route) routeInfo {
	return routeInfo{
		ID:       r.ID,
		Name:     r.Name,
		Matcher:  string(r.MatcherOrDefault()),
		Pattern:  r.Pattern,
		Param:    r.Param,
		Action:   string(r.Action),
		Target:   r.Target,
		Position: r.Position,
	}
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing the active routes.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "routes",
		Name:        "routes",
		Description: "Active sitemap routes in evaluation order",
		MIMEType:    "application/json",
	}, s.handleRoutesResource)

	// Template for a single stored route.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "routes/{routeId}",
		Name:        "route",
		Description: "A single stored sitemap route",
		MIMEType:    "application/json",
	}, s.handleRouteResource)
}

// handleRoutesResource returns the active routes.
func (s *Server) handleRoutesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	routes := s.ports.Match.Routes()

	infos := make([]routeInfo, len(routes))
	for i := range routes {
		infos[i] = newRouteInfo(routes[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleRouteResource returns a single stored route.
func (s *Server) handleRouteResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Route == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract routeId from URI: sitemap://routes/{routeId}
	id := extractRouteID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	route, err := s.ports.Route.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting route: %w", err)
	}

	return jsonResource(req.Params.URI, newRouteInfo(*route))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRouteID extracts the route ID from a URI like sitemap://routes/{routeId}.
func extractRouteID(uri string) string {
	const prefix = uriScheme + "routes/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
