package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// MatchPatternInput is the input schema for the match_pattern tool.
type MatchPatternInput struct {
	Pattern string `json:"pattern" jsonschema:"wildcard pattern; * matches within a path segment, ** across segments"`
	Input   string `json:"input" jsonschema:"the string to test against the pattern"`
}

// MatchPatternOutput is the output schema for the match_pattern tool.
type MatchPatternOutput struct {
	Matched  bool     `json:"matched"`
	Captures []string `json:"captures,omitempty"`
}

// RouteURIInput is the input schema for the route_uri tool.
type RouteURIInput struct {
	URI     string            `json:"uri" jsonschema:"request path to route"`
	Host    string            `json:"host,omitempty" jsonschema:"request host name"`
	Params  map[string]string `json:"params,omitempty" jsonschema:"request parameters"`
	Headers map[string]string `json:"headers,omitempty" jsonschema:"request headers"`
}

// RouteURIOutput is the output schema for the route_uri tool.
type RouteURIOutput struct {
	Matched  bool     `json:"matched"`
	RouteID  string   `json:"route_id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Action   string   `json:"action,omitempty"`
	Target   string   `json:"target,omitempty"`
	Status   int      `json:"status,omitempty"`
	Captures []string `json:"captures,omitempty"`
}

// ResolveNamesInput is the input schema for the resolve_names tool.
type ResolveNamesInput struct {
	Document string `json:"document" jsonschema:"the XML document to resolve"`
}

// ResolveNamesOutput is the output schema for the resolve_names tool.
type ResolveNamesOutput struct {
	Nodes []domain.ResolvedNode `json:"nodes"`
	Count int                   `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match_pattern",
		Description: "Test a sitemap wildcard pattern against a string and return the captures",
	}, s.handleMatchPattern)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "route_uri",
		Description: "Find the first sitemap route matching a request",
	}, s.handleRouteURI)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_names",
		Description: "Resolve the namespace of every element and attribute in an XML document",
	}, s.handleResolveNames)
}

// handleMatchPattern handles the match_pattern tool invocation.
func (s *Server) handleMatchPattern(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MatchPatternInput,
) (*mcp.CallToolResult, MatchPatternOutput, error) {
	res := s.ports.Match.Match(input.Pattern, input.Input)
	return nil, MatchPatternOutput{Matched: res.Matched, Captures: res.Captures}, nil
}

// handleRouteURI handles the route_uri tool invocation.
// A request no route matches is a normal result, not an error.
func (s *Server) handleRouteURI(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RouteURIInput,
) (*mcp.CallToolResult, RouteURIOutput, error) {
	req := domain.Request{
		URI:     input.URI,
		Host:    input.Host,
		Params:  input.Params,
		Headers: input.Headers,
	}

	m, err := s.ports.Match.Route(ctx, req)
	if errors.Is(err, domain.ErrNoRoute) {
		return nil, RouteURIOutput{}, nil
	}
	if err != nil {
		return nil, RouteURIOutput{}, err
	}

	out := RouteURIOutput{
		Matched:  true,
		RouteID:  m.Route.ID,
		Name:     m.Route.Name,
		Action:   string(m.Route.Action),
		Target:   m.Target,
		Captures: m.Captures,
	}
	if m.Route.Action == domain.ActionRedirect {
		out.Status = m.Route.RedirectStatus()
	}
	return nil, out, nil
}

// handleResolveNames handles the resolve_names tool invocation.
func (s *Server) handleResolveNames(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveNamesInput,
) (*mcp.CallToolResult, ResolveNamesOutput, error) {
	if s.ports.Namespace == nil {
		return nil, ResolveNamesOutput{}, ErrNamespaceUnavailable
	}

	nodes, err := s.ports.Namespace.Resolve(ctx, strings.NewReader(input.Document))
	if err != nil {
		return nil, ResolveNamesOutput{}, err
	}
	return nil, ResolveNamesOutput{Nodes: nodes, Count: len(nodes)}, nil
}
