// Package mcp provides an MCP (Model Context Protocol) server adapter for the sitemap.
// It lets AI assistants test patterns, route URIs and resolve XML names.
package mcp

import "errors"

// ErrMissingMatchService is returned when the match service is not provided.
var ErrMissingMatchService = errors.New("mcp: match service is required")

// ErrNamespaceUnavailable is returned by resolve_names when no namespace service is configured.
var ErrNamespaceUnavailable = errors.New("mcp: namespace service is not configured")
