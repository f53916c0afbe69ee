package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

func TestServer_handleMatchPattern(t *testing.T) {
	ctx := context.Background()

	t.Run("returns captures on match", func(t *testing.T) {
		ports := &Ports{Match: &mockMatchService{
			result: domain.MatchResult{Matched: true, Captures: []string{"a/b.xml", "b"}},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleMatchPattern(ctx, nil, MatchPatternInput{Pattern: "a/*.xml", Input: "a/b.xml"})

		require.NoError(t, err)
		assert.True(t, output.Matched)
		assert.Equal(t, []string{"a/b.xml", "b"}, output.Captures)
	})

	t.Run("no match", func(t *testing.T) {
		server, err := NewServer(&Ports{Match: &mockMatchService{}})
		require.NoError(t, err)

		_, output, err := server.handleMatchPattern(ctx, nil, MatchPatternInput{Pattern: "a", Input: "b"})

		require.NoError(t, err)
		assert.False(t, output.Matched)
		assert.Empty(t, output.Captures)
	})
}

func TestServer_handleRouteURI(t *testing.T) {
	ctx := context.Background()

	t.Run("redirect route reports status", func(t *testing.T) {
		ports := &Ports{Match: &mockMatchService{
			match: &domain.RouteMatch{
				Route:    domain.Route{ID: "r-1", Name: "old", Action: domain.ActionRedirect, Target: "/new/{1}"},
				Captures: []string{"old/x", "x"},
				Target:   "/new/x",
			},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRouteURI(ctx, nil, RouteURIInput{URI: "/old/x"})

		require.NoError(t, err)
		assert.True(t, output.Matched)
		assert.Equal(t, "r-1", output.RouteID)
		assert.Equal(t, "old", output.Name)
		assert.Equal(t, "redirect", output.Action)
		assert.Equal(t, "/new/x", output.Target)
		assert.Equal(t, domain.DefaultRedirectStatus, output.Status)
		assert.Equal(t, []string{"old/x", "x"}, output.Captures)
	})

	t.Run("read route has no status", func(t *testing.T) {
		ports := &Ports{Match: &mockMatchService{
			match: &domain.RouteMatch{Route: domain.Route{Action: domain.ActionRead}, Target: "index.html"},
		}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRouteURI(ctx, nil, RouteURIInput{URI: "/"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Status)
	})

	t.Run("no route is not an error", func(t *testing.T) {
		ports := &Ports{Match: &mockMatchService{err: domain.ErrNoRoute}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRouteURI(ctx, nil, RouteURIInput{URI: "/missing"})

		require.NoError(t, err)
		assert.False(t, output.Matched)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		ports := &Ports{Match: &mockMatchService{err: errors.New("route failed")}}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleRouteURI(ctx, nil, RouteURIInput{URI: "/"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "route failed")
	})
}

func TestServer_handleResolveNames(t *testing.T) {
	ctx := context.Background()

	t.Run("returns resolved nodes", func(t *testing.T) {
		ns := &mockNamespaceService{nodes: []domain.ResolvedNode{
			{Kind: domain.NodeElement, URI: "urn:x", Local: "a", Raw: "a", Depth: 1},
		}}
		server, err := NewServer(&Ports{Match: &mockMatchService{}, Namespace: ns})
		require.NoError(t, err)

		_, output, err := server.handleResolveNames(ctx, nil, ResolveNamesInput{Document: `<a xmlns="urn:x"/>`})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "urn:x", output.Nodes[0].URI)
		assert.Equal(t, `<a xmlns="urn:x"/>`, ns.got)
	})

	t.Run("no namespace service", func(t *testing.T) {
		server, err := NewServer(&Ports{Match: &mockMatchService{}})
		require.NoError(t, err)

		_, _, err = server.handleResolveNames(ctx, nil, ResolveNamesInput{Document: "<a/>"})
		assert.ErrorIs(t, err, ErrNamespaceUnavailable)
	})

	t.Run("propagates document errors", func(t *testing.T) {
		ns := &mockNamespaceService{err: domain.ErrInvalidDocument}
		server, err := NewServer(&Ports{Match: &mockMatchService{}, Namespace: ns})
		require.NoError(t, err)

		_, _, err = server.handleResolveNames(ctx, nil, ResolveNamesInput{Document: "<a"})
		assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	})
}
