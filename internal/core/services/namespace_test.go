package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/xmlns"
)

func resolve(t *testing.T, doc string) []domain.ResolvedNode {
	t.Helper()
	nodes, err := NewNamespaceService().Resolve(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	return nodes
}

func TestNamespaceService_DefaultAndPrefixed(t *testing.T) {
	nodes := resolve(t, `<map:sitemap xmlns:map="http://example.org/sitemap/1.0" xmlns="urn:default">
  <map:match pattern="*.html" map:type="uri">
    <page/>
  </map:match>
</map:sitemap>`)

	require.Len(t, nodes, 5)

	root := nodes[0]
	assert.Equal(t, domain.NodeElement, root.Kind)
	assert.Equal(t, "http://example.org/sitemap/1.0", root.URI)
	assert.Equal(t, "map", root.Prefix)
	assert.Equal(t, "sitemap", root.Local)
	assert.Equal(t, 1, root.Depth)
	assert.Equal(t, 1, root.Line)
	assert.Equal(t, []domain.NamespaceDeclaration{
		{Prefix: "map", URI: "http://example.org/sitemap/1.0"},
		{Prefix: "", URI: "urn:default"},
	}, root.Declarations)

	match := nodes[1]
	assert.Equal(t, "match", match.Local)
	assert.Equal(t, 2, match.Depth)

	plain := nodes[2]
	assert.Equal(t, domain.NodeAttribute, plain.Kind)
	assert.Equal(t, "pattern", plain.Raw)
	assert.Empty(t, plain.URI, "unprefixed attributes are in no namespace")

	typed := nodes[3]
	assert.Equal(t, "map:type", typed.Raw)
	assert.Equal(t, "http://example.org/sitemap/1.0", typed.URI)

	page := nodes[4]
	assert.Equal(t, "page", page.Raw)
	assert.Equal(t, "urn:default", page.URI)
	assert.Equal(t, 3, page.Depth)
}

func TestNamespaceService_ShadowingAndRestore(t *testing.T) {
	nodes := resolve(t, `<a xmlns:p="urn:outer"><b xmlns:p="urn:inner"><p:c/></b><p:d/></a>`)

	require.Len(t, nodes, 4)
	assert.Equal(t, "urn:inner", nodes[2].URI)
	assert.Equal(t, "urn:outer", nodes[3].URI, "outer binding is restored after the inner scope closes")
}

func TestNamespaceService_XMLPrefixPredeclared(t *testing.T) {
	nodes := resolve(t, `<doc xml:lang="en"/>`)

	require.Len(t, nodes, 2)
	assert.Equal(t, xmlns.XMLNamespace, nodes[1].URI)
	assert.Equal(t, "xml", nodes[1].Prefix)
}

func TestNamespaceService_UndeclaredDefault(t *testing.T) {
	nodes := resolve(t, `<a xmlns="urn:x"><b xmlns=""/></a>`)

	require.Len(t, nodes, 2)
	assert.Equal(t, "urn:x", nodes[0].URI)
	assert.Empty(t, nodes[1].URI)
}

func TestNamespaceService_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"undeclared element prefix", `<p:a/>`},
		{"undeclared attribute prefix", `<a q:x="1"/>`},
		{"prefix out of scope", `<a><b xmlns:p="urn:p"/><p:c/></a>`},
		{"mismatched end", `<a></b>`},
		{"unclosed", `<a><b></b>`},
		{"empty", ``},
		{"malformed", `<a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNamespaceService().Resolve(context.Background(), strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, domain.ErrInvalidDocument)
		})
	}
}

func TestNamespaceService_ResolveErrorExposed(t *testing.T) {
	_, err := NewNamespaceService().Resolve(context.Background(), strings.NewReader(`<p:a/>`))
	assert.ErrorIs(t, err, xmlns.ErrPrefixNotDeclared)
	assert.ErrorIs(t, err, xmlns.ErrResolve)
}

func TestNamespaceService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewNamespaceService().Resolve(ctx, strings.NewReader(`<a/>`))
	assert.ErrorIs(t, err, context.Canceled)
}
