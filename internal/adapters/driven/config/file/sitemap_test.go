package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

const tomlSitemap = `
[[route]]
name = "docs"
pattern = "docs/**.html"
action = "read"
target = "content/{1}.xml"
mime = "text/xml"

[[route]]
name = "legacy"
matcher = "regexp"
pattern = '^old/(.*)$'
action = "redirect"
target = "/docs/{1}"
status = 301
`

const yamlSitemap = `
route:
  - name: print
    matcher: parameter
    param: format
    pattern: "*-print"
    action: read
    target: "print/{1}.pdf"
  - name: home
    pattern: ""
    action: redirect
    target: /docs/index.html
`

func writeSitemap(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSitemapLoader_TOML(t *testing.T) {
	path := writeSitemap(t, "sitemap.toml", tomlSitemap)

	routes, err := NewSitemapLoader().Load(path)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, domain.Route{
		Name:     "docs",
		Pattern:  "docs/**.html",
		Action:   domain.ActionRead,
		Target:   "content/{1}.xml",
		MIME:     "text/xml",
		Position: 0,
	}, routes[0])

	assert.Equal(t, domain.MatcherRegexp, routes[1].Matcher)
	assert.Equal(t, `^old/(.*)$`, routes[1].Pattern)
	assert.Equal(t, 301, routes[1].Status)
	assert.Equal(t, 1, routes[1].Position)
}

func TestSitemapLoader_YAML(t *testing.T) {
	for _, name := range []string{"sitemap.yaml", "sitemap.yml"} {
		t.Run(name, func(t *testing.T) {
			path := writeSitemap(t, name, yamlSitemap)

			routes, err := NewSitemapLoader().Load(path)
			require.NoError(t, err)
			require.Len(t, routes, 2)

			assert.Equal(t, domain.MatcherParameter, routes[0].Matcher)
			assert.Equal(t, "format", routes[0].Param)
			assert.Equal(t, "*-print", routes[0].Pattern)
			assert.Equal(t, domain.ActionRedirect, routes[1].Action)
			assert.Equal(t, 1, routes[1].Position)
		})
	}
}

func TestSitemapLoader_EmptyYAML(t *testing.T) {
	path := writeSitemap(t, "empty.yaml", "")

	routes, err := NewSitemapLoader().Load(path)
	require.NoError(t, err)
	assert.Empty(t, routes)
}

func TestSitemapLoader_Errors(t *testing.T) {
	loader := NewSitemapLoader()

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		path := writeSitemap(t, "sitemap.json", "{}")
		_, err := loader.Load(path)
		assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	})

	t.Run("unknown toml field", func(t *testing.T) {
		path := writeSitemap(t, "bad.toml", "[[route]]\npatern = \"x\"\n")
		_, err := loader.Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown yaml field", func(t *testing.T) {
		path := writeSitemap(t, "bad.yaml", "route:\n  - patern: x\n")
		_, err := loader.Load(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}
