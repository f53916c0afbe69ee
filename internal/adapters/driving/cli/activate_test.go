package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

func TestActivateRoutes_ValidatesSitemapFile(t *testing.T) {
	tests := []struct {
		name    string
		sitemap string
		want    error
		route   string
	}{
		{
			name:    "redirect without target",
			sitemap: testSitemap + "\n[[route]]\npattern = \"gone/*\"\naction = \"redirect\"\nstatus = 200\n",
			want:    domain.ErrInvalidRoute,
			route:   "route 3",
		},
		{
			name:    "unknown action",
			sitemap: "[[route]]\npattern = \"x/*\"\naction = \"bogus\"\n",
			want:    domain.ErrUnsupportedType,
			route:   "route 1",
		},
		{
			name:    "placeholder beyond wildcards",
			sitemap: "[[route]]\npattern = \"docs/*\"\ntarget = \"content/{2}.xml\"\n",
			want:    domain.ErrInvalidRoute,
			route:   "route 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServices(t)
			path := writeSitemap(t, tt.sitemap)

			_, err := activateRoutes(context.Background(), path)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), path+": "+tt.route)

			assert.Empty(t, ts.match.Routes())
		})
	}
}

func TestActivateRoutes_StoredThenFile(t *testing.T) {
	ts := setupTestServices(t)
	_, err := ts.routes.Add(context.Background(), domain.Route{ID: "stored", Pattern: "a"})
	require.NoError(t, err)

	routes, err := activateRoutes(context.Background(), writeSitemap(t, testSitemap))
	require.NoError(t, err)
	require.Len(t, routes, 3)
	assert.Equal(t, "stored", routes[0].ID)
	assert.Equal(t, "docs", routes[1].Name)
	assert.Equal(t, []int{1, 2}, []int{routes[1].Position, routes[2].Position})
	assert.Len(t, ts.match.Routes(), 3)
}

func TestActivateRoutes_FileNeedsRouteService(t *testing.T) {
	setupTestServices(t)
	routeService = nil

	_, err := activateRoutes(context.Background(), writeSitemap(t, testSitemap))
	assert.ErrorIs(t, err, errServiceUnavailable)
}

func TestRouteTestCmd_InvalidSitemap(t *testing.T) {
	setupTestServices(t)
	path := writeSitemap(t, "[[route]]\npattern = \"gone/*\"\naction = \"redirect\"\nstatus = 200\n")

	_, err := execute(t, "route", "test", "--sitemap", path, "/gone/a")
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
}

func TestServeCmd_InvalidSitemapRoute(t *testing.T) {
	setupTestServices(t)
	path := writeSitemap(t, "[[route]]\npattern = \"x/*\"\naction = \"bogus\"\n")

	_, err := execute(t, "serve", "--addr", "127.0.0.1:0", "--watch=false", "--sitemap", path)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}
