package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/matchers"
)

func newTestMatchService(t *testing.T, routes ...domain.Route) *MatchService {
	t.Helper()
	svc := NewMatchService(matchers.DefaultRegistry())
	require.NoError(t, svc.SetRoutes(routes))
	return svc
}

func TestMatchService_Match(t *testing.T) {
	svc := NewMatchService(matchers.DefaultRegistry())

	res := svc.Match("docs/**/*.xml", "docs/a/b/index.xml")
	assert.True(t, res.Matched)
	assert.Equal(t, []string{"docs/a/b/index.xml", "a/b", "index"}, res.Captures)
	assert.Equal(t, "docs/**/*.xml", res.Pattern)
	assert.Equal(t, "docs/a/b/index.xml", res.Input)

	res = svc.Match("docs/*.xml", "docs/a/index.xml")
	assert.False(t, res.Matched)
	assert.Nil(t, res.Captures)
}

func TestMatchService_MatchCacheBounded(t *testing.T) {
	svc := NewMatchService(nil)
	svc.cacheCap = 2

	svc.Match("a", "a")
	svc.Match("b", "b")
	svc.Match("c", "c")

	assert.LessOrEqual(t, len(svc.cache), 2)
	assert.True(t, svc.Match("a", "a").Matched)
}

func TestMatchService_Route_FirstMatchWins(t *testing.T) {
	svc := newTestMatchService(t,
		domain.Route{ID: "specific", Pattern: "docs/index.html", Action: domain.ActionRead, Target: "home.html"},
		domain.Route{ID: "general", Pattern: "docs/*.html", Action: domain.ActionRead, Target: "content/{1}.xml"},
	)
	ctx := context.Background()

	m, err := svc.Route(ctx, domain.Request{URI: "/docs/index.html"})
	require.NoError(t, err)
	assert.Equal(t, "specific", m.Route.ID)
	assert.Equal(t, "home.html", m.Target)

	m, err = svc.Route(ctx, domain.Request{URI: "/docs/guide.html"})
	require.NoError(t, err)
	assert.Equal(t, "general", m.Route.ID)
	assert.Equal(t, "content/guide.xml", m.Target)
	assert.Equal(t, []string{"docs/guide.html", "guide"}, m.Captures)
}

func TestMatchService_Route_EmptyReadTargetUsesPath(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{Matcher: domain.MatcherHost, Pattern: "*.example.org", Action: domain.ActionRead})

	m, err := svc.Route(context.Background(), domain.Request{URI: "/css/site.css", Host: "docs.example.org"})
	require.NoError(t, err)
	assert.Equal(t, "css/site.css", m.Target)
	assert.Equal(t, []string{"docs.example.org", "docs"}, m.Captures)
}

func TestMatchService_Route_NoRoute(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{Pattern: "docs/*", Action: domain.ActionRead})

	_, err := svc.Route(context.Background(), domain.Request{URI: "/img/logo.png"})
	assert.ErrorIs(t, err, domain.ErrNoRoute)
}

func TestMatchService_Route_BadTargetPlaceholder(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{Pattern: "*", Action: domain.ActionRead, Target: "{2}"})

	_, err := svc.Route(context.Background(), domain.Request{URI: "/x"})
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)
}

func TestMatchService_Route_CancelledContext(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{Pattern: "*", Action: domain.ActionRead})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Route(ctx, domain.Request{URI: "/x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchService_Route_OtherMatchers(t *testing.T) {
	svc := newTestMatchService(t,
		domain.Route{ID: "mobile", Matcher: domain.MatcherHeader, Param: "User-Agent", Pattern: "*Mobile*",
			Action: domain.ActionRedirect, Target: "/m/"},
		domain.Route{ID: "print", Matcher: domain.MatcherParameter, Param: "format", Pattern: "*-print",
			Action: domain.ActionRead, Target: "print/{1}.css"},
		domain.Route{ID: "news", Matcher: domain.MatcherRegexp, Pattern: `^news/(\d+)$`,
			Action: domain.ActionRead, Target: "news/{1}.xml"},
	)
	ctx := context.Background()

	m, err := svc.Route(ctx, domain.Request{URI: "/", Headers: map[string]string{"user-agent": "A Mobile B"}})
	require.NoError(t, err)
	assert.Equal(t, "mobile", m.Route.ID)

	m, err = svc.Route(ctx, domain.Request{URI: "/", Params: map[string]string{"format": "a4-print"}})
	require.NoError(t, err)
	assert.Equal(t, "print/a4.css", m.Target)

	m, err = svc.Route(ctx, domain.Request{URI: "/news/42"})
	require.NoError(t, err)
	assert.Equal(t, "news/42.xml", m.Target)
}

func TestMatchService_SetRoutes_InvalidKeepsPrevious(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{ID: "a", Pattern: "a", Action: domain.ActionRead})

	err := svc.SetRoutes([]domain.Route{{Matcher: domain.MatcherRegexp, Pattern: "(", Action: domain.ActionRead}})
	assert.ErrorIs(t, err, domain.ErrInvalidRoute)

	routes := svc.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "a", routes[0].ID)
}

func TestMatchService_SetRoutes_NoFactory(t *testing.T) {
	svc := NewMatchService(nil)
	assert.ErrorIs(t, svc.SetRoutes(nil), domain.ErrNotImplemented)
}

func TestMatchService_ConcurrentSwap(t *testing.T) {
	svc := newTestMatchService(t, domain.Route{Pattern: "**", Action: domain.ActionRead})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Route(ctx, domain.Request{URI: "/a/b"})
			_ = svc.Match("*", "x")
		}()
		go func() {
			defer wg.Done()
			_ = svc.SetRoutes([]domain.Route{{Pattern: "**", Action: domain.ActionRead}})
		}()
	}
	wg.Wait()
}
