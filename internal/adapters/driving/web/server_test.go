package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/services"
	"github.com/custodia-labs/sitemap/internal/matchers"
)

func newTestServer(t *testing.T, opts Options, routes ...domain.Route) *Server {
	t.Helper()
	match := services.NewMatchService(matchers.DefaultRegistry())
	require.NoError(t, match.SetRoutes(routes))
	return NewServer(match, opts)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func do(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestServer_ReadRoute(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "content/guide.xml", "<guide/>")

	s := newTestServer(t, Options{Root: root},
		domain.Route{Pattern: "docs/*.html", Action: domain.ActionRead, Target: "content/{1}.xml", MIME: "text/xml"},
	)

	rec := do(s.Handler(), http.MethodGet, "/docs/guide.html")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<guide/>", rec.Body.String())
	assert.Equal(t, "text/xml", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestServer_RedirectRoute(t *testing.T) {
	s := newTestServer(t, Options{},
		domain.Route{Pattern: "old/**", Action: domain.ActionRedirect, Target: "/new/{1}", Status: http.StatusMovedPermanently},
		domain.Route{Pattern: "tmp/*", Action: domain.ActionRedirect, Target: "/t/{1}"},
	)

	rec := do(s.Handler(), http.MethodGet, "/old/a/b")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/new/a/b", rec.Header().Get("Location"))

	rec = do(s.Handler(), http.MethodGet, "/tmp/x")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/t/x", rec.Header().Get("Location"))
}

func TestServer_NoRoute(t *testing.T) {
	s := newTestServer(t, Options{}, domain.Route{Pattern: "docs/*", Action: domain.ActionRead, Target: "{1}"})

	rec := do(s.Handler(), http.MethodGet, "/img/logo.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_MissingFile(t *testing.T) {
	s := newTestServer(t, Options{Root: t.TempDir()}, domain.Route{Pattern: "*", Action: domain.ActionRead, Target: "{1}"})

	rec := do(s.Handler(), http.MethodGet, "/nothing.html")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_TraversalRefused(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "site")
	writeFile(t, parent, "secret.txt", "secret")
	writeFile(t, root, "index.html", "home")

	s := newTestServer(t, Options{Root: root},
		domain.Route{Pattern: "file", Matcher: domain.MatcherURI, Action: domain.ActionRead, Target: "../secret.txt"},
	)

	rec := do(s.Handler(), http.MethodGet, "/file")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Options{}, domain.Route{Pattern: "**", Action: domain.ActionRead, Target: "x"})

	rec := do(s.Handler(), http.MethodPost, "/a")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestServer_RequestIDReused(t *testing.T) {
	s := newTestServer(t, Options{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
}

func TestServer_RateLimited(t *testing.T) {
	s := newTestServer(t, Options{Rate: 0.001, Burst: 1}, domain.Route{Pattern: "**", Action: domain.ActionRedirect, Target: "/"})
	h := s.Handler()

	assert.Equal(t, http.StatusFound, do(h, http.MethodGet, "/a").Code)

	rec := do(h, http.MethodGet, "/a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(HeaderRetryAfter))
}

func TestNewRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://docs.example.org:8080/a/b?format=pdf&format=html", nil)
	r.Header.Set("User-Agent", "test")

	req := NewRequest(r)

	assert.Equal(t, "/a/b", req.URI)
	assert.Equal(t, "docs.example.org", req.Host)
	assert.Equal(t, "pdf", req.Params["format"])
	v, ok := req.Header("user-agent")
	assert.True(t, ok)
	assert.Equal(t, "test", v)
}

func TestResolveUnder(t *testing.T) {
	root := t.TempDir()

	p, ok := resolveUnder(root, "a/b.html")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(root, "a", "b.html"), p)

	_, ok = resolveUnder(root, "/a/../../etc/passwd")
	assert.False(t, ok)

	_, ok = resolveUnder(root, "")
	assert.False(t, ok)

	_, ok = resolveUnder(root, "..")
	assert.False(t, ok)
}

func TestLimiter_NilAdmitsAll(t *testing.T) {
	var l *Limiter
	assert.Nil(t, NewLimiter(0, 5))
	assert.True(t, l.Allow())
}

func TestServer_RunAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	root := t.TempDir()
	writeFile(t, root, "index.html", "home")
	s := newTestServer(t, Options{Addr: "127.0.0.1:0", Root: root},
		domain.Route{Pattern: "", Action: domain.ActionRead, Target: "index.html"},
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return s.Port() != 0 }, 2*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get(s.URL())
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "home", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
