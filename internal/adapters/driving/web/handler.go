package web

import (
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
)

// routeHandler answers requests with the first matching route.
type routeHandler struct {
	match driving.MatchService
	root  string
}

func (h *routeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	m, err := h.match.Route(r.Context(), NewRequest(r))
	if errors.Is(err, domain.ErrNoRoute) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.Error("routing %s: %v", r.URL.Path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	switch m.Route.Action {
	case domain.ActionRedirect:
		http.Redirect(w, r, m.Target, m.Route.RedirectStatus())
	default:
		h.serveFile(w, r, m)
	}
}

// serveFile serves the route target from the document root.
// Targets resolving outside the root are refused.
func (h *routeHandler) serveFile(w http.ResponseWriter, r *http.Request, m *domain.RouteMatch) {
	path, ok := resolveUnder(h.root, m.Target)
	if !ok {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		logger.Error("opening %s: %v", path, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	if m.Route.MIME != "" {
		w.Header().Set("Content-Type", m.Route.MIME)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// resolveUnder joins target to root and reports whether the result stays inside root.
func resolveUnder(root, target string) (string, bool) {
	if target == "" {
		return "", false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	path := filepath.Join(absRoot, filepath.FromSlash(strings.TrimPrefix(target, "/")))
	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return path, true
}

// NewRequest converts an HTTP request to the transport-neutral form matchers inspect.
// Only the first value of repeated parameters and headers is kept.
func NewRequest(r *http.Request) domain.Request {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	params := make(map[string]string)
	for k, v := range r.URL.Query() {
		if len(v) > 0 {
			params[k] = v[0]
		}
	}

	headers := make(map[string]string, len(r.Header))
	for k, v := range r.Header {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	return domain.Request{
		URI:     r.URL.Path,
		Host:    host,
		Params:  params,
		Headers: headers,
	}
}
