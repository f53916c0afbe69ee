package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/logger"
)

// activateRoutes loads the stored routes followed by the routes of the
// sitemap file at path (if any) into the match service. File routes are
// validated like stored ones; one bad route rejects the whole file.
func activateRoutes(ctx context.Context, path string) ([]domain.Route, error) {
	if matchService == nil {
		return nil, fmt.Errorf("match %w", errServiceUnavailable)
	}

	var routes []domain.Route
	if routeService != nil {
		stored, err := routeService.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing stored routes: %w", err)
		}
		routes = append(routes, stored...)
	}

	if path != "" {
		loaded, err := loadSitemap(path)
		if err != nil {
			return nil, err
		}
		base := len(routes)
		for i := range loaded {
			loaded[i].Position = base + i
		}
		routes = append(routes, loaded...)
		logger.Debug("Loaded %d routes from %s", len(loaded), path)
	}

	if err := matchService.SetRoutes(routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// loadSitemap reads and validates the routes of a sitemap file.
func loadSitemap(path string) ([]domain.Route, error) {
	if sitemapLoader == nil {
		return nil, fmt.Errorf("sitemap loader %w", errServiceUnavailable)
	}
	if routeService == nil {
		return nil, fmt.Errorf("route %w", errServiceUnavailable)
	}

	loaded, err := sitemapLoader.Load(path)
	if err != nil {
		return nil, err
	}
	for i := range loaded {
		if loaded[i].Action == "" {
			loaded[i].Action = domain.ActionRead
		}
		if err := routeService.Validate(loaded[i]); err != nil {
			return nil, fmt.Errorf("%s: route %d: %w", path, i+1, err)
		}
	}
	return loaded, nil
}

// sitemapPath returns the flag value if set, else the configured sitemap path.
func sitemapPath(cmd *cobra.Command, flag string) string {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return f.Value.String()
	}
	if configStore != nil {
		return configStore.GetString(driven.ConfigSitemapPath)
	}
	return ""
}
