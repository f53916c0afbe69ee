// Command sitemap matches URIs against wildcard sitemaps and resolves XML namespaces.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/sitemap/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sitemap/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/sitemap/internal/adapters/driving/cli"
	"github.com/custodia-labs/sitemap/internal/core/services"
	"github.com/custodia-labs/sitemap/internal/logger"
	"github.com/custodia-labs/sitemap/internal/matchers"
)

// version is set at build time with -ldflags "-X main.version=v1.2.3".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters for dataDir (default ~/.sitemap):
// config.toml for settings and data/routes.db for stored routes.
func bootstrap(_ context.Context, dataDir string) (*cli.Services, func() error, error) {
	if dataDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving data directory: %w", err)
		}
		dataDir = dir
	}

	config, err := file.NewConfigStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dataDir, "data"))
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("route store: %s", store.Path())

	registry := matchers.DefaultRegistry()
	loader := file.NewSitemapLoader()

	routeService := services.NewRouteService(store.RouteStore(), registry)
	routeService.SetSitemapLoader(loader)

	return &cli.Services{
		Match:     services.NewMatchService(registry),
		Route:     routeService,
		Namespace: services.NewNamespaceService(),
		Config:    config,
		Loader:    loader,
	}, store.Close, nil
}
