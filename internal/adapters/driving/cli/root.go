// Package cli implements the sitemap command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose bool
	dataDir string
)

// Services injected by Bootstrap or SetServices.
var (
	matchService     driving.MatchService
	routeService     driving.RouteService
	namespaceService driving.NamespaceService
	configStore      driven.ConfigStore
	sitemapLoader    driven.SitemapLoader
)

// errServiceUnavailable is returned when a command runs without the service it needs.
var errServiceUnavailable = errors.New("service not configured")

// Services groups the dependencies the commands drive.
type Services struct {
	Match     driving.MatchService
	Route     driving.RouteService
	Namespace driving.NamespaceService
	Config    driven.ConfigStore
	Loader    driven.SitemapLoader
}

// Bootstrap builds the services once flags are parsed.
// The returned cleanup func is called when the command finishes.
type Bootstrap func(ctx context.Context, dataDir string) (*Services, func() error, error)

var (
	bootstrap Bootstrap
	cleanup   func() error
)

var rootCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Wildcard routing and XML namespace tools",
	Long: `sitemap matches request URIs against wildcard sitemaps and resolves
XML namespaces.

Patterns use "*" for a single path segment and "**" for any number of
segments. Each wildcard's text is captured and can be substituted into a
route target as {1}, {2}, ...`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for config and route storage (default ~/.sitemap)")
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices injects services directly, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	matchService = s.Match
	routeService = s.Route
	namespaceService = s.Namespace
	configStore = s.Config
	sitemapLoader = s.Loader
}

// SetVersion sets the version reported by "sitemap version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap != nil && cleanup == nil {
		s, done, err := bootstrap(cmd.Context(), dataDir)
		if err != nil {
			return fmt.Errorf("initialising: %w", err)
		}
		SetServices(s)
		cleanup = done
	}

	if configStore != nil && configStore.GetBool(driven.ConfigLogVerbose) {
		logger.SetVerbose(true)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, releasing services afterwards.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cleanup != nil {
		if cerr := cleanup(); cerr != nil {
			logger.Warn("cleanup: %v", cerr)
		}
		cleanup = nil
	}
	_ = logger.Sync()
	return err
}
