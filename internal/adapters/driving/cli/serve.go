package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/sitemap/internal/adapters/driving/web"
	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
	"github.com/custodia-labs/sitemap/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sitemap over HTTP",
	Long: `Starts an HTTP server that routes every GET or HEAD request through the
stored routes followed by the sitemap file.

Read routes serve the target file from --root. Redirect routes answer with
the route's status and the expanded target as Location. The sitemap file is
watched and reloaded when it changes; a broken edit keeps the previous
routes active.

Defaults come from the serve.* and sitemap.path settings.

Examples:
  sitemap serve --sitemap sitemap.toml --root ./public
  sitemap serve --addr :9000 --rate 50 --burst 100`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", web.DefaultAddr, "listen address")
	f.String("root", ".", "directory read routes serve files from")
	f.StringP("sitemap", "s", "", "sitemap file (TOML or YAML)")
	f.Float64("rate", 0, "requests per second (0 = unlimited)")
	f.Int("burst", web.DefaultBurst, "request burst when rate limited")
	f.Bool("watch", true, "reload the sitemap file when it changes")
	f.Bool("open", false, "open the server in a browser")
	rootCmd.AddCommand(serveCmd)
}

// serveOptions merges explicit flags over configured values.
func serveOptions(cmd *cobra.Command) web.Options {
	opts := web.Options{Addr: web.DefaultAddr, Root: ".", Burst: web.DefaultBurst}
	if configStore != nil {
		if v := configStore.GetString(driven.ConfigServeAddr); v != "" {
			opts.Addr = v
		}
		if v := configStore.GetString(driven.ConfigServeRoot); v != "" {
			opts.Root = v
		}
		opts.Rate = configStore.GetFloat(driven.ConfigServeRate)
		if v := configStore.GetInt(driven.ConfigServeBurst); v > 0 {
			opts.Burst = v
		}
	}

	f := cmd.Flags()
	if f.Changed("addr") {
		opts.Addr, _ = f.GetString("addr")
	}
	if f.Changed("root") {
		opts.Root, _ = f.GetString("root")
	}
	if f.Changed("rate") {
		opts.Rate, _ = f.GetFloat64("rate")
	}
	if f.Changed("burst") {
		opts.Burst, _ = f.GetInt("burst")
	}
	return opts
}

func runServe(cmd *cobra.Command, _ []string) error {
	path := sitemapPath(cmd, "sitemap")
	routes, err := activateRoutes(cmd.Context(), path)
	if err != nil {
		return err
	}

	opts := serveOptions(cmd)
	server := web.NewServer(matchService, opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(); err != nil {
		return err
	}
	cmd.Printf("Serving %d routes on %s\n", len(routes), server.URL())

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := web.OpenBrowser(server.URL()); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-gctx.Done():
			return server.Stop()
		case err := <-server.Err():
			_ = server.Stop()
			return err
		}
	})

	if watch, _ := cmd.Flags().GetBool("watch"); watch && path != "" {
		w := web.NewWatcher(path, func() error {
			routes, err := activateRoutes(gctx, path)
			if err != nil {
				return err
			}
			logger.Info("Reloaded %d routes", len(routes))
			return nil
		})
		g.Go(func() error {
			return w.Run(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("serving: %w", err)
	}
	cmd.Println("Server stopped.")
	return nil
}
