package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sitemap/internal/adapters/driving/tui"
)

// errNotTerminal is returned when the TUI is started without a terminal.
var errNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive pattern tester",
	Long: `Launch an interactive tester that re-evaluates as you type.

Pattern mode tests one wildcard pattern against an input. Route mode routes
a URI, host and header through the stored routes followed by the sitemap
file (--sitemap, or the sitemap.path setting).

Controls:
  Tab/↓, Shift+Tab/↑ - Next / previous field
  Ctrl+R             - Switch between pattern and route mode
  Ctrl+U             - Clear the focused field
  Esc, Ctrl+C        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringP("sitemap", "s", "", "sitemap file (TOML or YAML)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	if !isTerminal() {
		return errNotTerminal
	}

	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if _, err := activateRoutes(cmd.Context(), sitemapPath(cmd, "sitemap")); err != nil {
		return err
	}

	if err := tui.Run(cmd.Context(), &tui.Ports{Match: matchService}); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
