package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitemap/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `Settings are stored in config.toml in the data directory.

Keys:
  sitemap.path  sitemap file routed after the stored routes
  serve.addr    listen address for "sitemap serve" (default :8888)
  serve.root    directory read routes serve files from (default .)
  serve.rate    requests per second, 0 for unlimited
  serve.burst   request burst when rate limited (default 20)
  log.verbose   always log at debug level`,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Stores a setting. Values that parse as booleans, integers or floats are
stored with that type.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

// knownKeys are listed by "sitemap config" even when unset.
var knownKeys = []string{
	driven.ConfigSitemapPath,
	driven.ConfigServeAddr,
	driven.ConfigServeRoot,
	driven.ConfigServeRate,
	driven.ConfigServeBurst,
	driven.ConfigLogVerbose,
}

func init() {
	configCmd.AddCommand(configGetCmd, configSetCmd, configUnsetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func requireConfig() error {
	if configStore == nil {
		return fmt.Errorf("config %w", errServiceUnavailable)
	}
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(knownKeys))
	for _, k := range knownKeys {
		seen[k] = true
		v, _ := configStore.Get(k)
		cmd.Printf("%-13s = %s\n", k, formatValue(v))
	}
	for _, k := range configStore.Keys() {
		if seen[k] {
			continue
		}
		v, _ := configStore.Get(k)
		cmd.Printf("%-13s = %s\n", k, formatValue(v))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	v, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("setting %q is not set", args[0])
	}
	cmd.Println(formatValue(v))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	key, value := args[0], parseValue(args[1])
	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s = %s\n", key, formatValue(value))
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if err := requireConfig(); err != nil {
		return err
	}

	if err := configStore.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	cmd.Printf("%s unset\n", args[0])
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := requireConfig(); err != nil {
		return err
	}
	cmd.Println(configStore.Path())
	return nil
}

// parseValue converts a command line value to the most specific type.
func parseValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "(unset)"
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
