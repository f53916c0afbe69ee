package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/wildcard"
)

var (
	matchJSON   bool
	matchPrefix bool
)

var matchCmd = &cobra.Command{
	Use:   "match [pattern] [input]",
	Short: "Test a wildcard pattern against an input",
	Long: `Tests a wildcard pattern against an input string and prints the captures.

  *   matches within one path segment (no "/")
  **  matches across segments
  \   escapes the next character

Capture {0} is the whole input; {1}, {2}, ... are the wildcards in order.

Examples:
  sitemap match 'docs/*.html' docs/intro.html
  sitemap match --prefix 'api/*/' api/v1/users/42`,
	Args: cobra.ExactArgs(2),
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output the result as JSON")
	matchCmd.Flags().BoolVar(&matchPrefix, "prefix", false, "accept input continuing past the end of the pattern")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	pattern, input := args[0], args[1]

	var result domain.MatchResult
	switch {
	case matchPrefix:
		result = domain.MatchResult{Pattern: pattern, Input: input}
		if caps, ok := wildcard.CompilePrefix(pattern).Match(input); ok {
			result.Matched = true
			result.Captures = caps
		}
	case matchService != nil:
		result = matchService.Match(pattern, input)
	default:
		return fmt.Errorf("match %w", errServiceUnavailable)
	}

	if matchJSON {
		return outputMatchJSON(cmd, result)
	}

	if !result.Matched {
		cmd.Println("no match")
		return nil
	}
	cmd.Println("match")
	printCaptures(cmd, result.Captures)
	return nil
}

func outputMatchJSON(cmd *cobra.Command, result domain.MatchResult) error {
	data, err := sjson.SetBytes([]byte(`{}`), "pattern", result.Pattern)
	if err == nil {
		data, err = sjson.SetBytes(data, "input", result.Input)
	}
	if err == nil {
		data, err = sjson.SetBytes(data, "matched", result.Matched)
	}
	if err == nil {
		data, err = capturesJSON(data, "captures", result.Captures)
	}
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	printJSON(cmd, data)
	return nil
}
