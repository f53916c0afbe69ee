package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// printJSON writes raw JSON indented.
func printJSON(cmd *cobra.Command, data []byte) {
	cmd.Print(string(pretty.Pretty(data)))
}

// capturesJSON sets captures as an array at path.
func capturesJSON(data []byte, path string, captures []string) ([]byte, error) {
	if captures == nil {
		captures = []string{}
	}
	return sjson.SetBytes(data, path, captures)
}

// routeJSON encodes a route as a JSON object, omitting empty optional fields.
func routeJSON(r domain.Route) ([]byte, error) {
	fields := []struct {
		path  string
		value any
		skip  bool
	}{
		{"id", r.ID, false},
		{"name", r.Name, r.Name == ""},
		{"matcher", string(r.MatcherOrDefault()), false},
		{"pattern", r.Pattern, false},
		{"param", r.Param, r.Param == ""},
		{"action", string(r.Action), false},
		{"target", r.Target, r.Target == ""},
		{"mime", r.MIME, r.MIME == ""},
		{"status", r.Status, r.Status == 0},
		{"position", r.Position, false},
	}

	data := []byte(`{}`)
	var err error
	for _, f := range fields {
		if f.skip {
			continue
		}
		if data, err = sjson.SetBytes(data, f.path, f.value); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// printCaptures writes captures as "{n} text" lines.
func printCaptures(cmd *cobra.Command, captures []string) {
	for i, c := range captures {
		cmd.Printf("  {%d} %s\n", i, c)
	}
}

// parseKeyValues parses repeated key=value flags.
func parseKeyValues(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", domain.ErrInvalidInput, p)
		}
		out[k] = v
	}
	return out, nil
}
