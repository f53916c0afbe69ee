package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/match"
	"github.com/tidwall/sjson"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Manage sitemap routes",
	Long: `Add, list and remove stored routes, import routes from a sitemap file,
and test which route a request selects.

Routes are evaluated in position order and the first match wins.`,
}

var routeAdd struct {
	id       string
	name     string
	matcher  string
	pattern  string
	param    string
	action   string
	target   string
	mime     string
	status   int
	position int
}

var routeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a route",
	Long: `Adds a route after the existing ones, or at --position.

Matchers:
  uri        the request path (default)
  regexp     the request path, as a regular expression
  parameter  the request parameter named by --param
  header     the request header named by --param
  host       the request host

Examples:
  sitemap route add --pattern 'docs/*.html' --target 'content/{1}.xml' --mime text/xml
  sitemap route add --pattern 'old/**' --action redirect --target '/new/{1}' --status 301`,
	Args: cobra.NoArgs,
	RunE: runRouteAdd,
}

var (
	routeListFilter string
	routeListJSON   bool
)

var routeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored routes",
	Long: `Lists stored routes in evaluation order.

--filter takes a glob ("*" and "?") tested against the route name and pattern.`,
	Args: cobra.NoArgs,
	RunE: runRouteList,
}

var routeGetCmd = &cobra.Command{
	Use:   "get [route-id]",
	Short: "Show a stored route",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteGet,
}

var routeRemoveCmd = &cobra.Command{
	Use:   "remove [route-id]",
	Short: "Remove a stored route",
	Args:  cobra.ExactArgs(1),
	RunE:  runRouteRemove,
}

var routeImportCmd = &cobra.Command{
	Use:   "import [sitemap-file]",
	Short: "Import routes from a TOML or YAML sitemap",
	Long: `Validates every route in the file and appends them after the stored routes.
Nothing is stored if any route is invalid.

  [[route]]
  name = "docs"
  pattern = "docs/*.html"
  target = "content/{1}.xml"`,
	Args: cobra.ExactArgs(1),
	RunE: runRouteImport,
}

var routeTest struct {
	sitemap string
	host    string
	params  []string
	headers []string
	json    bool
}

var routeTestCmd = &cobra.Command{
	Use:   "test [uri]",
	Short: "Show which route a request selects",
	Long: `Routes a request through the stored routes followed by the sitemap file
(--sitemap, or the sitemap.path setting) and prints the selected route and
its expanded target.`,
	Args: cobra.ExactArgs(1),
	RunE: runRouteTest,
}

func init() {
	f := routeAddCmd.Flags()
	f.StringVar(&routeAdd.id, "id", "", "route ID (generated when empty)")
	f.StringVar(&routeAdd.name, "name", "", "route name")
	f.StringVarP(&routeAdd.matcher, "matcher", "m", string(domain.MatcherURI), "matcher type")
	f.StringVarP(&routeAdd.pattern, "pattern", "p", "", "pattern to match")
	f.StringVar(&routeAdd.param, "param", "", "parameter or header name for parameter/header matchers")
	f.StringVarP(&routeAdd.action, "action", "a", string(domain.ActionRead), "action on match (read or redirect)")
	f.StringVarP(&routeAdd.target, "target", "t", "", "file or redirect location, with {n} placeholders")
	f.StringVar(&routeAdd.mime, "mime", "", "content type for read routes")
	f.IntVar(&routeAdd.status, "status", 0, "redirect status (default 302)")
	f.IntVar(&routeAdd.position, "position", 0, "evaluation position (default: after the last route)")
	_ = routeAddCmd.MarkFlagRequired("pattern")

	routeListCmd.Flags().StringVarP(&routeListFilter, "filter", "f", "", "glob matched against name and pattern")
	routeListCmd.Flags().BoolVar(&routeListJSON, "json", false, "output routes as JSON")

	tf := routeTestCmd.Flags()
	tf.StringVarP(&routeTest.sitemap, "sitemap", "s", "", "sitemap file routed after the stored routes")
	tf.StringVar(&routeTest.host, "host", "", "request host")
	tf.StringArrayVar(&routeTest.params, "param", nil, "request parameter as name=value (repeatable)")
	tf.StringArrayVarP(&routeTest.headers, "header", "H", nil, "request header as name=value (repeatable)")
	tf.BoolVar(&routeTest.json, "json", false, "output the match as JSON")

	routeCmd.AddCommand(routeAddCmd, routeListCmd, routeGetCmd, routeRemoveCmd, routeImportCmd, routeTestCmd)
	rootCmd.AddCommand(routeCmd)
}

func runRouteAdd(cmd *cobra.Command, _ []string) error {
	if routeService == nil {
		return fmt.Errorf("route %w", errServiceUnavailable)
	}

	route := domain.Route{
		ID:       routeAdd.id,
		Name:     routeAdd.name,
		Matcher:  domain.MatcherType(routeAdd.matcher),
		Pattern:  routeAdd.pattern,
		Param:    routeAdd.param,
		Action:   domain.Action(routeAdd.action),
		Target:   routeAdd.target,
		MIME:     routeAdd.mime,
		Status:   routeAdd.status,
		Position: routeAdd.position,
	}

	added, err := routeService.Add(cmd.Context(), route)
	if err != nil {
		return fmt.Errorf("failed to add route: %w", err)
	}

	cmd.Printf("Route added: %s (position %d)\n", added.ID, added.Position)
	return nil
}

func runRouteList(cmd *cobra.Command, _ []string) error {
	if routeService == nil {
		return fmt.Errorf("route %w", errServiceUnavailable)
	}

	routes, err := routeService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list routes: %w", err)
	}
	routes = filterRoutes(routes, routeListFilter)

	if routeListJSON {
		data := []byte(`[]`)
		for _, r := range routes {
			obj, err := routeJSON(r)
			if err != nil {
				return fmt.Errorf("encoding route %s: %w", r.ID, err)
			}
			if data, err = sjson.SetRawBytes(data, "-1", obj); err != nil {
				return fmt.Errorf("encoding routes: %w", err)
			}
		}
		printJSON(cmd, data)
		return nil
	}

	if len(routes) == 0 {
		cmd.Println("No routes configured.")
		return nil
	}

	cmd.Println("Routes:")
	for _, r := range routes {
		cmd.Printf("  %3d  %-36s  %-9s  %s", r.Position, r.ID, r.MatcherOrDefault(), r.Pattern)
		if r.MatcherOrDefault().NeedsParam() {
			cmd.Printf(" [%s]", r.Param)
		}
		cmd.Printf(" -> %s %s", r.Action, r.Target)
		if r.Name != "" {
			cmd.Printf("  (%s)", r.Name)
		}
		cmd.Println()
	}
	return nil
}

// filterRoutes keeps routes whose name or pattern matches glob.
func filterRoutes(routes []domain.Route, glob string) []domain.Route {
	if glob == "" {
		return routes
	}
	out := make([]domain.Route, 0, len(routes))
	for _, r := range routes {
		if match.Match(r.Name, glob) || match.Match(r.Pattern, glob) {
			out = append(out, r)
		}
	}
	return out
}

func runRouteGet(cmd *cobra.Command, args []string) error {
	if routeService == nil {
		return fmt.Errorf("route %w", errServiceUnavailable)
	}

	r, err := routeService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get route: %w", err)
	}

	cmd.Printf("Route: %s\n", r.ID)
	if r.Name != "" {
		cmd.Printf("  Name:     %s\n", r.Name)
	}
	cmd.Printf("  Matcher:  %s\n", r.MatcherOrDefault())
	cmd.Printf("  Pattern:  %s\n", r.Pattern)
	if r.Param != "" {
		cmd.Printf("  Param:    %s\n", r.Param)
	}
	cmd.Printf("  Action:   %s\n", r.Action)
	cmd.Printf("  Target:   %s\n", r.Target)
	if r.MIME != "" {
		cmd.Printf("  MIME:     %s\n", r.MIME)
	}
	if r.Action == domain.ActionRedirect {
		cmd.Printf("  Status:   %d\n", r.RedirectStatus())
	}
	cmd.Printf("  Position: %d\n", r.Position)
	return nil
}

func runRouteRemove(cmd *cobra.Command, args []string) error {
	if routeService == nil {
		return fmt.Errorf("route %w", errServiceUnavailable)
	}

	if err := routeService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove route: %w", err)
	}

	cmd.Printf("Route removed: %s\n", args[0])
	return nil
}

func runRouteImport(cmd *cobra.Command, args []string) error {
	if routeService == nil {
		return fmt.Errorf("route %w", errServiceUnavailable)
	}

	routes, err := routeService.Import(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	cmd.Printf("Imported %d routes from %s\n", len(routes), args[0])
	return nil
}

func runRouteTest(cmd *cobra.Command, args []string) error {
	params, err := parseKeyValues(routeTest.params)
	if err != nil {
		return err
	}
	headers, err := parseKeyValues(routeTest.headers)
	if err != nil {
		return err
	}

	if _, err := activateRoutes(cmd.Context(), sitemapPath(cmd, "sitemap")); err != nil {
		return err
	}

	req := domain.Request{URI: args[0], Host: routeTest.host, Params: params, Headers: headers}
	m, err := matchService.Route(cmd.Context(), req)
	if errors.Is(err, domain.ErrNoRoute) {
		if routeTest.json {
			printJSON(cmd, []byte(`{"matched":false}`))
			return nil
		}
		cmd.Println("No route matches.")
		return nil
	}
	if err != nil {
		return err
	}

	if routeTest.json {
		return outputRouteMatchJSON(cmd, m)
	}

	cmd.Printf("Route: %s\n", routeName(m.Route))
	cmd.Printf("  Pattern: %s\n", m.Route.Pattern)
	if m.Route.Action == domain.ActionRedirect {
		cmd.Printf("  Redirect %d: %s\n", m.Route.RedirectStatus(), m.Target)
	} else {
		cmd.Printf("  Read: %s\n", m.Target)
	}
	cmd.Println("  Captures:")
	printCaptures(cmd, m.Captures)
	return nil
}

func outputRouteMatchJSON(cmd *cobra.Command, m *domain.RouteMatch) error {
	route, err := routeJSON(m.Route)
	if err != nil {
		return fmt.Errorf("encoding route: %w", err)
	}
	data, err := sjson.SetBytes([]byte(`{}`), "matched", true)
	if err == nil {
		data, err = sjson.SetRawBytes(data, "route", route)
	}
	if err == nil {
		data, err = sjson.SetBytes(data, "target", m.Target)
	}
	if err == nil {
		data, err = capturesJSON(data, "captures", m.Captures)
	}
	if err != nil {
		return fmt.Errorf("encoding match: %w", err)
	}
	printJSON(cmd, data)
	return nil
}

func routeName(r domain.Route) string {
	switch {
	case r.Name != "":
		return r.Name
	case r.ID != "":
		return r.ID
	default:
		return fmt.Sprintf("#%d", r.Position)
	}
}
