package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

var nsJSON bool

var nsCmd = &cobra.Command{
	Use:   "ns [file.xml|-]",
	Short: "Resolve the namespaces of an XML document",
	Long: `Reads an XML document and prints every element and attribute with the
namespace URI its prefix resolves to. Use "-" or no argument to read stdin.

Unprefixed attributes have no namespace. An undeclared prefix is an error
reported with its line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNS,
}

func init() {
	nsCmd.Flags().BoolVar(&nsJSON, "json", false, "output the resolved names as JSON")
	rootCmd.AddCommand(nsCmd)
}

func runNS(cmd *cobra.Command, args []string) error {
	if namespaceService == nil {
		return fmt.Errorf("namespace %w", errServiceUnavailable)
	}

	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening document: %w", err)
		}
		defer f.Close()
		r = f
	}

	nodes, err := namespaceService.Resolve(cmd.Context(), r)
	if err != nil {
		return err
	}

	if nsJSON {
		data, err := json.MarshalIndent(nodes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal names: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for i := range nodes {
		printNode(cmd, &nodes[i])
	}
	return nil
}

// printNode writes one line per node, indented by depth:
//
//	{uri}local  raw  line N
func printNode(cmd *cobra.Command, n *domain.ResolvedNode) {
	indent := strings.Repeat("  ", max(n.Depth-1, 0))
	if n.Kind == domain.NodeAttribute {
		indent += "  @"
	}

	name := n.Local
	if n.URI != "" {
		name = "{" + n.URI + "}" + n.Local
	}
	cmd.Printf("%s%s  %s  line %d\n", indent, name, n.Raw, n.Line)

	for _, d := range n.Declarations {
		attr := "xmlns"
		if d.Prefix != "" {
			attr += ":" + d.Prefix
		}
		cmd.Printf("%s  + %s=%q\n", indent, attr, d.URI)
	}
}
