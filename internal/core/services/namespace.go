package services

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/sitemap/internal/core/domain"
	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
	"github.com/custodia-labs/sitemap/internal/xmlns"
)

// Ensure NamespaceService implements the interface.
var _ driving.NamespaceService = (*NamespaceService)(nil)

// NamespaceService resolves element and attribute names of XML documents
// against the namespace declarations in scope.
type NamespaceService struct{}

// NewNamespaceService creates a new namespace service.
func NewNamespaceService() *NamespaceService {
	return &NamespaceService{}
}

// prefixLogger reports prefix mapping events at debug level.
type prefixLogger struct{}

func (prefixLogger) StartPrefixMapping(prefix, uri string) error {
	logger.Debug("start prefix mapping %q -> %q", prefix, uri)
	return nil
}

func (prefixLogger) EndPrefixMapping(prefix string) error {
	logger.Debug("end prefix mapping %q", prefix)
	return nil
}

// Resolve streams the document and returns every element and attribute in
// document order. Unprefixed attributes are in no namespace. Namespace
// declarations are reported on the element carrying them, not as attributes.
func (s *NamespaceService) Resolve(ctx context.Context, r io.Reader) ([]domain.ResolvedNode, error) {
	dec := xml.NewDecoder(r)
	table := xmlns.New()
	handler := prefixLogger{}

	var nodes []domain.ResolvedNode
	var open []string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
		}
		line, _ := dec.InputPos()

		switch t := tok.(type) {
		case xml.StartElement:
			var decls []domain.NamespaceDeclaration
			var attrs []xml.Attr
			for _, a := range t.Attr {
				switch {
				case a.Name.Space == xmlns.XMLNSPrefix:
					table.Declare(a.Name.Local, a.Value)
					decls = append(decls, domain.NamespaceDeclaration{Prefix: a.Name.Local, URI: a.Value})
				case a.Name.Space == "" && a.Name.Local == xmlns.XMLNSPrefix:
					table.Declare("", a.Value)
					decls = append(decls, domain.NamespaceDeclaration{Prefix: "", URI: a.Value})
				default:
					attrs = append(attrs, a)
				}
			}
			if err := table.EnterScope(handler); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
			}

			raw := qname(t.Name)
			name, err := table.Resolve("", raw, "", "")
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: element %s: %w", domain.ErrInvalidDocument, line, raw, err)
			}
			open = append(open, raw)
			depth := table.Depth()
			nodes = append(nodes, domain.ResolvedNode{
				Kind:         domain.NodeElement,
				Depth:        depth,
				URI:          name.URI,
				Prefix:       name.Prefix,
				Local:        name.Local,
				Raw:          name.Raw,
				Line:         line,
				Declarations: decls,
			})

			for _, a := range attrs {
				node := domain.ResolvedNode{
					Kind:  domain.NodeAttribute,
					Depth: depth,
					Local: a.Name.Local,
					Raw:   qname(a.Name),
					Line:  line,
				}
				if a.Name.Space != "" {
					attr, err := table.Resolve("", node.Raw, "", "")
					if err != nil {
						return nil, fmt.Errorf("%w: line %d: attribute %s: %w", domain.ErrInvalidDocument, line, node.Raw, err)
					}
					node.URI, node.Prefix = attr.URI, attr.Prefix
				}
				nodes = append(nodes, node)
			}

		case xml.EndElement:
			raw := qname(t.Name)
			if len(open) == 0 || open[len(open)-1] != raw {
				return nil, fmt.Errorf("%w: line %d: unexpected end element </%s>", domain.ErrInvalidDocument, line, raw)
			}
			open = open[:len(open)-1]
			if _, err := table.LeaveScope(handler); err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
			}
		}
	}

	if len(open) > 0 {
		return nil, fmt.Errorf("%w: unclosed element <%s>", domain.ErrInvalidDocument, open[len(open)-1])
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no root element", domain.ErrInvalidDocument)
	}
	return nodes, nil
}

func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
