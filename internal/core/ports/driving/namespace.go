package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/sitemap/internal/core/domain"
)

// NamespaceService resolves the qualified names of an XML document.
type NamespaceService interface {
	// Resolve streams the document and returns every element and attribute
	// with its namespace resolved against the bindings in scope.
	Resolve(ctx context.Context, r io.Reader) ([]domain.ResolvedNode, error)
}
