package domain

// NodeKind distinguishes elements from attributes in a resolved document.
type NodeKind string

// Node kinds.
const (
	NodeElement   NodeKind = "element"
	NodeAttribute NodeKind = "attribute"
)

// ResolvedNode is an element or attribute name after namespace resolution.
type ResolvedNode struct {
	Kind   NodeKind `json:"kind"`
	Depth  int      `json:"depth"`
	URI    string   `json:"uri,omitempty"`
	Prefix string   `json:"prefix,omitempty"`
	Local  string   `json:"local"`
	Raw    string   `json:"raw"`
	Line   int      `json:"line"`

	// Declarations lists the namespace bindings introduced by an element.
	Declarations []NamespaceDeclaration `json:"declarations,omitempty"`
}

// NamespaceDeclaration is a prefix binding reported while resolving a document.
type NamespaceDeclaration struct {
	Prefix string `json:"prefix"`
	URI    string `json:"uri"`
}
