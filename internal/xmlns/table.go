package xmlns

import (
	"cmp"
	"slices"
	"strings"
)

// Reserved prefixes and namespaces.
const (
	// XMLPrefix is the reserved prefix for the XML namespace.
	XMLPrefix = "xml"
	// XMLNSPrefix is the reserved prefix for namespace declarations.
	XMLNSPrefix = "xmlns"
	// XMLNamespace is the XML namespace URI.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the XMLNS namespace URI.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// Declaration is a single prefix to namespace URI binding.
type Declaration struct {
	Prefix string
	URI    string
}

// Name is a fully disambiguated qualified name.
// URI is empty for names in no namespace.
type Name struct {
	URI    string
	Prefix string
	Local  string
	Raw    string
}

// String returns the name in {uri}local notation, or the raw name when it
// has no namespace.
func (n Name) String() string {
	if n.URI == "" {
		return n.Raw
	}
	return "{" + n.URI + "}" + n.Local
}

// PrefixHandler receives prefix mapping events as scopes open and close.
type PrefixHandler interface {
	StartPrefixMapping(prefix, uri string) error
	EndPrefixMapping(prefix string) error
}

type binding struct {
	uri string
	seq uint64
}

type scopeEntry struct {
	Declaration
	seq uint64
}

// Table holds the namespace bindings visible at the current point of a traversal.
type Table struct {
	// bindings holds, per prefix, the shadow stack; the last entry is current.
	bindings map[string][]binding
	seq      uint64
	pending  []scopeEntry
	scopes   [][]scopeEntry
}

// New returns a table with only the implicit bindings: the empty prefix
// bound to no namespace and the xml prefix bound to XMLNamespace.
func New() *Table {
	t := &Table{}
	t.Clear()
	return t
}

// Clear drops every declaration and open scope.
func (t *Table) Clear() {
	t.bindings = make(map[string][]binding)
	t.seq = 0
	t.pending = nil
	t.scopes = nil
	t.push("", "")
	t.push(XMLPrefix, XMLNamespace)
}

func (t *Table) push(prefix, uri string) uint64 {
	t.seq++
	t.bindings[prefix] = append(t.bindings[prefix], binding{uri: uri, seq: t.seq})
	return t.seq
}

// Declare binds prefix to uri, shadowing any current binding for prefix.
// The declaration joins the scope opened by the next EnterScope.
func (t *Table) Declare(prefix, uri string) Declaration {
	seq := t.push(prefix, uri)
	d := Declaration{Prefix: prefix, URI: uri}
	t.pending = append(t.pending, scopeEntry{Declaration: d, seq: seq})
	return d
}

// Undeclare removes the current binding for prefix and restores the one it
// shadowed, if any. It reports false when prefix was not bound.
func (t *Table) Undeclare(prefix string) (Declaration, bool) {
	stack := t.bindings[prefix]
	if len(stack) == 0 {
		return Declaration{}, false
	}
	top := stack[len(stack)-1]
	t.drop(prefix, len(stack)-1)
	if i := slices.IndexFunc(t.pending, func(e scopeEntry) bool { return e.seq == top.seq }); i >= 0 {
		t.pending = slices.Delete(t.pending, i, i+1)
	}
	return Declaration{Prefix: prefix, URI: top.uri}, true
}

func (t *Table) drop(prefix string, i int) {
	stack := slices.Delete(t.bindings[prefix], i, i+1)
	if len(stack) == 0 {
		delete(t.bindings, prefix)
		return
	}
	t.bindings[prefix] = stack
}

// URI returns the namespace currently bound to prefix.
func (t *Table) URI(prefix string) (string, bool) {
	stack := t.bindings[prefix]
	if len(stack) == 0 {
		return "", false
	}
	return stack[len(stack)-1].uri, true
}

// Prefix returns the most recently declared prefix currently bound to uri.
func (t *Table) Prefix(uri string) (string, bool) {
	prefixes := t.Prefixes(uri)
	if len(prefixes) == 0 {
		return "", false
	}
	return prefixes[0], true
}

// Prefixes returns every prefix currently bound to uri, most recent first.
func (t *Table) Prefixes(uri string) []string {
	type hit struct {
		prefix string
		seq    uint64
	}
	var hits []hit
	for prefix, stack := range t.bindings {
		top := stack[len(stack)-1]
		if top.uri == uri {
			hits = append(hits, hit{prefix: prefix, seq: top.seq})
		}
	}
	slices.SortFunc(hits, func(a, b hit) int { return cmp.Compare(b.seq, a.seq) })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.prefix
	}
	return out
}

// Declarations returns every visible binding in declaration order.
func (t *Table) Declarations() []Declaration {
	type entry struct {
		d   Declaration
		seq uint64
	}
	entries := make([]entry, 0, len(t.bindings))
	for prefix, stack := range t.bindings {
		top := stack[len(stack)-1]
		entries = append(entries, entry{d: Declaration{Prefix: prefix, URI: top.uri}, seq: top.seq})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.seq, b.seq) })
	out := make([]Declaration, len(entries))
	for i, e := range entries {
		out[i] = e.d
	}
	return out
}

// PendingDeclarations returns the declarations made since the last EnterScope.
func (t *Table) PendingDeclarations() []Declaration {
	out := make([]Declaration, len(t.pending))
	for i, e := range t.pending {
		out[i] = e.Declaration
	}
	return out
}

// Depth returns the number of open scopes.
func (t *Table) Depth() int {
	return len(t.scopes)
}

// EnterScope opens a scope owning every pending declaration and reports
// each of them to h, when h is not nil.
func (t *Table) EnterScope(h PrefixHandler) error {
	frame := t.pending
	t.pending = nil
	t.scopes = append(t.scopes, frame)
	if h == nil {
		return nil
	}
	for _, e := range frame {
		if err := h.StartPrefixMapping(e.Prefix, e.URI); err != nil {
			return err
		}
	}
	return nil
}

// LeaveScope closes the innermost scope, undeclaring its bindings in reverse
// order and reporting each to h, when h is not nil. Bindings that were
// already undeclared explicitly are skipped.
func (t *Table) LeaveScope(h PrefixHandler) ([]Declaration, error) {
	if len(t.scopes) == 0 {
		return nil, ErrNoScope
	}
	frame := t.scopes[len(t.scopes)-1]
	t.scopes = t.scopes[:len(t.scopes)-1]

	var removed []Declaration
	for i := len(frame) - 1; i >= 0; i-- {
		e := frame[i]
		stack := t.bindings[e.Prefix]
		j := slices.IndexFunc(stack, func(b binding) bool { return b.seq == e.seq })
		if j < 0 {
			continue
		}
		t.drop(e.Prefix, j)
		removed = append(removed, e.Declaration)
		if h != nil {
			if err := h.EndPrefixMapping(e.Prefix); err != nil {
				return removed, err
			}
		}
	}
	return removed, nil
}

// Resolve cross-checks a namespace URI, raw qualified name, prefix and local
// name, any of which may be empty, against the current bindings and returns
// the completed name. Inconsistent or unresolvable input yields a
// *ResolveError.
func (t *Table) Resolve(uri, raw, prefix, local string) (Name, error) {
	fail := func(err error) (Name, error) {
		return Name{}, &ResolveError{URI: uri, Raw: raw, Prefix: prefix, Local: local, Err: err}
	}

	p, l := prefix, local
	r := raw
	if r != "" {
		rp, rl := SplitQName(r)
		if rp != "" {
			if p == "" {
				p = rp
			} else if p != rp {
				return fail(ErrRawPrefixMismatch)
			}
		} else if p != "" {
			return fail(ErrRawPrefixMismatch)
		}
		if l == "" {
			l = rl
		} else if l != rl {
			return fail(ErrRawLocalMismatch)
		}
	} else {
		if l == "" {
			return fail(ErrMissingLocalName)
		}
		r = joinQName(p, l)
	}

	u := uri
	if u != "" {
		if p != "" {
			bound, ok := t.URI(p)
			if !ok || bound != u {
				return fail(ErrURIPrefixMismatch)
			}
		} else {
			found, ok := t.Prefix(u)
			if !ok {
				return fail(ErrURINotDeclared)
			}
			if found != "" {
				p = found
				r = joinQName(p, l)
			}
		}
	} else {
		bound, ok := t.URI(p)
		if !ok {
			return fail(ErrPrefixNotDeclared)
		}
		u = bound
	}

	return Name{URI: u, Prefix: p, Local: l, Raw: r}, nil
}

// SplitQName splits a raw qualified name at its first colon.
// A name without a colon, or starting with one, has no prefix.
func SplitQName(raw string) (prefix, local string) {
	if i := strings.IndexByte(raw, ':'); i > 0 {
		return raw[:i], raw[i+1:]
	}
	return "", raw
}

func joinQName(prefix, local string) string {
	if prefix == "" {
		return local
	}
	return prefix + ":" + local
}
