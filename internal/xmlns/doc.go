// Package xmlns tracks XML namespace bindings during a streaming traversal.
//
// A Table maps prefixes to namespace URIs. Redeclaring a prefix shadows the
// previous binding, and undeclaring it restores whatever it shadowed, so a
// traversal can declare bindings as start tags arrive and drop them again as
// the matching end tags close:
//
//	t := xmlns.New()
//	t.Declare("d", "urn:doc")
//	if err := t.EnterScope(nil); err != nil { ... }
//	name, err := t.Resolve("", "d:para", "", "")
//	// name.URI == "urn:doc", name.Local == "para"
//	t.LeaveScope(nil)
//
// Bindings are kept as a stack per prefix rather than a chain of nodes, and
// every binding carries a sequence number so lookups by URI return the most
// recent declaration.
//
// A Table is not safe for concurrent use.
package xmlns
