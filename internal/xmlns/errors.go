package xmlns

import (
	"errors"
	"fmt"
)

// ErrResolve is wrapped by every name resolution failure.
var ErrResolve = errors.New("xmlns: cannot resolve name")

// Resolution failures. Each one also matches ErrResolve.
var (
	ErrRawPrefixMismatch = errors.New("raw name and prefix mismatch")
	ErrRawLocalMismatch  = errors.New("raw name and local name mismatch")
	ErrMissingLocalName  = errors.New("no raw or local name")
	ErrURIPrefixMismatch = errors.New("uri and prefix mismatch")
	ErrURINotDeclared    = errors.New("uri not declared")
	ErrPrefixNotDeclared = errors.New("prefix not declared")
)

// ErrNoScope is returned when leaving a scope that was never entered.
var ErrNoScope = errors.New("xmlns: no open scope")

// ResolveError describes a failed Resolve call and the inputs it was given.
type ResolveError struct {
	URI    string
	Raw    string
	Prefix string
	Local  string
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%v: %v (uri=%q raw=%q prefix=%q local=%q)",
		ErrResolve, e.Err, e.URI, e.Raw, e.Prefix, e.Local)
}

// Unwrap returns both the specific cause and ErrResolve.
func (e *ResolveError) Unwrap() []error {
	return []error{e.Err, ErrResolve}
}
