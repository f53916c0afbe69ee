// Package wildcard compiles and matches sitemap wildcard patterns.
//
// Pattern syntax:
//
//   - "*" matches any run of characters within one path segment (no "/")
//   - "**" matches any run of characters, "/" included
//   - "\" escapes the following character
//
// Every other character matches itself. Patterns are anchored at both ends,
// and each wildcard's matched text is captured in pattern order:
//
//	p := wildcard.Compile("docs/**/*.xml")
//	c, ok := p.Match("docs/a/b/index.xml")
//	// ok == true, c == Captures{"docs/a/b/index.xml", "a/b", "index"}
package wildcard

import (
	"strings"
)

// Token values below zero are control tokens; everything else is a literal rune.
const (
	matchFile   = -1 // "*": within a single segment
	matchPath   = -2 // "**": across segments
	matchEnd    = -3 // open end: the rest of the input is ignored
	matchBegin  = -4 // start anchor
	matchTheEnd = -5 // end anchor: the whole input must be consumed
)

// Pattern is a compiled wildcard pattern.
type Pattern struct {
	source string
	tokens []int
}

// Compile turns a wildcard pattern into its integer-encoded token form.
// Compilation never fails: a trailing lone backslash is dropped and runs
// of three or more asterisks behave like "**".
func Compile(pattern string) *Pattern {
	return compile(pattern, matchTheEnd)
}

// CompilePrefix is like Compile but leaves the pattern open at the end, so
// input following the last literal run is accepted and not captured.
func CompilePrefix(pattern string) *Pattern {
	return compile(pattern, matchEnd)
}

func compile(pattern string, end int) *Pattern {
	runes := []rune(pattern)
	tokens := make([]int, 0, len(runes)+2)
	tokens = append(tokens, matchBegin)

	escaped := false
	for _, r := range runes {
		switch {
		case escaped:
			tokens = append(tokens, int(r))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*':
			last := tokens[len(tokens)-1]
			if last == matchFile || last == matchPath {
				tokens[len(tokens)-1] = matchPath
			} else {
				tokens = append(tokens, matchFile)
			}
		default:
			tokens = append(tokens, int(r))
		}
	}

	tokens = append(tokens, end)
	return &Pattern{source: pattern, tokens: tokens}
}

// String returns the source pattern.
func (p *Pattern) String() string {
	return p.source
}

// Wildcards returns the number of wildcards, and so of captures after index 0.
func (p *Pattern) Wildcards() int {
	n := 0
	for _, t := range p.tokens {
		if t == matchFile || t == matchPath {
			n++
		}
	}
	return n
}

// IsLiteral reports whether the pattern contains no wildcards.
func (p *Pattern) IsLiteral() bool {
	return p.Wildcards() == 0
}

// Match is a convenience wrapper that compiles pattern and matches s.
func Match(pattern, s string) (Captures, bool) {
	return Compile(pattern).Match(s)
}

// HasWildcards reports whether pattern contains an unescaped "*".
func HasWildcards(pattern string) bool {
	if !strings.ContainsRune(pattern, '*') {
		return false
	}
	return !Compile(pattern).IsLiteral()
}
