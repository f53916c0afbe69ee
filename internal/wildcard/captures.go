package wildcard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCapture is returned when a template refers to a capture that does not exist.
var ErrUnknownCapture = errors.New("wildcard: unknown capture")

// ErrUnterminatedPlaceholder is returned for a "{" without a closing "}".
var ErrUnterminatedPlaceholder = errors.New("wildcard: unterminated placeholder")

// Captures holds the result of a successful match. Index 0 is the whole
// input, 1..n are the wildcard captures in pattern order.
type Captures []string

// Map returns the captures keyed by their decimal index ("0", "1", ...).
func (c Captures) Map() map[string]string {
	m := make(map[string]string, len(c))
	for i, v := range c {
		m[strconv.Itoa(i)] = v
	}
	return m
}

// Get returns capture i and whether it exists.
func (c Captures) Get(i int) (string, bool) {
	if i < 0 || i >= len(c) {
		return "", false
	}
	return c[i], true
}

// Substitute replaces {n} placeholders in template with capture n.
// A backslash escapes the next character, so "\{" yields a literal brace.
func Substitute(template string, c Captures) (string, error) {
	if !strings.ContainsAny(template, "{\\") {
		return template, nil
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch ch {
		case '\\':
			if i+1 < len(template) {
				i++
				b.WriteByte(template[i])
			}
		case '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return "", fmt.Errorf("%w at offset %d", ErrUnterminatedPlaceholder, i)
			}
			key := template[i+1 : i+end]
			n, err := strconv.Atoi(key)
			if err != nil {
				return "", fmt.Errorf("%w: {%s}", ErrUnknownCapture, key)
			}
			v, ok := c.Get(n)
			if !ok {
				return "", fmt.Errorf("%w: {%s}", ErrUnknownCapture, key)
			}
			b.WriteString(v)
			i += end
		default:
			b.WriteByte(ch)
		}
	}
	return b.String(), nil
}

// MaxPlaceholder returns the highest capture index referenced by template,
// or -1 when it has none. Malformed placeholders are reported with the same
// errors as Substitute.
func MaxPlaceholder(template string) (int, error) {
	highest := -1
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '\\':
			i++
		case '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				return -1, fmt.Errorf("%w at offset %d", ErrUnterminatedPlaceholder, i)
			}
			key := template[i+1 : i+end]
			n, err := strconv.Atoi(key)
			if err != nil || n < 0 {
				return -1, fmt.Errorf("%w: {%s}", ErrUnknownCapture, key)
			}
			highest = max(highest, n)
			i += end
		}
	}
	return highest, nil
}
