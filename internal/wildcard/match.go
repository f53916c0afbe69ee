package wildcard

import "slices"

// Match reports whether s matches the pattern. On success the captures hold
// s at index 0 followed by the text matched by each wildcard.
//
// Matching is a single greedy pass without backtracking: after "*" the next
// literal run is located at its first occurrence, after "**" at its last.
func (p *Pattern) Match(s string) (Captures, bool) {
	expr := p.tokens
	data := []rune(s)
	caps := Captures{s}

	exprPos, charPos := 0, 0
	anchored := false
	if expr[0] == matchBegin {
		anchored = true
		exprPos, charPos = 1, 1
	}
	for expr[charPos] >= 0 {
		charPos++
	}
	exprChr := expr[charPos]
	buffPos := 0

	for {
		lit := expr[exprPos:charPos]
		if anchored {
			if !matchAt(lit, data, buffPos) {
				return nil, false
			}
			anchored = false
			buffPos += len(lit)
		} else {
			off := indexOf(lit, data, buffPos)
			if off < 0 {
				return nil, false
			}
			buffPos = off + len(lit)
		}

		switch exprChr {
		case matchEnd:
			return caps, true
		case matchTheEnd:
			if buffPos != len(data) {
				return nil, false
			}
			return caps, true
		}

		wild := exprChr
		exprPos = charPos + 1
		charPos = exprPos
		for expr[charPos] >= 0 {
			charPos++
		}
		exprChr = expr[charPos]
		lit = expr[exprPos:charPos]

		var off int
		if wild == matchFile {
			off = indexOf(lit, data, buffPos)
		} else {
			off = lastIndexOf(lit, data, buffPos)
		}
		if off < 0 {
			return nil, false
		}

		span := data[buffPos:off]
		if wild == matchFile && slices.Contains(span, '/') {
			return nil, false
		}
		caps = append(caps, string(span))
		buffPos = off
	}
}

// matchAt reports whether lit occurs in data at position pos.
func matchAt(lit []int, data []rune, pos int) bool {
	if pos+len(lit) > len(data) {
		return false
	}
	for i, r := range lit {
		if int(data[pos+i]) != r {
			return false
		}
	}
	return true
}

// indexOf returns the first position at or after from where lit occurs.
// An empty literal stands for the end of the input.
func indexOf(lit []int, data []rune, from int) int {
	if len(lit) == 0 {
		return len(data)
	}
	for i := from; i+len(lit) <= len(data); i++ {
		if matchAt(lit, data, i) {
			return i
		}
	}
	return -1
}

// lastIndexOf returns the last position at or after from where lit occurs.
// An empty literal stands for the end of the input.
func lastIndexOf(lit []int, data []rune, from int) int {
	if len(lit) == 0 {
		return len(data)
	}
	for i := len(data) - len(lit); i >= from; i-- {
		if matchAt(lit, data, i) {
			return i
		}
	}
	return -1
}
