// Package scan provides the string-aware cursor shared by every repair
// stage. All rewrites walk text left to right with scan.String so that
// repairs never touch bytes inside an already-delimited string literal.
package scan

// Mode classifies a cursor position relative to string literals.
type Mode int

const (
	Normal Mode = iota
	InDouble
	InSingle
)

// IsQuote reports whether c opens a string literal.
func IsQuote(c byte) bool {
	return c == '"' || c == '\''
}

// String consumes the quoted string starting at i (s[i] must be '"' or
// '\'') and returns the raw span including delimiters plus the index
// immediately following the closing quote. Escape pairs are consumed
// atomically, so an escaped quote is never taken as a terminator. An
// unterminated string consumes to end-of-input; that is tolerated here
// and left for the final parse to reject.
func String(s string, i int) (string, int) {
	quote := s[i]
	j := i + 1
	for j < len(s) {
		c := s[j]
		if c == '\\' {
			j += 2
			continue
		}
		if c == quote {
			if quote == '\'' && !ClosesSingle(s, j) {
				j++
				continue
			}
			return s[i : j+1], j + 1
		}
		j++
	}
	// Truncated escape can step one past the end.
	if j > len(s) {
		j = len(s)
	}
	return s[i:j], j
}

// ClosesSingle reports whether the unescaped single quote at s[i]
// terminates the string. The quote closes when the next character is
// whitespace, a structural character, or end-of-input; otherwise it is
// read as a literal apostrophe ('O'Brien'). This is a heuristic, not a
// grammar: 'it's here' keeps its apostrophe only because the final quote
// is followed by something structural.
func ClosesSingle(s string, i int) bool {
	if i+1 >= len(s) {
		return true
	}
	switch s[i+1] {
	case ' ', '\t', '\n', '\r', ',', ']', '}', ':', '[':
		return true
	}
	return false
}

// IsSpace reports whether c is JSON whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// IsIdentStart reports whether c can begin a bare identifier.
func IsIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsIdent reports whether c can continue a bare identifier.
func IsIdent(c byte) bool {
	return IsIdentStart(c) || (c >= '0' && c <= '9')
}

// NextSignificant returns the index of the first non-whitespace byte at
// or after i, or len(s) if none remains.
func NextSignificant(s string, i int) int {
	for i < len(s) && IsSpace(s[i]) {
		i++
	}
	return i
}

// PrevSignificant returns the index of the last non-whitespace byte
// before i, or -1 if none exists.
func PrevSignificant(s string, i int) int {
	for i--; i >= 0; i-- {
		if !IsSpace(s[i]) {
			return i
		}
	}
	return -1
}
