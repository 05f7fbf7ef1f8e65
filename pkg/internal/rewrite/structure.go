package rewrite

import (
	"strings"

	"github.com/jsonmend/jsonmend/pkg/internal/scan"
)

// QuoteKeys wraps bare identifier keys in double quotes. A key is an
// identifier preceded (modulo whitespace) by '{' or ',' and followed
// (modulo whitespace) by ':'.
func QuoteKeys(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	prev := byte(0)

	i := 0
	for i < len(s) {
		c := s[i]
		if scan.IsQuote(c) {
			raw, next := scan.String(s, i)
			b.WriteString(raw)
			i = next
			prev = '"'
			continue
		}
		if scan.IsIdentStart(c) && (prev == '{' || prev == ',') {
			j := i + 1
			for j < len(s) && scan.IsIdent(s[j]) {
				j++
			}
			if k := scan.NextSignificant(s, j); k < len(s) && s[k] == ':' {
				b.WriteByte('"')
				b.WriteString(s[i:j])
				b.WriteByte('"')
				changed = true
				prev = '"'
				i = j
				continue
			}
			b.WriteString(s[i:j])
			prev = s[j-1]
			i = j
			continue
		}
		b.WriteByte(c)
		if !scan.IsSpace(c) {
			prev = c
		}
		i++
	}

	if !changed {
		return s, false
	}
	return b.String(), true
}

// TrailingCommas deletes a comma followed (modulo whitespace) by '}'
// or ']'.
func TrailingCommas(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false

	i := 0
	for i < len(s) {
		c := s[i]
		if scan.IsQuote(c) {
			raw, next := scan.String(s, i)
			b.WriteString(raw)
			i = next
			continue
		}
		if c == ',' {
			if k := scan.NextSignificant(s, i+1); k < len(s) && (s[k] == '}' || s[k] == ']') {
				changed = true
				i++
				continue
			}
		}
		b.WriteByte(c)
		i++
	}

	if !changed {
		return s, false
	}
	return b.String(), true
}

// QuoteBareValues wraps a bare identifier value in double quotes. The
// identifier must follow ':' and precede ',', '}', ']' or end-of-input
// (modulo whitespace), and must not be a JSON keyword.
func QuoteBareValues(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false
	prev := byte(0)

	i := 0
	for i < len(s) {
		c := s[i]
		if scan.IsQuote(c) {
			raw, next := scan.String(s, i)
			b.WriteString(raw)
			i = next
			prev = '"'
			continue
		}
		if scan.IsIdentStart(c) && prev == ':' {
			j := i + 1
			for j < len(s) && scan.IsIdent(s[j]) {
				j++
			}
			word := s[i:j]
			k := scan.NextSignificant(s, j)
			terminated := k >= len(s) || s[k] == ',' || s[k] == '}' || s[k] == ']'
			if terminated && word != "true" && word != "false" && word != "null" {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
				changed = true
				prev = '"'
				i = j
				continue
			}
			b.WriteString(word)
			prev = word[len(word)-1]
			i = j
			continue
		}
		b.WriteByte(c)
		if !scan.IsSpace(c) {
			prev = c
		}
		i++
	}

	if !changed {
		return s, false
	}
	return b.String(), true
}

// missingCommaPairs lists the (first token end, next token start)
// adjacencies the comma-insertion heuristic repairs.
var missingCommaPairs = map[[2]byte]bool{
	{'"', '"'}: true,
	{'}', '{'}: true,
	{']', '['}: true,
	{'}', '"'}: true,
	{'"', '{'}: true,
}

// MissingCommas inserts a comma between two adjacent value tokens that
// are separated by whitespace containing a newline. The heuristic is
// deliberately limited to newline-delimited input; same-line adjacency
// is left alone.
func MissingCommas(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false

	prevEnd := byte(0)
	newline := false

	i := 0
	for i < len(s) {
		c := s[i]
		if scan.IsSpace(c) {
			if c == '\n' {
				newline = true
			}
			b.WriteByte(c)
			i++
			continue
		}
		if scan.IsQuote(c) {
			if newline && missingCommaPairs[[2]byte{prevEnd, '"'}] {
				b.WriteByte(',')
				changed = true
			}
			raw, next := scan.String(s, i)
			b.WriteString(raw)
			i = next
			prevEnd = '"'
			newline = false
			continue
		}
		if (c == '{' || c == '[') && newline && missingCommaPairs[[2]byte{prevEnd, c}] {
			b.WriteByte(',')
			changed = true
		}
		b.WriteByte(c)
		if c == '}' || c == ']' {
			prevEnd = c
		} else {
			prevEnd = 0
		}
		newline = false
		i++
	}

	if !changed {
		return s, false
	}
	return b.String(), true
}
