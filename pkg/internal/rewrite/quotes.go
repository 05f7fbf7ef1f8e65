package rewrite

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/jsonmend/jsonmend/pkg/internal/scan"
)

// UnifyQuotes rewrites every single-quoted string as a JSON-safe
// double-quoted string. Double-quoted strings pass through unchanged
// apart from having their escape pairs consumed atomically. Content is
// unescaped per source rules (\', \xNN, \uNNNN, named controls) and
// re-escaped for JSON.
func UnifyQuotes(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	changed := false

	i := 0
	for i < len(s) {
		c := s[i]
		if c == '"' {
			raw, next := scan.String(s, i)
			b.WriteString(raw)
			i = next
			continue
		}
		if c == '\'' {
			raw, next := scan.String(s, i)
			body := strings.TrimPrefix(raw, "'")
			body = strings.TrimSuffix(body, "'")
			b.WriteString(EncodeString(unescapeSingle(body)))
			i = next
			changed = true
			continue
		}
		b.WriteByte(c)
		i++
	}

	if !changed {
		return s, false
	}
	return b.String(), true
}

// unescapeSingle decodes the body of a single-quoted string into its
// literal character sequence. Unknown escapes drop the backslash, the
// JavaScript reading rather than the Python one. Surrogate pairs in
// \uNNNN escapes are combined.
func unescapeSingle(body string) string {
	var b strings.Builder
	b.Grow(len(body))

	i := 0
	for i < len(body) {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(body) {
			b.WriteByte('\\')
			break
		}
		esc := body[i+1]
		i += 2
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'x':
			if code, ok := hexValue(body, i, 2); ok {
				b.WriteRune(rune(code))
				i += 2
			} else {
				b.WriteByte('x')
			}
		case 'u':
			code, ok := hexValue(body, i, 4)
			if !ok {
				b.WriteByte('u')
				break
			}
			i += 4
			r := rune(code)
			if utf16.IsSurrogate(r) && i+6 <= len(body) && body[i] == '\\' && body[i+1] == 'u' {
				if low, ok := hexValue(body, i+2, 4); ok {
					if paired := utf16.DecodeRune(r, rune(low)); paired != 0xFFFD {
						r = paired
						i += 6
					}
				}
			}
			b.WriteRune(r)
		default:
			// \' and \" land here too: keep the character, drop the slash.
			b.WriteByte(esc)
		}
	}
	return b.String()
}

// hexValue reads n hex digits of body starting at i.
func hexValue(body string, i, n int) (int, bool) {
	if i+n > len(body) {
		return 0, false
	}
	v := 0
	for _, c := range []byte(body[i : i+n]) {
		v <<= 4
		switch {
		case c >= '0' && c <= '9':
			v |= int(c - '0')
		case c >= 'a' && c <= 'f':
			v |= int(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v |= int(c-'A') + 10
		default:
			return 0, false
		}
	}
	return v, true
}

// EncodeString renders content as a JSON string literal: backslash,
// double quote and control characters below 0x20 are escaped, the rest
// is emitted verbatim.
func EncodeString(content string) string {
	var b strings.Builder
	b.Grow(len(content) + 2)
	b.WriteByte('"')
	for _, r := range content {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
