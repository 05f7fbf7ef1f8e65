// Package complete closes truncated JSON so that input cut off
// mid-stream (a dropped connection, a capped log line) can still be
// parsed. It rebuilds the value left to right and drops whatever was
// interrupted too early to keep: a dangling key with no value, a lone
// minus sign, a half-written keyword.
package complete

import "strings"

// Complete returns input rebuilt as structurally closed JSON and
// whether anything had to be repaired. It assumes the text is already
// double-quoted and comma-separated; its only concern is truncation.
func Complete(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return input, false
	}
	c := &completer{src: trimmed}
	out, clean := c.value()
	if clean && c.pos >= len(c.src) {
		return input, false
	}
	return out, true
}

type completer struct {
	src string
	pos int
}

// value parses one JSON value and returns its closed form plus whether
// it was already complete.
func (c *completer) value() (string, bool) {
	c.skipSpace()
	if c.pos >= len(c.src) {
		return "null", false
	}
	switch c.src[c.pos] {
	case '{':
		return c.object()
	case '[':
		return c.array()
	case '"':
		return c.str()
	case 't', 'f', 'n':
		return c.keyword()
	default:
		if c.src[c.pos] == '-' || isDigit(c.src[c.pos]) {
			return c.number()
		}
		c.pos++
		return "null", false
	}
}

func (c *completer) object() (string, bool) {
	var b strings.Builder
	b.WriteByte('{')
	c.pos++
	wrote := false

	for {
		c.skipSpace()
		if c.pos >= len(c.src) {
			b.WriteByte('}')
			return b.String(), false
		}
		if c.src[c.pos] == '}' {
			c.pos++
			b.WriteByte('}')
			return b.String(), true
		}
		if wrote {
			if c.src[c.pos] != ',' {
				b.WriteByte('}')
				return b.String(), false
			}
			c.pos++
			c.skipSpace()
			if c.pos < len(c.src) && c.src[c.pos] == '}' {
				c.pos++
				b.WriteByte('}')
				return b.String(), true
			}
		}

		if c.pos >= len(c.src) || c.src[c.pos] != '"' {
			b.WriteByte('}')
			return b.String(), false
		}
		key, keyClean := c.str()
		if !keyClean {
			// A cut-off key carries no value; drop it.
			b.WriteByte('}')
			return b.String(), false
		}

		c.skipSpace()
		if c.pos >= len(c.src) || c.src[c.pos] != ':' {
			b.WriteByte('}')
			return b.String(), false
		}
		c.pos++

		c.skipSpace()
		if c.pos >= len(c.src) {
			// Key with no value at all; drop the pair.
			b.WriteByte('}')
			return b.String(), false
		}

		val, valClean := c.value()
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(val)
		wrote = true
		if !valClean {
			b.WriteByte('}')
			return b.String(), false
		}
	}
}

func (c *completer) array() (string, bool) {
	var b strings.Builder
	b.WriteByte('[')
	c.pos++
	wrote := false

	for {
		c.skipSpace()
		if c.pos >= len(c.src) {
			b.WriteByte(']')
			return b.String(), false
		}
		if c.src[c.pos] == ']' {
			c.pos++
			b.WriteByte(']')
			return b.String(), true
		}
		if wrote {
			if c.src[c.pos] != ',' {
				b.WriteByte(']')
				return b.String(), false
			}
			c.pos++
			c.skipSpace()
			if c.pos < len(c.src) && c.src[c.pos] == ']' {
				c.pos++
				b.WriteByte(']')
				return b.String(), true
			}
			if c.pos >= len(c.src) {
				b.WriteByte(']')
				return b.String(), false
			}
		}

		val, valClean := c.value()
		if wrote {
			b.WriteByte(',')
		}
		b.WriteString(val)
		wrote = true
		if !valClean {
			b.WriteByte(']')
			return b.String(), false
		}
	}
}

func (c *completer) str() (string, bool) {
	start := c.pos
	c.pos++

	for c.pos < len(c.src) {
		ch := c.src[c.pos]
		if ch == '\\' {
			if c.pos+1 >= len(c.src) {
				// Truncated escape: drop the dangling backslash.
				return c.src[start:c.pos] + `"`, false
			}
			if c.src[c.pos+1] == 'u' {
				hex := 0
				for hex < 4 && c.pos+2+hex < len(c.src) && isHex(c.src[c.pos+2+hex]) {
					hex++
				}
				if hex < 4 {
					// Truncated unicode escape: cut before the backslash.
					return c.src[start:c.pos] + `"`, false
				}
				c.pos += 6
				continue
			}
			c.pos += 2
			continue
		}
		if ch == '"' {
			c.pos++
			return c.src[start:c.pos], true
		}
		c.pos++
	}
	return c.src[start:c.pos] + `"`, false
}

func (c *completer) number() (string, bool) {
	start := c.pos
	if c.src[c.pos] == '-' {
		c.pos++
	}
	for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
		c.pos++
	}
	if c.pos == start || (c.pos == start+1 && c.src[start] == '-') {
		return "0", false
	}

	if c.pos < len(c.src) && c.src[c.pos] == '.' {
		mark := c.pos
		c.pos++
		digits := false
		for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
			c.pos++
			digits = true
		}
		if !digits {
			return c.src[start:mark], false
		}
	}

	if c.pos < len(c.src) && (c.src[c.pos] == 'e' || c.src[c.pos] == 'E') {
		mark := c.pos
		c.pos++
		if c.pos < len(c.src) && (c.src[c.pos] == '+' || c.src[c.pos] == '-') {
			c.pos++
		}
		digits := false
		for c.pos < len(c.src) && isDigit(c.src[c.pos]) {
			c.pos++
			digits = true
		}
		if !digits {
			return c.src[start:mark], false
		}
	}

	return c.src[start:c.pos], true
}

func (c *completer) keyword() (string, bool) {
	var want string
	switch c.src[c.pos] {
	case 't':
		want = "true"
	case 'f':
		want = "false"
	default:
		want = "null"
	}
	for i := 0; i < len(want); i++ {
		if c.pos >= len(c.src) || c.src[c.pos] != want[i] {
			return want, false
		}
		c.pos++
	}
	return want, true
}

func (c *completer) skipSpace() {
	for c.pos < len(c.src) {
		switch c.src[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isHex(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
