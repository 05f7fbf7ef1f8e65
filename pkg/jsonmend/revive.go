package jsonmend

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// revive walks the parsed value depth-first and replaces string leaves
// that themselves encode JSON or Python-like structures with their
// parsed form. depth counts pipeline re-entries, not tree depth: the
// cap exists to terminate on strings that keep unwrapping into more
// strings.
func (c *config) revive(v any, depth int) (any, bool) {
	switch t := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		changed := false
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if nv, ch := c.revive(pair.Value, depth); ch {
				pair.Value = nv
				changed = true
			}
		}
		return t, changed
	case []any:
		changed := false
		for i, el := range t {
			if nv, ch := c.revive(el, depth); ch {
				t[i] = nv
				changed = true
			}
		}
		return t, changed
	case string:
		return c.reviveString(t, depth)
	default:
		return v, false
	}
}

func (c *config) reviveString(s string, depth int) (any, bool) {
	if depth >= c.maxDepth {
		return s, false
	}
	trimmed := strings.TrimSpace(s)

	if isStructural(trimmed) {
		if v, ok := c.parseEmbedded(trimmed, depth); ok {
			return v, true
		}
		return s, false
	}

	// "optional label: {...}" — a prefixed embedded value whose
	// brace/bracket span runs to the end of the string.
	prefix, span, ok := splitPrefixed(trimmed)
	if !ok {
		return s, false
	}
	v, ok := c.parseEmbedded(span, depth)
	if !ok {
		return s, false
	}
	if c.prefix == PrefixKeep {
		wrapped := orderedmap.New[string, any]()
		wrapped.Set("_prefix", prefix)
		wrapped.Set("_data", v)
		return wrapped, true
	}
	return v, true
}

// parseEmbedded parses an embedded span, first strictly, then through
// the full repair pipeline one level deeper.
func (c *config) parseEmbedded(span string, depth int) (any, bool) {
	res := c.repair(span, depth+1)
	if !res.Success {
		return nil, false
	}
	return res.Data, true
}

func isStructural(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (s[0] == '{' && s[len(s)-1] == '}') ||
		(s[0] == '[' && s[len(s)-1] == ']')
}

// splitPrefixed matches "label: {...}" / "label: [...]" where the label
// contains a colon separator and no braces, and the span closes the
// string.
func splitPrefixed(s string) (prefix, span string, ok bool) {
	open := strings.IndexAny(s, "{[")
	if open <= 0 {
		return "", "", false
	}
	colon := strings.LastIndexByte(s[:open], ':')
	if colon < 0 {
		return "", "", false
	}
	span = s[open:]
	if !isStructural(span) {
		return "", "", false
	}
	prefix = strings.TrimSpace(s[:colon])
	return prefix, span, true
}
