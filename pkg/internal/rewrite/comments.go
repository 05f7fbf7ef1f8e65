// Package rewrite implements the text-level repair stages: comment and
// fence stripping, Python literal substitution, quote unification, and
// structural repair. Every pass is a single left-to-right scan over the
// input and skips quoted regions via the scan package, so string bodies
// are never rewritten by a pass that isn't about strings.
package rewrite

import (
	"strings"

	"github.com/jsonmend/jsonmend/pkg/internal/scan"
)

// StripFences removes a surrounding markdown code fence (``` or
// ```json) if the trimmed input is wrapped in one.
func StripFences(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s, false
	}
	body := trimmed[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		// Drop the info string ("json", "python", ...) on the fence line.
		body = body[nl+1:]
	} else {
		body = strings.TrimLeft(body, "`")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body), true
}

// StripComments removes //-to-end-of-line and /* ... */ spans occurring
// outside string literals. An unterminated block comment consumes to
// end-of-input.
func StripComments(s string) (string, bool) {
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
		if c == '/' && i+1 < len(s) {
			switch s[i+1] {
			case '/':
				i += 2
				for i < len(s) && s[i] != '\n' {
					i++
				}
				changed = true
				continue
			case '*':
				i += 2
				for i < len(s) {
					if s[i] == '*' && i+1 < len(s) && s[i+1] == '/' {
						i += 2
						break
					}
					i++
				}
				changed = true
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
