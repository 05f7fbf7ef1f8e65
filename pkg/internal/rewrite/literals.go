package rewrite

import (
	"strings"

	"github.com/jsonmend/jsonmend/pkg/internal/scan"
)

var pythonLiterals = map[string]string{
	"None":  "null",
	"True":  "true",
	"False": "false",
}

// PythonLiterals replaces the standalone tokens None, True and False
// with their JSON spellings. Tokens are word-boundary matched so that
// identifiers like NoneType pass through, and quoted regions are
// skipped entirely.
func PythonLiterals(s string) (string, bool) {
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
		if scan.IsIdentStart(c) {
			j := i + 1
			for j < len(s) && scan.IsIdent(s[j]) {
				j++
			}
			word := s[i:j]
			boundary := i == 0 || !scan.IsIdent(s[i-1])
			if repl, ok := pythonLiterals[word]; ok && boundary {
				b.WriteString(repl)
				changed = true
			} else {
				b.WriteString(word)
			}
			i = j
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
