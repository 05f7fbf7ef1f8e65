// Package jsonmend turns "almost JSON" into JSON. It tolerates the
// common ways hand-written or mis-serialized data drifts from the
// grammar: single quotes, Python literals, comments, unquoted keys and
// values, trailing or missing commas, and values that are themselves
// stringified JSON. The pipeline runs a fixed sequence of string-aware
// text rewrites, parses, then recursively revives embedded strings.
//
// Every repair that changed the text is reported in RepairResult.Fixes,
// in application order. The engine is pure: one call, one result, no
// shared state, safe for concurrent use.
package jsonmend

import (
	"strings"

	"github.com/jsonmend/jsonmend/pkg/internal/complete"
	"github.com/jsonmend/jsonmend/pkg/internal/rewrite"
)

// Fix labels, one per stage, in pipeline order.
const (
	FixRemovedFences   = "Removed code fences"
	FixRemovedComments = "Removed comments"
	FixPythonLiterals  = "Converted Python literals to JSON"
	FixSingleQuotes    = "Converted single quotes to double quotes"
	FixUnquotedKeys    = "Added quotes to unquoted keys"
	FixTrailingCommas  = "Removed trailing commas"
	FixBareValues      = "Added quotes to unquoted string values"
	FixMissingCommas   = "Inserted missing commas"
	FixTruncation      = "Closed truncated structures"
	FixEmbedded        = "Parsed embedded JSON strings"
)

// RepairResult is the outcome of one repair call. Success is true iff
// Data holds a valid JSON value and Formatted its pretty-printed
// serialization; Errors is non-empty iff Success is false.
type RepairResult struct {
	Success   bool     `json:"success"`
	Data      any      `json:"data"`
	Formatted string   `json:"formatted"`
	Errors    []string `json:"errors"`
	Fixes     []string `json:"fixes"`
}

// Repair parses input as JSON, applying the repair pipeline when a
// strict parse fails. Valid JSON passes through with no fixes recorded
// (revival of embedded strings excepted).
func Repair(input string, opts ...Option) *RepairResult {
	return newConfig(opts).repair(input, 0)
}

// Minify parses input through the repair pipeline and re-serializes it
// without whitespace. The input is returned unchanged if parsing fails.
func Minify(input string) string {
	res := Repair(input)
	if !res.Success {
		return input
	}
	out, err := encode(res.Data, 0)
	if err != nil {
		return input
	}
	return out
}

// Format parses input through the repair pipeline and re-serializes it
// indented by indentWidth spaces. The input is returned unchanged if
// parsing fails.
func Format(input string, indentWidth int) string {
	res := Repair(input)
	if !res.Success {
		return input
	}
	out, err := encode(res.Data, indentWidth)
	if err != nil {
		return input
	}
	return out
}

func (c *config) repair(input string, depth int) *RepairResult {
	res := &RepairResult{
		Errors: []string{},
		Fixes:  []string{},
	}
	text := strings.TrimSpace(input)

	value, err := parseStrict(text)
	if err != nil {
		var fixes []string
		text, fixes = c.rewriteAll(text)
		res.Fixes = append(res.Fixes, fixes...)
		value, err = parseStrict(text)
		if err != nil && c.truncation {
			if closed, changed := complete.Complete(text); changed {
				if v, cerr := parseStrict(closed); cerr == nil {
					value, err = v, nil
					res.Fixes = append(res.Fixes, FixTruncation)
				}
			}
		}
		if err != nil {
			res.Errors = []string{err.Error()}
			return res
		}
	}

	if c.stageOn(StageRevive) {
		if revived, changed := c.revive(value, depth); changed {
			value = revived
			res.Fixes = append(res.Fixes, FixEmbedded)
		}
	}

	formatted, err := encode(value, 2)
	if err != nil {
		res.Errors = []string{err.Error()}
		return res
	}
	res.Success = true
	res.Data = value
	res.Formatted = formatted
	return res
}

// rewriteAll runs the text stages in their fixed order, collecting a
// fix label for each stage that changed the text.
func (c *config) rewriteAll(text string) (string, []string) {
	passes := []struct {
		stage Stage
		label string
		fn    func(string) (string, bool)
	}{
		{StageFences, FixRemovedFences, rewrite.StripFences},
		{StageComments, FixRemovedComments, rewrite.StripComments},
		{StageLiterals, FixPythonLiterals, rewrite.PythonLiterals},
		{StageQuotes, FixSingleQuotes, rewrite.UnifyQuotes},
		{StageKeys, FixUnquotedKeys, rewrite.QuoteKeys},
		{StageTrailingCommas, FixTrailingCommas, rewrite.TrailingCommas},
		{StageBareValues, FixBareValues, rewrite.QuoteBareValues},
		{StageMissingCommas, FixMissingCommas, rewrite.MissingCommas},
	}

	var fixes []string
	for _, p := range passes {
		if !c.stageOn(p.stage) {
			continue
		}
		if out, changed := p.fn(text); changed {
			text = out
			fixes = append(fixes, p.label)
		}
	}
	return text, fixes
}
