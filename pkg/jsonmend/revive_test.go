package jsonmend_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/jsonmend/jsonmend/pkg/jsonmend"
)

func TestReviveEmbeddedObject(t *testing.T) {
	res := jsonmend.Repair(`{"extractor_request": "{'key': 'value'}"}`)
	if !res.Success {
		t.Fatalf("Repair failed: %v", res.Errors)
	}
	if got, want := minified(t, res), `{"extractor_request":{"key":"value"}}`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
	if !hasFix(res, jsonmend.FixEmbedded) {
		t.Errorf("fixes = %v, want %q present", res.Fixes, jsonmend.FixEmbedded)
	}
}

func TestReviveEmbeddedArray(t *testing.T) {
	res := jsonmend.Repair(`{"items": "[1, 2, 3]"}`)
	if !res.Success {
		t.Fatalf("Repair failed: %v", res.Errors)
	}
	if got, want := minified(t, res), `{"items":[1,2,3]}`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
}

func TestReviveInsideArrays(t *testing.T) {
	res := jsonmend.Repair(`["{'a': 1}", "plain text"]`)
	if !res.Success {
		t.Fatalf("Repair failed: %v", res.Errors)
	}
	if got, want := minified(t, res), `[{"a":1},"plain text"]`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
}

func TestRevivePrefixPolicies(t *testing.T) {
	input := `{"log": "request_body: {'a': 1}"}`

	t.Run("discard", func(t *testing.T) {
		res := jsonmend.Repair(input)
		if !res.Success {
			t.Fatalf("Repair failed: %v", res.Errors)
		}
		if got, want := minified(t, res), `{"log":{"a":1}}`; got != want {
			t.Errorf("data = %s, want %s", got, want)
		}
	})

	t.Run("keep", func(t *testing.T) {
		res := jsonmend.Repair(input, jsonmend.WithPrefixPolicy(jsonmend.PrefixKeep))
		if !res.Success {
			t.Fatalf("Repair failed: %v", res.Errors)
		}
		want := `{"log":{"_prefix":"request_body","_data":{"a":1}}}`
		if got := minified(t, res); got != want {
			t.Errorf("data = %s, want %s", got, want)
		}
	})
}

func TestReviveLeavesPlainStringsAlone(t *testing.T) {
	inputs := []string{
		`{"a": "hello world"}`,
		`{"a": "not: closed {"}`,
		`{"a": "3:45pm"}`,
		`{"a": "{broken"}`,
	}
	for _, input := range inputs {
		res := jsonmend.Repair(input)
		if !res.Success {
			t.Fatalf("Repair(%q) failed: %v", input, res.Errors)
		}
		if hasFix(res, jsonmend.FixEmbedded) {
			t.Errorf("Repair(%q) revived a plain string: %s", input, res.Formatted)
		}
	}
}

func TestReviveDepthCap(t *testing.T) {
	// Build a string that unwraps into another stringified object at
	// every level, deeper than the cap.
	nested := `{"leaf": 1}`
	for i := 0; i < 15; i++ {
		quoted, err := json.Marshal(nested)
		if err != nil {
			t.Fatal(err)
		}
		nested = fmt.Sprintf(`{"level": %s}`, quoted)
	}

	res := jsonmend.Repair(nested)
	if !res.Success {
		t.Fatalf("Repair failed: %v", res.Errors)
	}
	// Termination plus a partially revived tree: some depth got
	// unwrapped, and at the cap a stringified object remains.
	if !strings.Contains(minified(t, res), `"{\"`) {
		t.Errorf("expected an unrevived string leaf past the depth cap:\n%s", res.Formatted)
	}
}

func TestReviveCustomDepth(t *testing.T) {
	input := `{"a": "{'b': \"{'c': 1}\"}"}`

	deep := jsonmend.Repair(input)
	if !deep.Success {
		t.Fatalf("Repair failed: %v", deep.Errors)
	}
	if got, want := minified(t, deep), `{"a":{"b":{"c":1}}}`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}

	shallow := jsonmend.Repair(input, jsonmend.WithMaxDepth(1))
	if !shallow.Success {
		t.Fatalf("Repair failed: %v", shallow.Errors)
	}
	if got := minified(t, shallow); got == `{"a":{"b":{"c":1}}}` {
		t.Errorf("depth 1 should not fully revive, got %s", got)
	}
}

func TestReviveDisabled(t *testing.T) {
	res := jsonmend.Repair(`{"a": "{\"b\": 1}"}`, jsonmend.WithoutStage(jsonmend.StageRevive))
	if !res.Success {
		t.Fatalf("Repair failed: %v", res.Errors)
	}
	if got, want := minified(t, res), `{"a":"{\"b\": 1}"}`; got != want {
		t.Errorf("data = %s, want %s", got, want)
	}
}

