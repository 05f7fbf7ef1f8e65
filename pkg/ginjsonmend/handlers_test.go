package ginjsonmend_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jsonmend/jsonmend/pkg/ginjsonmend"
	"github.com/jsonmend/jsonmend/pkg/jsonmend"
)

func newTestRouter(opts ...ginjsonmend.ServerOption) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	srv := ginjsonmend.New(opts...)
	srv.Register(router.Group("/api"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRepairEndpoint(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/repair", gin.H{"input": `{'a': True}`})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var res jsonmend.RepairResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !res.Success {
		t.Errorf("success = false, errors = %v", res.Errors)
	}
	if len(res.Fixes) == 0 {
		t.Error("expected fixes for repaired input")
	}
	if !strings.Contains(res.Formatted, `"a": true`) {
		t.Errorf("formatted = %q", res.Formatted)
	}
}

func TestRepairEndpointMissingInput(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/repair", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestMinifyEndpoint(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/minify", gin.H{"input": "{\n  \"a\": 1\n}"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var res ginjsonmend.TextResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Output != `{"a":1}` {
		t.Errorf("output = %q", res.Output)
	}
}

func TestFormatEndpoint(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/format", gin.H{"input": `{"a":1}`, "indent": 4})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var res ginjsonmend.TextResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Output != "{\n    \"a\": 1\n}" {
		t.Errorf("output = %q", res.Output)
	}
}

func TestValidateEndpoint(t *testing.T) {
	router := newTestRouter()

	t.Run("valid document", func(t *testing.T) {
		doc := `{
			"name": "q3-mapping",
			"fields": [
				{"name": "rent", "type": "currency"},
				{"name": "period", "type": "date", "description": "billing month"}
			]
		}`
		req := httptest.NewRequest("POST", "/api/validate", strings.NewReader(doc))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var res ginjsonmend.ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		if !res.Valid {
			t.Errorf("valid = false, errors = %v", res.Errors)
		}
	})

	t.Run("almost-JSON document is repaired first", func(t *testing.T) {
		doc := `{'name': 'q3', 'fields': [{'name': 'rent', 'type': 'currency'},]}`
		req := httptest.NewRequest("POST", "/api/validate", strings.NewReader(doc))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var res ginjsonmend.ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		if !res.Valid {
			t.Errorf("valid = false, errors = %v", res.Errors)
		}
	})

	t.Run("unparseable document", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/validate", strings.NewReader("{totally broken"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		var res ginjsonmend.ValidateResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		if res.Valid || len(res.Errors) == 0 {
			t.Errorf("expected parse failure, got %+v", res)
		}
	})
}

func TestSchemaEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest("GET", "/api/schema", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var schema map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if schema["$ref"] == nil && schema["properties"] == nil && schema["$defs"] == nil {
		t.Errorf("unexpected schema shape: %v", schema)
	}
}
