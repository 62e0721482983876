package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name:        "test-card",
		Description: "A test card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":    map[string]any{"type": "string"},
				"content":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"category": map[string]any{"type": "string", "enum": []any{"finance", "business"}},
			},
			"required":             []any{"title", "content"},
			"additionalProperties": false,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"title":"Save first","content":["a","b"],"category":"finance"}`, false},
		{"optional omitted", `{"title":"Save first","content":[]}`, false},
		{"missing required", `{"title":"Save first"}`, true},
		{"wrong item type", `{"title":"x","content":[1,2]}`, true},
		{"enum violation", `{"title":"x","content":[],"category":"cooking"}`, true},
		{"extra property", `{"title":"x","content":[],"mood":"calm"}`, true},
		{"malformed", `{not json}`, true},
		{"empty", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("expected ErrInvalidResponse, got %T", err)
			}
			if string(invalid.Content) != tt.raw {
				t.Errorf("error should carry the raw body, got %q", invalid.Content)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if err := Validate(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}

func TestValidate_CachesCompiledSchema(t *testing.T) {
	s := testSchema()
	s.Name = "test-cache"
	if err := Validate(s, json.RawMessage(`{"title":"x","content":[]}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load("test-cache"); !ok {
		t.Fatal("expected compiled schema to be cached")
	}
}
