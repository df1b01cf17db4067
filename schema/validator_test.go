package schema

import (
	"strings"
	"testing"
)

const testSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "max_words": {"type": "integer", "minimum": 20, "maximum": 500}
  }
}`

func TestValidator(t *testing.T) {
	v, err := NewValidator("test.json", []byte(testSchema))
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	t.Run("accepts valid document", func(t *testing.T) {
		if err := v.Validate(map[string]int{"max_words": 100}); err != nil {
			t.Errorf("expected valid document, got %v", err)
		}
	})

	t.Run("reports location of violation", func(t *testing.T) {
		err := v.Validate(map[string]int{"max_words": 5})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "/max_words") {
			t.Errorf("expected error to mention /max_words, got %v", err)
		}
	})

	t.Run("rejects malformed schema", func(t *testing.T) {
		if _, err := NewValidator("bad.json", []byte("{")); err == nil {
			t.Error("expected error for malformed schema")
		}
	})
}
