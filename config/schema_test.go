package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSchema(t *testing.T) {
	data, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, true, schema["additionalProperties"], "top level must accept extension keys")

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok, "expected properties")
	for _, key := range []string{"version", "api", "llm", "summarization", "tui"} {
		assert.Contains(t, props, key)
	}
	assert.NotContains(t, props, "Extensions")
	assert.Contains(t, schema["required"], "version")
}
