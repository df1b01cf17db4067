package config

//go:generate go run ../tools/schema-generator -o ../schema/llmcompare.schema.json

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for llmcompare.yml. Sections are
// strict; unknown top-level keys are allowed because they carry extension
// configuration such as logging.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	type BaseConfig struct {
		Version       string                `yaml:"version" jsonschema:"required,description=Configuration version (e.g. 1.0)"`
		API           APIConfig             `yaml:"api,omitempty" jsonschema:"description=Backend connection settings"`
		LLM           LLMDefaults           `yaml:"llm,omitempty" jsonschema:"description=Default generation parameters"`
		Summarization SummarizationDefaults `yaml:"summarization,omitempty" jsonschema:"description=Summarization feature defaults"`
		TUI           TUIConfig             `yaml:"tui,omitempty" jsonschema:"description=TUI appearance and behavior settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "llmcompare Configuration"
	schema.Description = "Schema for llmcompare.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
