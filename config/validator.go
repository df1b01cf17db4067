package config

import (
	"sync"

	"github.com/grovetools/llmcompare/schema"
)

var (
	compiledOnce sync.Once
	compiled     *schema.Validator
	compileErr   error
)

// SchemaValidator validates configuration against the generated JSON Schema.
type SchemaValidator struct {
	validator *schema.Validator
}

// NewSchemaValidator returns a validator for the schema produced by
// GenerateSchema. The schema is compiled once per process.
func NewSchemaValidator() (*SchemaValidator, error) {
	compiledOnce.Do(func() {
		data, err := GenerateSchema()
		if err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = schema.NewValidator("llmcompare.schema.json", data)
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return &SchemaValidator{validator: compiled}, nil
}

// Validate validates configuration data against the schema.
func (v *SchemaValidator) Validate(configData interface{}) error {
	return v.validator.Validate(configData)
}
