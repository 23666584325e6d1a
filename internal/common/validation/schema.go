// internal/common/validation/schema.go
package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// IntentSchema describes a travel intent as posted by clients or returned by
// the extractor. Every field is optional and unknown fields are allowed.
const IntentSchema = `{
	"type": "object",
	"properties": {
		"destination":    {"type": ["string", "null"]},
		"origin":         {"type": ["string", "null"]},
		"departure_date": {"type": ["string", "null"]},
		"month":          {"type": ["string", "null"]},
		"mood":           {"type": ["string", "null"]},
		"duration_days":  {"type": ["number", "null"]},
		"budget": {
			"type": ["object", "null"],
			"properties": {
				"max":             {"type": ["number", "null"]},
				"constraint_type": {"type": ["string", "null"]}
			}
		},
		"connectivity": {
			"type": ["object", "null"],
			"properties": {
				"value":           {"type": ["string", "null"]},
				"constraint_type": {"type": ["string", "null"]}
			}
		},
		"interests": {
			"type": ["array", "null"],
			"items": {
				"anyOf": [
					{"type": "string"},
					{
						"type": "object",
						"required": ["type"],
						"properties": {
							"type":            {"type": "string"},
							"constraint_type": {"type": ["string", "null"]}
						}
					}
				]
			}
		},
		"text": {"type": "string"}
	}
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator holds a compiled JSON schema.
type Validator struct {
	schema *gojsonschema.Schema
}

func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// MustValidator panics on an invalid schema. For package-level schemas only.
func MustValidator(schemaJSON string) *Validator {
	v, err := NewValidator(schemaJSON)
	if err != nil {
		panic(err)
	}
	return v
}

// Intent validates holiday search requests and extracted intents.
var Intent = MustValidator(IntentSchema)

// ValidateJSON validates a raw document. Malformed JSON is an error, not an
// invalid result.
func (v *Validator) ValidateJSON(data []byte) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewBytesLoader(data))
}

// ValidateInput validates an already decoded document.
func (v *Validator) ValidateInput(doc interface{}) (*ValidationResult, error) {
	return v.validate(gojsonschema.NewGoLoader(doc))
}

func (v *Validator) validate(loader gojsonschema.JSONLoader) (*ValidationResult, error) {
	result, err := v.schema.Validate(loader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}

	return &ValidationResult{
		Valid:  result.Valid(),
		Errors: errs,
	}, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
