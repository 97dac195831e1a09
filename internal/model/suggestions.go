package model

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SuggestionPayload is the structured reply we ask the LLM to produce for
// the suggestion stage.
type SuggestionPayload struct {
	Suggestions []string `json:"suggestions"`
}

// suggestionSchema constrains the LLM's suggestion reply: a single object
// holding a non-empty array of non-empty strings.
const suggestionSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["suggestions"],
	"properties": {
		"suggestions": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "minLength": 3}
		}
	}
}`

// ValidateSuggestions validates a decoded LLM reply against the suggestion
// schema.
func ValidateSuggestions(doc map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(suggestionSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
