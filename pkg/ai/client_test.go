package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSuggestionsJSON(t *testing.T) {
	resp := `{"suggestions": ["Add a skills section", "Use stronger action verbs"]}`
	got := parseSuggestions(resp)
	assert.Equal(t, "- Add a skills section\n- Use stronger action verbs", got)
}

func TestParseSuggestionsFencedJSON(t *testing.T) {
	resp := "```json\n{\"suggestions\": [\"Quantify achievements\"]}\n```"
	got := parseSuggestions(resp)
	assert.Equal(t, "- Quantify achievements", got)
}

func TestParseSuggestionsProseFallback(t *testing.T) {
	resp := "Here are some suggestions:\n1. Add keywords.\n2. Shorten the summary."
	got := parseSuggestions(resp)
	assert.Equal(t, resp, got)
}

func TestParseSuggestionsInvalidSchemaFallback(t *testing.T) {
	// valid JSON, wrong shape: falls back to the raw reply
	resp := `{"suggestions": "not an array"}`
	got := parseSuggestions(resp)
	assert.Equal(t, resp, got)
}

func TestNewClientRequiresKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	_, err := NewClient()
	assert.Error(t, err)
}
