package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"resume-enhancer/internal/model"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-8b-instant"
)

// Client wraps the Groq completion API (OpenAI-compatible) behind the two
// operations the pipeline needs.
type Client struct {
	llm llms.Model
}

// NewClient builds a client from GROQ_API_KEY and the optional GROQ_MODEL /
// GROQ_BASE_URL overrides. The key must be present; callers are expected to
// have verified that at startup.
func NewClient() (*Client, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GROQ_API_KEY is not set")
	}

	base := os.Getenv("GROQ_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	mdl := os.Getenv("GROQ_MODEL")
	if mdl == "" {
		mdl = defaultModel
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(base),
		openai.WithModel(mdl),
	)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}
	return &Client{llm: llm}, nil
}

// Suggest asks the model for ATS-improvement suggestions for the resume
// text and returns them as a bullet list.
func (c *Client) Suggest(ctx context.Context, resumeText string) (string, error) {
	prompt := fmt.Sprintf(suggestionPrompt, resumeText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp) == "" {
		return "", errors.New("model returned an empty suggestion reply")
	}
	return parseSuggestions(resp), nil
}

// Rewrite asks the model for the enhanced resume text, given the original
// and the suggestion list.
func (c *Client) Rewrite(ctx context.Context, resumeText, suggestions string) (string, error) {
	prompt := fmt.Sprintf(rewritePrompt, resumeText, suggestions)
	resp, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(0.2))
	if err != nil {
		return "", err
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		return "", errors.New("model returned an empty rewrite")
	}
	return resp, nil
}

// parseSuggestions decodes the strict-JSON reply we asked for and flattens
// it to a bullet list. Models occasionally ignore the format instruction
// and answer in prose; the raw text is still usable downstream, so that is
// a fallback rather than a failure.
func parseSuggestions(resp string) string {
	trimmed := strings.TrimSpace(resp)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return strings.TrimSpace(resp)
	}
	if err := model.ValidateSuggestions(doc); err != nil {
		log.Printf("ai: suggestion reply failed schema validation: %v", err)
		return strings.TrimSpace(resp)
	}

	var payload model.SuggestionPayload
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil {
		return strings.TrimSpace(resp)
	}

	var b strings.Builder
	for _, s := range payload.Suggestions {
		b.WriteString("- ")
		b.WriteString(strings.TrimSpace(s))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
