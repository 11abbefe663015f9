package llm

import (
	"context"
	"strings"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive the raw generated text.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its output.
	// The request's Schema field, when set, asks the provider to use its
	// native structured output mechanism. The text is never trusted: callers
	// run it through the parse package before use.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Lesson and quiz generation send
	// one user message; tutoring turns prepend prior turns.
	Messages []Message

	// Schema is the JSON Schema the response should conform to.
	// When nil, the response is free text.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Validate checks the input constraints every adapter shares: a system role
// and a non-empty final prompt.
func (r Request) Validate() error {
	if strings.TrimSpace(r.System) == "" {
		return ErrEmptyPrompt
	}
	if len(r.Messages) == 0 || strings.TrimSpace(r.Messages[len(r.Messages)-1].Content) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "content-bundle".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Strict requests strict schema adherence where the vendor supports it.
	// Strict schemas must mark every property required.
	Strict bool

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Text is the generated output exactly as the provider returned it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
