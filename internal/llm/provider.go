// Package llm abstracts the language-model backends used for judging student
// responses. Every call goes through a Provider that returns schema-validated
// JSON; the judge layer never sees provider-specific types.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and returns structured output. When the
	// request carries a Schema, the returned Content is JSON validated
	// against it; malformed output surfaces as *ErrInvalidResponse, never
	// as a best-effort payload.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Judging calls are single-turn with one
	// user message; follow-up analysis embeds history in the message body.
	Messages []Message

	// Schema is the JSON Schema the response must conform to. Required for
	// every judging call: the engine accepts no free-form output.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero when unset.
	Temperature float64
}

// Message is a single conversation entry.
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

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "brain-dump-judgment").
	Name string

	// Description guides generation.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is the model output.
type Response struct {
	// Content is the validated JSON object when a Schema was set.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
