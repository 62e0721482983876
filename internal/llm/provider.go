// Package llm wraps the language-model services that write lessons behind a
// single Provider interface.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the provider requests native structured output and the returned
	// Content has been validated against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backing service, e.g. "gemini".
	Name() string

	// ModelID returns the model the provider is configured to call.
	ModelID() string
}

// Request is a single-turn prompt plus output constraints.
type Request struct {
	System   string
	Messages []Message

	// Schema constrains the response to a JSON document. Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default in place.
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role is the sender of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema definition. Name must be kebab-case since
// providers use it as a tool or format identifier.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the model output for one Request.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request, which may differ
	// from the configured alias.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage is the token accounting reported by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
