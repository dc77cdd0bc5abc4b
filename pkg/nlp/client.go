// Package nlp provides language-model clients used for query intent
// extraction. Clients are constructed once and passed explicitly; they are
// safe for concurrent use.
package nlp

import "context"

// Role represents the role of a message participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents one chat message.
type Message struct {
	Role    Role
	Content string
}

// Response represents a chat completion response.
type Response struct {
	Content      string
	FinishReason string
	Model        string
	TokensUsed   *TokenUsage
}

// TokenUsage tracks token consumption of one call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client is the interface for language-model providers.
type Client interface {
	// Chat sends a plain chat completion request.
	Chat(ctx context.Context, messages []Message) (*Response, error)

	// ChatWithStructuredOutput sends a chat completion request whose
	// response is constrained to the given JSON schema. The provider must
	// guarantee the returned content validates against the schema or the
	// call is considered failed. The schema argument is provider-specific
	// (the OpenAI client expects a *jsonschema.Definition).
	ChatWithStructuredOutput(ctx context.Context, messages []Message, schemaName string, schema any) (*Response, error)

	// Close cleans up resources.
	Close() error
}

// Config holds configuration for a language-model client.
type Config struct {
	Model       string
	BaseURL     string
	Temperature *float32
	MaxTokens   *int
}

// NewMessage is a convenience constructor.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}
