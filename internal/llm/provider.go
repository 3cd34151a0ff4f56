package llm

import "context"

// Provider is the core abstraction for LLM interaction.
// Consumers send a prompt and receive the model's raw text. The text may be
// malformed or empty; callers own parsing and fallback.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its text response.
	// One call is one attempt: providers never retry on their own.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Every engine in InternTrack
	// sends a single user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64

	// Format is the reply shape the caller will parse. Vendors that support
	// a JSON output mode use it; the raw text is still returned unparsed.
	Format Format
}

// Format names the top-level shape a caller expects back.
type Format int

const (
	FormatText Format = iota
	FormatJSONObject
	FormatJSONArray
)

// opening returns the first character of a well-formed reply in this
// format, or "" for free text.
func (f Format) opening() string {
	switch f {
	case FormatJSONObject:
		return "{"
	case FormatJSONArray:
		return "["
	}
	return ""
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

// UserPrompt builds a single-turn free-text request.
func UserPrompt(system, prompt string, maxTokens int, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// As returns a copy of the request expecting the given reply format.
func (r Request) As(f Format) Request {
	r.Format = f
	return r
}

// Response holds the LLM's output.
type Response struct {
	// Text is the raw generated text, untrimmed.
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
