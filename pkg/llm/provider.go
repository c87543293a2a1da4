package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	APIKey      string // Override provider credential (bring-your-own-key)
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithAPIKey(key string) Option {
	return func(o *Options) {
		o.APIKey = key
	}
}

// ChatResult is the final payload of a streamed chat call, including the
// usage metadata providers report alongside the last chunk.
type ChatResult struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatStream sends a chat history and invokes onDelta for every content
	// chunk the backend yields. The stream is single-pass; the returned
	// result carries the assembled content plus token usage.
	ChatStream(ctx context.Context, history []Message, onDelta func(delta string), options ...Option) (*ChatResult, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
