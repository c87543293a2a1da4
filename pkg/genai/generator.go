// Package genai defines the Generator contract the orchestrator drives: a
// lazy, single-pass, non-restartable stream of accumulated model output
// followed by one final result with usage metadata.
package genai

import (
	"context"
	"time"
)

// Usage carries token accounting reported by the model backend.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
}

// Request describes one generation call. APIKey, when set, is a
// bring-your-own-credential override supplied by the caller.
type Request struct {
	System      string
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
}

// Result is the final object of a generation stream.
type Result struct {
	Text    string
	Model   string
	Usage   Usage
	Latency time.Duration
}

// Generator produces model output incrementally. OnDelta is invoked with the
// accumulated text so far (not just the delta) each time the backend yields
// more output; the sequence cannot be restarted once consumed. The returned
// Result holds the complete text plus provenance metadata.
type Generator interface {
	Stream(ctx context.Context, req Request, onDelta func(accumulated string)) (*Result, error)
}
