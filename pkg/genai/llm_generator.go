package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-interviewprep-be/pkg/llm"
)

// llmGenerator adapts an llm.LLMProvider to the Generator contract.
type llmGenerator struct {
	provider llm.LLMProvider
}

func NewLLMGenerator(provider llm.LLMProvider) Generator {
	return &llmGenerator{provider: provider}
}

func (g *llmGenerator) Stream(ctx context.Context, req Request, onDelta func(accumulated string)) (*Result, error) {
	history := make([]llm.Message, 0, 2)
	if req.System != "" {
		history = append(history, llm.Message{Role: "system", Content: req.System})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Prompt})

	opts := []llm.Option{}
	if req.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(req.Temperature))
	}
	if req.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(req.MaxTokens))
	}
	if req.Model != "" {
		opts = append(opts, llm.WithModel(req.Model))
	}
	if req.APIKey != "" {
		opts = append(opts, llm.WithAPIKey(req.APIKey))
	}

	var accumulated strings.Builder
	started := time.Now()

	chatResult, err := g.provider.ChatStream(ctx, history, func(delta string) {
		accumulated.WriteString(delta)
		if onDelta != nil {
			onDelta(accumulated.String())
		}
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("llm stream: %w", err)
	}

	return &Result{
		Text:  chatResult.Content,
		Model: chatResult.Model,
		Usage: Usage{
			PromptTokens:     chatResult.PromptTokens,
			CompletionTokens: chatResult.CompletionTokens,
		},
		Latency: time.Since(started),
	}, nil
}
