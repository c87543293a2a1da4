package factory

import (
	"ai-interviewprep-be/pkg/llm"
	"ai-interviewprep-be/pkg/llm/gemini"
	"ai-interviewprep-be/pkg/llm/huggingface"
	"ai-interviewprep-be/pkg/llm/ollama"
	"fmt"
)

func NewLLMProvider(providerType, modelName, baseURL, geminiKey, huggingfaceKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiKey, modelName), nil
	case "huggingface":
		if huggingfaceKey == "" {
			return nil, fmt.Errorf("huggingface provider requires HUGGINGFACE_API_KEY")
		}
		return huggingface.NewHuggingFaceProvider(huggingfaceKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
