package factory

import (
	"fmt"

	"telemed-be/internal/config"
	"telemed-be/pkg/llm"
	"telemed-be/pkg/llm/gemini"
	"telemed-be/pkg/llm/ollama"
)

// NewProvider creates an LLMProvider based on the configured backend
func NewProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider selected but GOOGLE_GEMINI_API_KEY is empty")
		}
		return gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
