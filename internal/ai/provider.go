// Package ai implements the generative-content pipeline: prompt templates
// for the supported generation tasks, providers that call an external
// text-generation endpoint, and an orchestrator that extracts structured
// JSON results from free-form model output under a typed error contract.
package ai

import (
	"context"
	"fmt"
)

// TextGenerator is the interface all LLM providers implement: send a single
// prompt, get the raw generated text back. Providers surface failures using
// the package's typed errors.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (TextGenerator, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model), nil
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}
