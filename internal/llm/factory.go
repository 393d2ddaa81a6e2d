package llm

import (
	"context"
	"fmt"

	"lecture-companion/internal/logger"
)

// Config holds everything needed to build the process-wide Generator.
type Config struct {
	// Provider selects the backend: "gemini", "openai", "anthropic" or "mock".
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig

	Sampling          Sampling
	SystemInstruction string

	// ConcurrentRequests caps in-flight model calls. 0 disables the cap.
	ConcurrentRequests int
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

// New builds the configured Generator wrapped with the concurrency cap and
// call logging: caller → limit → logging → provider.
func New(ctx context.Context, cfg Config, log *logger.Logger) (Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Generator
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiGenerator(ctx, cfg.Gemini, cfg.Sampling, cfg.SystemInstruction)
	case "openai":
		base, err = NewOpenAIGenerator(cfg.OpenAI, cfg.Sampling, cfg.SystemInstruction)
	case "anthropic":
		base, err = NewAnthropicGenerator(cfg.Anthropic, cfg.Sampling, cfg.SystemInstruction)
	case "mock":
		base = NewMockGenerator()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithConcurrencyLimit(WithLogging(base, log), cfg.ConcurrentRequests), nil
}
