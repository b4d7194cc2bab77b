package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkadlec/face-lounge/internal/ai"
	"github.com/dkadlec/face-lounge/internal/config"
)

// createAIProvider builds the inference provider selected by name.
func createAIProvider(cfg *config.Config, providerName string) (ai.Provider, error) {
	switch providerName {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, errors.New("GEMINI_API_KEY environment variable is required")
		}
		pricing := cfg.GetModelPricing("gemini-2.5-flash")
		provider, err := ai.NewGeminiProvider(context.Background(), cfg.Gemini.APIKey,
			ai.RequestPricing{Input: pricing.Input, Output: pricing.Output})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini provider: %w", err)
		}
		return provider, nil
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, errors.New("OPENAI_TOKEN environment variable is required")
		}
		pricing := cfg.GetModelPricing("gpt-4.1-mini")
		return ai.NewOpenAIProvider(cfg.OpenAI.Token,
			ai.RequestPricing{Input: pricing.Input, Output: pricing.Output}), nil
	case "ollama":
		return ai.NewOllamaProvider(cfg.Ollama.URL, cfg.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: gemini, openai, ollama)", providerName)
	}
}

// printUsage reports token usage and cost of the finished run.
func printUsage(provider ai.Provider) {
	usage := provider.GetUsage()
	if usage.InputTokens > 0 || usage.OutputTokens > 0 {
		fmt.Printf("\nAPI Usage:\n")
		fmt.Printf("  Input tokens: %d\n", usage.InputTokens)
		fmt.Printf("  Output tokens: %d\n", usage.OutputTokens)
		fmt.Printf("  Total cost: $%.4f\n", usage.TotalCost)
	}
}
