package commentary

import (
	"context"
	"fmt"

	"foliopulse/internal/config"
)

// Generator is the text-generation boundary: a prompt in, free text out.
// No structural parsing of the response happens anywhere in the pipeline.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewFromConfig builds the generator selected by the configuration, or
// nil when commentary is disabled.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.CommentaryProvider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return NewOpenAI(ctx, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	case config.ProviderDeepSeek:
		return NewDeepSeek(ctx, cfg.DeepSeekAPIKey, cfg.DeepSeekModel)
	case config.ProviderNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown commentary provider %q", cfg.CommentaryProvider)
	}
}
