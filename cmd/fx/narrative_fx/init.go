package narrative_fx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripplanner/internal/config"
	"tripplanner/internal/services"
	"tripplanner/pkg/utils"
)

var Module = fx.Provide(
	ProvideCompletionClient,
	ProvideNarrativeScheduler,
	ProvideNarrativeRefiner)

// ProvideCompletionClient creates the LLM client named by NARRATIVE_PROVIDER.
func ProvideCompletionClient(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (utils.JSONCompletionClient, error) {
	logger.Info("initializing narrative client", zap.String("provider", cfg.NarrativeProvider))

	switch strings.ToLower(cfg.NarrativeProvider) {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when using OpenAI provider")
		}
		return utils.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when using Gemini provider")
		}
		client, err := utils.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported narrative provider: %s. Use 'openai' or 'gemini'", cfg.NarrativeProvider)
	}
}

func ProvideNarrativeScheduler(llm utils.JSONCompletionClient) services.NarrativeScheduler {
	return services.NewLLMNarrativeScheduler(llm)
}

func ProvideNarrativeRefiner(scheduler services.NarrativeScheduler, logger *zap.Logger) services.NarrativeRefinerInterface {
	return services.NewNarrativeRefiner(scheduler, logger)
}
