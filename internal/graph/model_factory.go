package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/tradepulse/tradepulse/config"
	"github.com/tradepulse/tradepulse/internal/orchestration"
)

const defaultMaxTokens = 4096

// NewChatModel constructs the chat model for one thinker slot. DeepSeek has
// its own component; every other provider speaks the openai-compatible API
// at the run's backend endpoint.
func NewChatModel(ctx context.Context, rc *orchestration.RunConfig, cfg *config.Config, modelName string) (model.BaseChatModel, error) {
	switch rc.Provider {
	case "deepseek":
		cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:    cfg.DeepSeekAPIKey,
			Model:     modelName,
			MaxTokens: defaultMaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create deepseek model %s: %w", modelName, err)
		}
		return cm, nil
	default:
		maxTokens := defaultMaxTokens
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:   rc.BackendURL,
			APIKey:    apiKeyFor(cfg, rc.Provider),
			Model:     modelName,
			MaxTokens: &maxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s model %s: %w", rc.Provider, modelName, err)
		}
		return cm, nil
	}
}

func apiKeyFor(cfg *config.Config, provider string) string {
	switch provider {
	case "anthropic":
		return cfg.AnthropicAPIKey
	case "google":
		return cfg.GoogleAPIKey
	case "openrouter":
		return cfg.OpenRouterAPIKey
	case "ollama":
		// Local server, any non-empty key is accepted.
		return "ollama"
	default:
		return cfg.OpenAIAPIKey
	}
}
