package chat

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"license-hub/vars"
)

// CreateChatModel 按配置创建聊天模型，默认 OpenAI
func CreateChatModel(ctx context.Context, cfg *vars.Config) (model.ToolCallingChatModel, error) {
	switch cfg.LLMProvider {
	case vars.OPENAI:
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for provider %s", cfg.LLMProvider)
		}
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL, // 为空时使用官方地址
			Model:   cfg.LLMModel,
		})
		if err != nil {
			return nil, fmt.Errorf("create openai chat model failed: %w", err)
		}
		return chatModel, nil
	case vars.OLLAMA:
		chatModel, err := ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: cfg.OllamaPath, // Ollama 服务地址
			Model:   cfg.LLMModel,
		})
		if err != nil {
			return nil, fmt.Errorf("create ollama chat model failed: %w", err)
		}
		return chatModel, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.LLMProvider)
	}
}
