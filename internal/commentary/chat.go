package commentary

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

const chatSystemRole = "You are a portfolio analyst writing a short plain-text briefing."

// ChatModel adapts an eino chat model to the Generator interface. OpenAI
// and DeepSeek both arrive here.
type ChatModel struct {
	model model.BaseChatModel
	name  string
}

// NewOpenAI creates an OpenAI-backed generator.
func NewOpenAI(ctx context.Context, apiKey, baseURL, modelName string) (*ChatModel, error) {
	maxTokens := 2000
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("openai model: %w", err)
	}
	return &ChatModel{model: cm, name: "openai"}, nil
}

// NewDeepSeek creates a DeepSeek-backed generator.
func NewDeepSeek(ctx context.Context, apiKey, modelName string) (*ChatModel, error) {
	cm, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: 2000,
	})
	if err != nil {
		return nil, fmt.Errorf("deepseek model: %w", err)
	}
	return &ChatModel{model: cm, name: "deepseek"}, nil
}

// Generate runs one chat completion. An empty completion counts as a
// failure so the caller falls back to the raw report.
func (c *ChatModel) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(chatSystemRole),
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", c.name, err)
	}
	text := strings.TrimSpace(msg.Content)
	if text == "" {
		return "", fmt.Errorf("%s generate: empty response", c.name)
	}
	return text, nil
}
