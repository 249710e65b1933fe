package chatmodel

import (
	"context"
	"fmt"
	"strings"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
)

func newEinoModel(ctx context.Context, c Config) (model.ToolCallingChatModel, error) {
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     c.baseURL(),
		APIKey:      strings.TrimSpace(c.APIKey),
		Model:       strings.TrimSpace(c.Model),
		Temperature: &c.Temperature,
		Timeout:     c.Timeout,
	}
	if c.MaxCompletionToken > 0 {
		maxTokens := c.MaxCompletionToken
		conf.MaxTokens = &maxTokens
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("chatmodel: create eino chat model: %w", err)
	}
	return m, nil
}
