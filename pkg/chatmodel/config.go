package chatmodel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

const (
	DriverEino = "eino"
	DriverSDK  = "sdk"
)

type LLMBuilder interface {
	New(ctx context.Context) (model.ToolCallingChatModel, error)
}

var _ LLMBuilder = (*Config)(nil)

// Config points at any OpenAI-compatible chat completion endpoint. Defaults target Groq.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.groq.com/openai/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"llama-3.3-70b-versatile"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"1000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
	Driver             string        `envconfig:"DRIVER" split_words:"true" default:"eino"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: chat model api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: chat model name is required", contractx.ErrValidation)
	}
	if c.MaxCompletionToken < 0 {
		return fmt.Errorf("%w: max completion tokens must not be negative", contractx.ErrValidation)
	}
	switch c.driver() {
	case DriverEino, DriverSDK:
		return nil
	default:
		return fmt.Errorf("%w: unknown chat model driver %q", contractx.ErrValidation, c.Driver)
	}
}

func (c Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Driver))
	if d == "" {
		return DriverEino
	}
	return d
}

func (c Config) baseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

// New builds the chat model for the configured driver.
func (c *Config) New(ctx context.Context) (model.ToolCallingChatModel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.driver() {
	case DriverSDK:
		return NewSDKModel(*c), nil
	default:
		return newEinoModel(ctx, *c)
	}
}
