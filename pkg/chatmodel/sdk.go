package chatmodel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// SDKModel drives the chat completion API through the official OpenAI SDK.
type SDKModel struct {
	client      openaisdk.Client
	model       string
	maxTokens   int
	temperature float32
	tools       []openaisdk.ChatCompletionToolParam
}

var _ model.ToolCallingChatModel = (*SDKModel)(nil)

func NewSDKModel(c Config, extra ...option.RequestOption) *SDKModel {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(c.APIKey)),
	}
	if base := c.baseURL(); base != "" {
		opts = append(opts, option.WithBaseURL(base))
	}
	if c.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(c.Timeout))
	}
	opts = append(opts, extra...)

	return &SDKModel{
		client:      openaisdk.NewClient(opts...),
		model:       strings.TrimSpace(c.Model),
		maxTokens:   c.MaxCompletionToken,
		temperature: c.Temperature,
	}
}

func (m *SDKModel) WithTools(tools []*schema.ToolInfo) (model.ToolCallingChatModel, error) {
	converted := make([]openaisdk.ChatCompletionToolParam, 0, len(tools))
	for _, info := range tools {
		if info == nil {
			continue
		}
		params, err := toolParameters(info)
		if err != nil {
			return nil, fmt.Errorf("convert tool=%s: %w", info.Name, err)
		}
		converted = append(converted, openaisdk.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        info.Name,
				Description: openaisdk.String(info.Desc),
				Parameters:  params,
			},
		})
	}

	clone := *m
	clone.tools = converted
	return &clone, nil
}

func (m *SDKModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	common := model.GetCommonOptions(&model.Options{
		Model:       &m.model,
		Temperature: &m.temperature,
	}, opts...)

	params := openaisdk.ChatCompletionNewParams{
		Model:    shared.ChatModel(*common.Model),
		Messages: toSDKMessages(input),
	}
	if common.Temperature != nil {
		params.Temperature = openaisdk.Float(float64(*common.Temperature))
	}
	maxTokens := m.maxTokens
	if common.MaxTokens != nil {
		maxTokens = *common.MaxTokens
	}
	if maxTokens > 0 {
		params.MaxTokens = openaisdk.Int(int64(maxTokens))
	}
	if len(m.tools) > 0 {
		params.Tools = m.tools
		params.ToolChoice = toolChoice(common.ToolChoice)
	}

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: chat completion returned no choices", contractx.ErrSchemaViolation)
	}

	choice := resp.Choices[0]
	out := schema.AssistantMessage(choice.Message.Content, nil)
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, schema.ToolCall{
			ID:   tc.ID,
			Type: "function",
			Function: schema.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	out.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(choice.FinishReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
	return out, nil
}

// Stream emits the full completion as a single chunk.
func (m *SDKModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := m.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func toSDKMessages(input []*schema.Message) []openaisdk.ChatCompletionMessageParamUnion {
	out := make([]openaisdk.ChatCompletionMessageParamUnion, 0, len(input))
	for _, msg := range input {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.System:
			out = append(out, openaisdk.SystemMessage(msg.Content))
		case schema.User:
			out = append(out, openaisdk.UserMessage(msg.Content))
		case schema.Tool:
			out = append(out, openaisdk.ToolMessage(msg.Content, msg.ToolCallID))
		case schema.Assistant:
			out = append(out, assistantMessage(msg))
		}
	}
	return out
}

func assistantMessage(msg *schema.Message) openaisdk.ChatCompletionMessageParamUnion {
	if len(msg.ToolCalls) == 0 {
		return openaisdk.AssistantMessage(msg.Content)
	}

	asst := openaisdk.ChatCompletionAssistantMessageParam{}
	if msg.Content != "" {
		asst.Content.OfString = openaisdk.String(msg.Content)
	}
	for _, tc := range msg.ToolCalls {
		asst.ToolCalls = append(asst.ToolCalls, openaisdk.ChatCompletionMessageToolCallParam{
			ID: tc.ID,
			Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return openaisdk.ChatCompletionMessageParamUnion{OfAssistant: &asst}
}

func toolChoice(choice *schema.ToolChoice) openaisdk.ChatCompletionToolChoiceOptionUnionParam {
	mode := "auto"
	if choice != nil {
		switch *choice {
		case schema.ToolChoiceForbidden:
			mode = "none"
		case schema.ToolChoiceForced:
			mode = "required"
		}
	}
	return openaisdk.ChatCompletionToolChoiceOptionUnionParam{OfAuto: openaisdk.String(mode)}
}

func toolParameters(info *schema.ToolInfo) (shared.FunctionParameters, error) {
	params := shared.FunctionParameters{"type": "object", "properties": map[string]any{}}
	if info.ParamsOneOf == nil {
		return params, nil
	}

	js, err := info.ParamsOneOf.ToJSONSchema()
	if err != nil {
		return nil, err
	}
	if js == nil {
		return params, nil
	}
	raw, err := json.Marshal(js)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, err
	}
	return params, nil
}
