package orchestratornode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	toolx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/tool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	OutcomeOK       = "ok"
	OutcomeUnknown  = "unknown"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type LoopConfig struct {
	// Model must already have the tool catalog bound.
	Model         einomodel.BaseChatModel
	Executor      *toolx.Executor
	Policy        Policy
	MaxIterations int
	MaxTokens     int
	Observer      contractx.RunObserver
}

// RunToolLoop alternates model calls and tool dispatch until the model answers
// without tool calls or the iteration ceiling is reached.
func RunToolLoop(ctx context.Context, in *GraphState, cfg LoopConfig) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}
	if cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("%w: max iterations must be positive, got %d", contractx.ErrValidation, cfg.MaxIterations)
	}

	opts := []einomodel.Option{einomodel.WithToolChoice(schema.ToolChoiceAllowed)}
	if cfg.MaxTokens > 0 {
		opts = append(opts, einomodel.WithMaxTokens(cfg.MaxTokens))
	}

	for in.Iterations < cfg.MaxIterations {
		in.Iterations++
		logger := log.With().Str("run_id", in.RunID).Int("iteration", in.Iterations).Logger()

		msg, err := cfg.Model.Generate(ctx, in.Transcript, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w: iteration %d: %w", contractx.ErrModelInvoke, in.Iterations, err)
		}
		if msg == nil {
			return nil, fmt.Errorf("%w: iteration %d: empty model response", contractx.ErrSchemaViolation, in.Iterations)
		}
		observeUsage(cfg.Observer, msg)

		in.Transcript = append(in.Transcript, schema.AssistantMessage(msg.Content, msg.ToolCalls))

		if len(msg.ToolCalls) == 0 {
			in.State.AddReasoning(msg.Content)
			logger.Info().Msg("model finished without tool calls")
			return in, nil
		}

		for _, call := range msg.ToolCalls {
			payload, err := runToolCall(ctx, in, call, cfg, logger)
			if err != nil {
				return nil, err
			}
			in.Transcript = append(in.Transcript, schema.ToolMessage(payload, call.ID, schema.WithToolName(call.Function.Name)))
		}
	}

	in.Exhausted = true
	log.Warn().Str("run_id", in.RunID).Int("iterations", in.Iterations).Msg("iteration ceiling reached")
	return in, nil
}

func runToolCall(
	ctx context.Context,
	in *GraphState,
	call schema.ToolCall,
	cfg LoopConfig,
	logger zerolog.Logger,
) (string, error) {
	name := call.Function.Name
	logger = logger.With().Str("tool", name).Str("tool_call_id", call.ID).Logger()

	args, err := decodeArguments(name, call.Function.Arguments)
	if err != nil {
		observeTool(cfg.Observer, name, OutcomeFailed)
		return "", err
	}

	result, outcome, err := dispatch(ctx, in.State, name, args, cfg)
	observeTool(cfg.Observer, name, outcome)
	if err != nil {
		return "", err
	}
	result.Apply(&in.State)

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("%w: encode result for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
	}
	logger.Info().Str("outcome", outcome).RawJSON("result", payload).Msg("tool executed")
	return string(payload), nil
}

func dispatch(
	ctx context.Context,
	state contractx.DecisionState,
	name string,
	args map[string]any,
	cfg LoopConfig,
) (toolx.Result, string, error) {
	call, err := toolx.Decode(name, args)
	if errors.Is(err, toolx.ErrUnknownTool) {
		return toolx.UnknownToolResult(name), OutcomeUnknown, nil
	}
	if err != nil {
		return nil, OutcomeFailed, err
	}

	if reason, ok := cfg.Policy.Admit(call, state); !ok {
		return toolx.ErrorResult{Error: reason}, OutcomeRejected, nil
	}

	result, err := cfg.Executor.Dispatch(ctx, call)
	if err != nil {
		return nil, OutcomeFailed, err
	}
	return result, OutcomeOK, nil
}

// decodeArguments parses a tool call's JSON object. An empty payload means no arguments.
func decodeArguments(name, raw string) (map[string]any, error) {
	args := map[string]any{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contractx.ErrSchemaViolation, name, err)
	}
	return args, nil
}

func observeUsage(o contractx.RunObserver, msg *schema.Message) {
	if o == nil {
		return
	}
	var prompt, completion int
	if msg.ResponseMeta != nil && msg.ResponseMeta.Usage != nil {
		prompt = msg.ResponseMeta.Usage.PromptTokens
		completion = msg.ResponseMeta.Usage.CompletionTokens
	}
	o.ModelCalled(prompt, completion)
}

func observeTool(o contractx.RunObserver, name, outcome string) {
	if o != nil {
		o.ToolCalled(name, outcome)
	}
}
