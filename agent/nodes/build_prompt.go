package orchestratornode

import (
	"context"

	promptx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/prompt"
)

func BuildPrompt(
	ctx context.Context,
	in *GraphState,
	prompts promptx.PromptSet,
) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	msgs, err := prompts.Seed(ctx, in.MemorySummary)
	if err != nil {
		return nil, err
	}
	in.Transcript = msgs
	return in, nil
}
