package orchestratornode

import (
	"context"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/rs/zerolog/log"
)

func ReadMemory(
	ctx context.Context,
	in *GraphState,
	memory contractx.MemoryStore,
) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	in.MemorySummary, in.MemoryCount = memory.Summary(ctx)
	log.Info().Str("run_id", in.RunID).Int("entries", in.MemoryCount).Msg("memory loaded")
	return in, nil
}
