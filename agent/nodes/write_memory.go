package orchestratornode

import (
	"context"
	"errors"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/rs/zerolog/log"
)

// WriteMemory persists the run only when demand, reorder and supplier were all decided.
func WriteMemory(
	ctx context.Context,
	in *GraphState,
	memory contractx.MemoryStore,
) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}

	if !in.State.Complete() {
		log.Info().Str("run_id", in.RunID).Msg("decision incomplete, memory not saved")
		return in, nil
	}

	entry, err := memory.Record(ctx, in.State)
	if errors.Is(err, contractx.ErrMemoryDisabled) {
		log.Debug().Str("run_id", in.RunID).Msg("no memory store configured, decision not saved")
		return in, nil
	}
	if err != nil {
		return nil, err
	}
	in.Persisted = true
	in.Entry = &entry
	log.Info().Str("run_id", in.RunID).Str("supplier", entry.Supplier).Msg("memory saved")
	return in, nil
}

// PublishDecision forwards a persisted entry. Delivery failures are logged, not returned.
func PublishDecision(
	ctx context.Context,
	in *GraphState,
	publisher contractx.DecisionPublisher,
) (*GraphState, error) {
	if in == nil {
		return nil, ErrNilState
	}
	if publisher == nil || !in.Persisted || in.Entry == nil {
		return in, nil
	}

	if err := publisher.PublishDecision(ctx, in.RunID, *in.Entry); err != nil {
		log.Warn().Err(err).Str("run_id", in.RunID).Msg("publish decision failed")
	}
	return in, nil
}
