package contract

import "context"

type Forecaster interface {
	PredictDemand(ctx context.Context) (int, error)
}

type ReorderCalculator interface {
	CalculateReorder(ctx context.Context, req ReorderRequest) (ReorderDecision, error)
}

type SupplierSelector interface {
	SelectSupplier(ctx context.Context, reorderQty int) (SupplierSelection, error)
}

// ReliabilityUpdater recomputes every supplier's reliability and returns the requested one.
// found is false when no supplier matches the name, exactly or fuzzily.
type ReliabilityUpdater interface {
	UpdateReliability(ctx context.Context, supplierName string) (score float64, found bool, err error)
}

type MemoryStore interface {
	Summary(ctx context.Context) (string, int)
	Record(ctx context.Context, state DecisionState) (MemoryEntry, error)
}

// RunObserver receives orchestration events, typically to export metrics.
type RunObserver interface {
	ModelCalled(promptTokens, completionTokens int)
	ToolCalled(tool string, outcome string)
	RunFinished(outcome string, iterations int)
}

// DecisionPublisher announces a persisted decision to downstream consumers.
type DecisionPublisher interface {
	PublishDecision(ctx context.Context, runID string, entry MemoryEntry) error
}
