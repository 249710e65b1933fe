package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

// Result is the structured payload a tool returns to the model.
// Apply folds the payload's keys into the run's decision state.
type Result interface {
	Apply(state *contractx.DecisionState)
}

type DemandResult struct {
	Demand int `json:"demand"`
}

type ReorderResult struct {
	Decision   string `json:"decision"`
	ReorderQty int    `json:"reorder_qty"`
}

type SupplierResult struct {
	Supplier    string  `json:"supplier"`
	Reliability float64 `json:"reliability"`
}

// ReliabilityResult carries a nil score when the supplier could not be matched.
type ReliabilityResult struct {
	UpdatedReliability *float64 `json:"updated_reliability"`
}

type ErrorResult struct {
	Error string `json:"error"`
}

func (r DemandResult) Apply(state *contractx.DecisionState) {
	state.SetDemand(r.Demand)
}

func (r ReorderResult) Apply(state *contractx.DecisionState) {
	state.SetReorder(r.ReorderQty)
}

func (r SupplierResult) Apply(state *contractx.DecisionState) {
	state.SetSupplier(r.Supplier)
	state.SetReliability(r.Reliability)
}

func (r ReliabilityResult) Apply(state *contractx.DecisionState) {
	if r.UpdatedReliability == nil {
		state.Reliability = nil
		return
	}
	state.SetReliability(*r.UpdatedReliability)
}

func (ErrorResult) Apply(*contractx.DecisionState) {}

func UnknownToolResult(name string) ErrorResult {
	return ErrorResult{Error: fmt.Sprintf("Unknown tool: %s", name)}
}

type Executor struct {
	forecaster  contractx.Forecaster
	reorder     contractx.ReorderCalculator
	suppliers   contractx.SupplierSelector
	reliability contractx.ReliabilityUpdater
}

func NewExecutor(
	forecaster contractx.Forecaster,
	reorder contractx.ReorderCalculator,
	suppliers contractx.SupplierSelector,
	reliability contractx.ReliabilityUpdater,
) *Executor {
	return &Executor{
		forecaster:  forecaster,
		reorder:     reorder,
		suppliers:   suppliers,
		reliability: reliability,
	}
}

// Build returns the catalog together with an executor bound to the collaborators.
func Build(
	forecaster contractx.Forecaster,
	reorder contractx.ReorderCalculator,
	suppliers contractx.SupplierSelector,
	reliability contractx.ReliabilityUpdater,
) ([]*schema.ToolInfo, *Executor) {
	return Infos(), NewExecutor(forecaster, reorder, suppliers, reliability)
}

// Execute decodes and runs one tool call. Unknown tool names produce an ErrorResult
// with a nil error; every other failure is returned as an error.
func (e *Executor) Execute(ctx context.Context, name string, args map[string]any) (Result, error) {
	call, err := Decode(name, args)
	if errors.Is(err, ErrUnknownTool) {
		return UnknownToolResult(name), nil
	}
	if err != nil {
		return nil, err
	}
	return e.Dispatch(ctx, call)
}

func (e *Executor) Dispatch(ctx context.Context, call Call) (Result, error) {
	switch c := call.(type) {
	case PredictDemand:
		demand, err := e.forecaster.PredictDemand(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool=%s: %w", c.Kind(), err)
		}
		return DemandResult{Demand: demand}, nil

	case CalculateReorder:
		decision, err := e.reorder.CalculateReorder(ctx, contractx.ReorderRequest{
			PredictedDemand:     c.PredictedDemand,
			SupplierReliability: c.SupplierReliability,
			Product:             c.Product,
		})
		if err != nil {
			return nil, fmt.Errorf("tool=%s: %w", c.Kind(), err)
		}
		return ReorderResult{Decision: decision.Decision, ReorderQty: decision.ReorderQty}, nil

	case SelectSupplier:
		selection, err := e.suppliers.SelectSupplier(ctx, c.ReorderQty)
		if err != nil {
			return nil, fmt.Errorf("tool=%s: %w", c.Kind(), err)
		}
		return SupplierResult{Supplier: selection.Supplier, Reliability: selection.Reliability}, nil

	case UpdateReliability:
		score, found, err := e.reliability.UpdateReliability(ctx, c.SupplierName)
		if err != nil {
			return nil, fmt.Errorf("tool=%s: %w", c.Kind(), err)
		}
		if !found {
			return ReliabilityResult{}, nil
		}
		return ReliabilityResult{UpdatedReliability: &score}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownTool, call)
	}
}
