package orchestratornode

import (
	"fmt"
	"strings"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	toolx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/tool"
)

// Policy decides whether a decoded tool call may run against the current state.
type Policy string

const (
	// PolicyPermissive runs every call in whatever order the model chooses.
	PolicyPermissive Policy = "permissive"
	// PolicySequential requires each step's input to exist before the step runs.
	PolicySequential Policy = "sequential"
)

func ParsePolicy(raw string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(raw))); p {
	case "", PolicyPermissive:
		return PolicyPermissive, nil
	case PolicySequential:
		return PolicySequential, nil
	default:
		return "", fmt.Errorf("%w: unknown orchestration policy %q", contractx.ErrValidation, raw)
	}
}

// Admit returns a rejection reason when the call is out of order.
func (p Policy) Admit(call toolx.Call, state contractx.DecisionState) (string, bool) {
	if p != PolicySequential {
		return "", true
	}

	switch call.(type) {
	case toolx.CalculateReorder:
		if state.Demand == nil {
			return requires(toolx.KindCalculateReorder, toolx.KindPredictDemand), false
		}
	case toolx.SelectSupplier:
		if state.Reorder == nil {
			return requires(toolx.KindSelectSupplier, toolx.KindCalculateReorder), false
		}
	case toolx.UpdateReliability:
		if strings.TrimSpace(state.Supplier) == "" {
			return requires(toolx.KindUpdateReliability, toolx.KindSelectSupplier), false
		}
	}
	return "", true
}

func requires(tool, prerequisite toolx.Kind) string {
	return fmt.Sprintf("%s requires %s to run first", tool, prerequisite)
}
