package orchestratornode

import (
	"errors"
	"testing"
	"time"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	toolx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/tool"
)

func TestParsePolicy(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]Policy{
		"":             PolicyPermissive,
		"permissive":   PolicyPermissive,
		" Sequential ": PolicySequential,
	} {
		got, err := ParsePolicy(raw)
		if err != nil || got != want {
			t.Fatalf("ParsePolicy(%q) = %q, %v; want %q", raw, got, err, want)
		}
	}

	if _, err := ParsePolicy("random"); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSequentialPolicyAdmit(t *testing.T) {
	t.Parallel()

	var state contractx.DecisionState
	cases := []struct {
		call toolx.Call
		ok   bool
	}{
		{toolx.PredictDemand{}, true},
		{toolx.CalculateReorder{PredictedDemand: 10}, false},
		{toolx.SelectSupplier{ReorderQty: 10}, false},
		{toolx.UpdateReliability{SupplierName: "acme"}, false},
	}
	for _, tc := range cases {
		if _, ok := PolicySequential.Admit(tc.call, state); ok != tc.ok {
			t.Fatalf("Admit(%s) = %v, want %v", tc.call.Kind(), ok, tc.ok)
		}
		if _, ok := PolicyPermissive.Admit(tc.call, state); !ok {
			t.Fatalf("permissive policy rejected %s", tc.call.Kind())
		}
	}

	state.SetDemand(5)
	state.SetReorder(7)
	state.SetSupplier("acme")
	for _, tc := range cases {
		if reason, ok := PolicySequential.Admit(tc.call, state); !ok {
			t.Fatalf("Admit(%s) rejected with %q once prerequisites exist", tc.call.Kind(), reason)
		}
	}
}

func TestDecodeArguments(t *testing.T) {
	t.Parallel()

	args, err := decodeArguments("predict_demand", "  ")
	if err != nil || len(args) != 0 {
		t.Fatalf("empty payload: args=%v err=%v", args, err)
	}

	args, err = decodeArguments("calculate_reorder", `{"predicted_demand": 42}`)
	if err != nil || args["predicted_demand"] != float64(42) {
		t.Fatalf("args=%v err=%v", args, err)
	}

	if _, err := decodeArguments("calculate_reorder", `not json`); !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestStartRun(t *testing.T) {
	t.Parallel()

	st, err := StartRun(GraphInput{}, func() string { return "generated" }, nowStub)
	if err != nil || st.RunID != "generated" {
		t.Fatalf("StartRun() = %+v, %v", st, err)
	}

	st, err = StartRun(GraphInput{RunID: "given"}, func() string { return "generated" }, nowStub)
	if err != nil || st.RunID != "given" {
		t.Fatalf("StartRun() = %+v, %v", st, err)
	}

	if _, err := StartRun(GraphInput{}, func() string { return " " }, nowStub); !errors.Is(err, ErrInvalidRunID) {
		t.Fatalf("expected ErrInvalidRunID, got %v", err)
	}
}

func nowStub() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}
