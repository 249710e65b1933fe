package report

import (
	"bytes"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/agents/orchestrator"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTranscript() []*schema.Message {
	return []*schema.Message{
		schema.SystemMessage("system"),
		schema.UserMessage("optimize"),
		schema.AssistantMessage("", []schema.ToolCall{
			{ID: "c1", Function: schema.FunctionCall{Name: "predict_demand", Arguments: "{}"}},
			{ID: "c2", Function: schema.FunctionCall{Name: "calculate_reorder", Arguments: `{"predicted_demand":420}`}},
		}),
		schema.ToolMessage(`{"demand":420}`, "c1"),
		schema.ToolMessage(`{"decision":"Reorder","reorder_qty":150}`, "c2"),
		schema.AssistantMessage("", []schema.ToolCall{
			{ID: "c3", Function: schema.FunctionCall{Name: "select_best_supplier", Arguments: `{"reorder_qty":150}`}},
		}),
		schema.AssistantMessage("Order **150** units from Acme.", nil),
	}
}

func TestTracePairsByPosition(t *testing.T) {
	steps := Trace(sampleTranscript())

	require.Len(t, steps, 3)
	assert.Equal(t, TraceStep{Tool: "predict_demand", Arguments: "{}", Result: `{"demand":420}`}, steps[0])
	assert.Equal(t, "calculate_reorder", steps[1].Tool)
	assert.Equal(t, `{"decision":"Reorder","reorder_qty":150}`, steps[1].Result)
	assert.Equal(t, "select_best_supplier", steps[2].Tool)
	assert.Empty(t, steps[2].Result)
}

func TestStateTable(t *testing.T) {
	var state contractx.DecisionState
	state.SetDemand(420)
	state.SetSupplier("Acme")
	state.SetReliability(0.8234)

	out := StateTable(state)
	assert.Contains(t, out, "420")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "0.82")
	assert.Contains(t, out, "Reorder")
}

func TestPrintIncludesEverySection(t *testing.T) {
	var state contractx.DecisionState
	state.SetDemand(420)
	state.SetReorder(150)
	state.SetSupplier("Acme")

	res := orchestrator.Result{
		RunID:      "run-1",
		State:      state,
		Transcript: sampleTranscript(),
		Iterations: 3,
		Persisted:  true,
	}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter(WithWidth(60)).Print(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Final state")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "Tool trace")
	assert.Contains(t, out, "select_best_supplier")
	assert.NotContains(t, out, "decision not saved")
}

func TestPrintFlagsExhaustedAndUnsaved(t *testing.T) {
	res := orchestrator.Result{RunID: "run-2", Iterations: 10, Exhausted: true}

	var buf bytes.Buffer
	require.NoError(t, NewPrinter().Print(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "iteration limit reached")
	assert.Contains(t, out, "decision not saved")
	assert.Contains(t, out, "(no explanation)")
	assert.NotContains(t, out, "Tool trace")
}
