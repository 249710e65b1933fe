package orchestratornode

import (
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

var (
	ErrInvalidRunID = errors.New("run id is empty")
	ErrNilState     = errors.New("graph state is nil")
)

type GraphInput struct {
	RunID string
}

type GraphOutput struct {
	RunID       string
	State       contractx.DecisionState
	Transcript  []*schema.Message
	Iterations  int
	Exhausted   bool
	Persisted   bool
	Entry       *contractx.MemoryEntry
	MemoryCount int
}

type GraphState struct {
	RunID string
	Now   time.Time

	MemorySummary string
	MemoryCount   int

	Transcript []*schema.Message
	State      contractx.DecisionState
	Iterations int
	Exhausted  bool

	Persisted bool
	Entry     *contractx.MemoryEntry
}

func StartRun(in GraphInput, newID func() string, nowFn func() time.Time) (*GraphState, error) {
	runID := strings.TrimSpace(in.RunID)
	if runID == "" {
		runID = strings.TrimSpace(newID())
	}
	if runID == "" {
		return nil, ErrInvalidRunID
	}

	return &GraphState{
		RunID: runID,
		Now:   nowFn(),
	}, nil
}
