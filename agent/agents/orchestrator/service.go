package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	memoryx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/memory"
	nodex "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/nodes"
	promptx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/prompt"
	toolx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/tool"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxIterations = 10

	OutcomeCompleted = "completed"
	OutcomeExhausted = "exhausted"
	OutcomeError     = "error"
)

var ErrInvalidRunID = nodex.ErrInvalidRunID

type Config struct {
	MaxIterations int    `split_words:"true" default:"10"`
	Policy        string `default:"permissive"`
	// MaxTokens caps each completion; zero leaves the model default.
	MaxTokens int `ignored:"true"`
}

type Option func(*Orchestrator)

func WithPublisher(p contractx.DecisionPublisher) Option {
	return func(o *Orchestrator) {
		o.publisher = p
	}
}

func WithObserver(obs contractx.RunObserver) Option {
	return func(o *Orchestrator) {
		o.observer = obs
	}
}

func WithPrompts(p promptx.PromptSet) Option {
	return func(o *Orchestrator) {
		o.prompts = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(o *Orchestrator) {
		if newID != nil {
			o.newID = newID
		}
	}
}

type Orchestrator struct {
	memory    contractx.MemoryStore
	publisher contractx.DecisionPublisher
	observer  contractx.RunObserver
	prompts   promptx.PromptSet
	loop      nodex.LoopConfig

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]

	newID func() string
	now   func() time.Time
}

// Result is the outcome of one orchestration run.
type Result struct {
	RunID       string
	State       contractx.DecisionState
	Transcript  []*schema.Message
	Iterations  int
	Exhausted   bool
	Persisted   bool
	Entry       *contractx.MemoryEntry
	MemoryCount int
}

// FinalExplanation returns the newest non-empty assistant content.
func (r Result) FinalExplanation() string {
	for i := len(r.Transcript) - 1; i >= 0; i-- {
		msg := r.Transcript[i]
		if msg != nil && msg.Role == schema.Assistant && strings.TrimSpace(msg.Content) != "" {
			return msg.Content
		}
	}
	return ""
}

func New(
	chat einomodel.ToolCallingChatModel,
	executor *toolx.Executor,
	memory contractx.MemoryStore,
	cfg Config,
	opts ...Option,
) (*Orchestrator, error) {
	if chat == nil {
		return nil, errors.New("chat model is required")
	}
	if executor == nil {
		return nil, errors.New("tool executor is required")
	}
	if memory == nil {
		memory = noopMemoryStore{}
	}

	maxIterations := cfg.MaxIterations
	if maxIterations == 0 {
		maxIterations = DefaultMaxIterations
	}
	if maxIterations < 0 {
		return nil, fmt.Errorf("%w: max iterations must be positive, got %d", contractx.ErrValidation, maxIterations)
	}
	policy, err := nodex.ParsePolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	bound, err := chat.WithTools(toolx.Infos())
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools: %v", contractx.ErrModelInvoke, err)
	}

	o := &Orchestrator{
		memory:  memory,
		prompts: promptx.LoadPromptSet(),
		newID:   uuid.NewString,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.loop = nodex.LoopConfig{
		Model:         bound,
		Executor:      executor,
		Policy:        policy,
		MaxIterations: maxIterations,
		MaxTokens:     cfg.MaxTokens,
		Observer:      o.observer,
	}

	graphRunner, err := o.compileRunGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Run executes one full optimisation pass: recall memory, drive the tool loop,
// and persist the decision when it is complete.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{})
	if err != nil {
		o.finished(OutcomeError, 0)
		log.Error().Err(err).Msg("orchestration run failed")
		return Result{}, err
	}

	outcome := OutcomeCompleted
	if out.Exhausted {
		outcome = OutcomeExhausted
	}
	o.finished(outcome, out.Iterations)

	return Result{
		RunID:       out.RunID,
		State:       out.State,
		Transcript:  out.Transcript,
		Iterations:  out.Iterations,
		Exhausted:   out.Exhausted,
		Persisted:   out.Persisted,
		Entry:       out.Entry,
		MemoryCount: out.MemoryCount,
	}, nil
}

func (o *Orchestrator) finished(outcome string, iterations int) {
	if o.observer != nil {
		o.observer.RunFinished(outcome, iterations)
	}
}

type noopMemoryStore struct{}

func (noopMemoryStore) Summary(context.Context) (string, int) {
	return memoryx.NoHistory, 0
}

func (noopMemoryStore) Record(context.Context, contractx.DecisionState) (contractx.MemoryEntry, error) {
	return contractx.MemoryEntry{}, contractx.ErrMemoryDisabled
}
