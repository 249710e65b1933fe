package prompt

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

// MemoryVar is the template variable the system prompt receives the rendered memory under.
const MemoryVar = "memory"

var (
	//go:embed template/system.txt
	systemRaw string

	//go:embed template/user.txt
	userRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	System string
	User   string
}

func LoadPromptSet() PromptSet {
	return PromptSet{
		System: strings.TrimSpace(systemRaw),
		User:   strings.TrimSpace(userRaw),
	}
}

func (p PromptSet) Validate() error {
	if p.System == "" {
		return fmt.Errorf("%w: system prompt", contractx.ErrPromptMissing)
	}
	if p.User == "" {
		return fmt.Errorf("%w: user prompt", contractx.ErrPromptMissing)
	}
	if !strings.Contains(p.System, "{"+MemoryVar+"}") {
		return fmt.Errorf("%w: system prompt has no {%s} slot", contractx.ErrPromptMissing, MemoryVar)
	}
	return nil
}

// Seed renders the opening system and user turns of a run.
func (p PromptSet) Seed(ctx context.Context, memorySummary string) ([]*schema.Message, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(p.System),
		schema.UserMessage(p.User),
	)
	msgs, err := template.Format(ctx, map[string]any{MemoryVar: memorySummary})
	if err != nil {
		return nil, fmt.Errorf("%w: format prompt: %v", contractx.ErrPromptMissing, err)
	}
	return msgs, nil
}
