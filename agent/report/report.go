package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/cloudwego/eino/schema"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/agents/orchestrator"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

const defaultWidth = 88

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// TraceStep is one tool call paired with the result the executor sent back.
type TraceStep struct {
	Tool      string
	Arguments string
	Result    string
}

type Option func(*Printer)

func WithWidth(width int) Option {
	return func(p *Printer) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithStyle selects a glamour style by name ("dark", "light", "notty", ...).
func WithStyle(style string) Option {
	return func(p *Printer) {
		if style != "" {
			p.style = style
		}
	}
}

type Printer struct {
	width int
	style string
}

func NewPrinter(opts ...Option) *Printer {
	p := &Printer{width: defaultWidth, style: "notty"}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Printer) Print(w io.Writer, res orchestrator.Result) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Final state"))
	b.WriteString("\n")
	b.WriteString(StateTable(res.State))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s, %d iteration(s), %d remembered decision(s)", res.RunID, res.Iterations, res.MemoryCount)))
	b.WriteString("\n")
	if res.Exhausted {
		b.WriteString(warnStyle.Render("iteration limit reached before the model finished"))
		b.WriteString("\n")
	}
	if !res.Persisted {
		b.WriteString(dimStyle.Render("decision not saved: demand, reorder and supplier were not all set"))
		b.WriteString("\n")
	}

	explanation, err := p.Explanation(res.FinalExplanation())
	if err != nil {
		return err
	}
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Explanation"))
	b.WriteString("\n")
	b.WriteString(explanation)

	steps := Trace(res.Transcript)
	if len(steps) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Tool trace"))
		b.WriteString("\n")
		b.WriteString(TraceTable(steps))
		b.WriteString("\n")
	}

	_, err = io.WriteString(w, b.String())
	return err
}

// Explanation renders the model's markdown answer for the terminal.
func (p *Printer) Explanation(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return dimStyle.Render("(no explanation)") + "\n", nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(p.style),
		glamour.WithWordWrap(p.width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(markdown)
}

func StateTable(state contractx.DecisionState) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Field", "Value").
		Row("Demand", formatInt(state.Demand)).
		Row("Reorder", formatInt(state.Reorder)).
		Row("Supplier", orDash(state.Supplier)).
		Row("Reliability", formatFloat(state.Reliability)).
		String()
}

func TraceTable(steps []TraceStep) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Tool", "Arguments", "Result")
	for i, s := range steps {
		t.Row(strconv.Itoa(i+1), s.Tool, orDash(s.Arguments), orDash(s.Result))
	}
	return t.String()
}

// Trace pairs assistant tool calls with tool messages by position. Calls
// without a matching result keep an empty Result.
func Trace(transcript []*schema.Message) []TraceStep {
	var (
		steps   []TraceStep
		results []string
	)
	for _, msg := range transcript {
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.Assistant:
			for _, call := range msg.ToolCalls {
				steps = append(steps, TraceStep{Tool: call.Function.Name, Arguments: call.Function.Arguments})
			}
		case schema.Tool:
			results = append(results, msg.Content)
		}
	}
	for i := range steps {
		if i < len(results) {
			steps[i].Result = results[i]
		}
	}
	return steps
}

func formatInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
