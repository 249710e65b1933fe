package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/rs/zerolog/log"
)

const (
	DefaultCapacity = 10
	RenderWindow    = 5

	NoHistory       = "No previous decisions available. This is the first run."
	timestampLayout = "2006-01-02 15:04:05"
)

var (
	ErrMemoryNotFound = errors.New("memory log not found")
	ErrMemoryCorrupt  = errors.New("memory log is malformed")
)

// Repository persists the whole memory log. Implementations return ErrMemoryNotFound
// when nothing has been saved yet and ErrMemoryCorrupt when stored data cannot be decoded.
type Repository interface {
	ReadAll(ctx context.Context) ([]contractx.MemoryEntry, error)
	WriteAll(ctx context.Context, entries []contractx.MemoryEntry) error
}

type RecallStatus string

const (
	RecallOK       RecallStatus = "ok"
	RecallEmpty    RecallStatus = "empty"
	RecallDegraded RecallStatus = "degraded"
)

// Recall is the outcome of reading the log. A degraded recall carries the read error
// and no entries; callers treat it as empty history.
type Recall struct {
	Entries []contractx.MemoryEntry
	Status  RecallStatus
	Err     error
}

type Option func(*Store)

func WithCapacity(capacity int) Option {
	return func(s *Store) {
		if capacity > 0 {
			s.capacity = capacity
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the capacity-bounded decision log. It is not safe for concurrent writers:
// Append is a read-modify-write of the whole log.
type Store struct {
	repo     Repository
	capacity int
	now      func() time.Time
}

var _ contractx.MemoryStore = (*Store)(nil)

func NewStore(repo Repository, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, errors.New("memory repository is required")
	}
	s := &Store{
		repo:     repo,
		capacity: DefaultCapacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

func (s *Store) Load(ctx context.Context) Recall {
	entries, err := s.repo.ReadAll(ctx)
	switch {
	case errors.Is(err, ErrMemoryNotFound):
		return Recall{Status: RecallEmpty}
	case err != nil:
		return Recall{Status: RecallDegraded, Err: err}
	case len(entries) == 0:
		return Recall{Status: RecallEmpty}
	default:
		return Recall{Entries: entries, Status: RecallOK}
	}
}

func (s *Store) Append(ctx context.Context, entry contractx.MemoryEntry) error {
	recall := s.Load(ctx)
	if recall.Status == RecallDegraded {
		log.Warn().Err(recall.Err).Msg("memory log unreadable, starting a fresh log")
	}

	entries := append(recall.Entries, entry)
	if len(entries) > s.capacity {
		entries = entries[len(entries)-s.capacity:]
	}

	if err := s.repo.WriteAll(ctx, entries); err != nil {
		return fmt.Errorf("write memory log: %w", err)
	}
	return nil
}

// Record appends an entry built from a complete decision state.
func (s *Store) Record(ctx context.Context, state contractx.DecisionState) (contractx.MemoryEntry, error) {
	if !state.Complete() {
		return contractx.MemoryEntry{}, fmt.Errorf("%w: decision state is incomplete", contractx.ErrValidation)
	}

	entry := contractx.MemoryEntry{
		Timestamp: s.now().Format(timestampLayout),
		Demand:    *state.Demand,
		Reorder:   *state.Reorder,
		Supplier:  state.Supplier,
	}
	// A zero score is stored as null, like an unset one.
	if state.Reliability != nil && *state.Reliability != 0 {
		rounded := roundTo(*state.Reliability, 2)
		entry.Reliability = &rounded
	}

	if err := s.Append(ctx, entry); err != nil {
		return contractx.MemoryEntry{}, err
	}
	return entry, nil
}

// Summary renders the log for the system prompt and reports how many entries exist.
func (s *Store) Summary(ctx context.Context) (string, int) {
	recall := s.Load(ctx)
	if recall.Status == RecallDegraded {
		log.Warn().Err(recall.Err).Msg("memory log unreadable, continuing without history")
	}
	return Render(recall.Entries), len(recall.Entries)
}

// Render formats the most recent entries, oldest first.
func Render(entries []contractx.MemoryEntry) string {
	if len(entries) == 0 {
		return NoHistory
	}

	if len(entries) > RenderWindow {
		entries = entries[len(entries)-RenderWindow:]
	}

	var b strings.Builder
	b.WriteString("Previous supply chain decisions (most recent last):")
	for i, e := range entries {
		fmt.Fprintf(&b, "\nRun %d (%s): Demand=%d, Reorder=%d, Supplier=%s, Reliability=%s",
			i+1, e.Timestamp, e.Demand, e.Reorder, e.Supplier, formatReliability(e.Reliability))
	}
	return b.String()
}

func formatReliability(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
