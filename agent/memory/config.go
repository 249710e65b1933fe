package memory

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

const (
	BackendFile     = "file"
	BackendUpstash  = "upstash"
	BackendPostgres = "postgres"
)

type Config struct {
	Backend  string        `default:"file"`
	FilePath string        `split_words:"true" default:"data/memory.json"`
	Capacity int           `default:"10"`
	Key      string        `default:"supplychain:memory"`
	DSN      string
	Upstash  UpstashConfig `split_words:"true"`
}

// Open builds the Store for the configured backend. The returned closer releases
// backend resources and is never nil.
func Open(ctx context.Context, cfg Config) (*Store, func() error, error) {
	noop := func() error { return nil }

	var (
		repo   Repository
		closer = noop
	)
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		repo = NewFileRepository(cfg.FilePath)
	case BackendUpstash:
		r, err := NewUpstashRepository(cfg.Upstash, WithKey(cfg.Key))
		if err != nil {
			return nil, noop, err
		}
		repo = r
	case BackendPostgres:
		r, err := NewPostgresRepository(cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		if err := r.EnsureSchema(ctx); err != nil {
			_ = r.Close()
			return nil, noop, err
		}
		repo, closer = r, r.Close
	default:
		return nil, noop, fmt.Errorf("%w: unsupported memory backend=%q", contractx.ErrValidation, cfg.Backend)
	}

	store, err := NewStore(repo, WithCapacity(cfg.Capacity))
	if err != nil {
		_ = closer()
		return nil, noop, err
	}
	return store, closer, nil
}
