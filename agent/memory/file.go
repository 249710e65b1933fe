package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

const DefaultFilePath = "data/memory.json"

// FileRepository keeps the log as a JSON array in a single file, rewritten on every save.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileRepository{path: path}
}

func (r *FileRepository) Path() string {
	return r.path
}

func (r *FileRepository) ReadAll(ctx context.Context) ([]contractx.MemoryEntry, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrMemoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var entries []contractx.MemoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMemoryCorrupt, r.path, err)
	}
	return entries, nil
}

func (r *FileRepository) WriteAll(ctx context.Context, entries []contractx.MemoryEntry) error {
	if entries == nil {
		entries = []contractx.MemoryEntry{}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory log: %w", err)
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create memory dir: %w", err)
		}
	}
	return os.WriteFile(r.path, payload, 0o644)
}

// InMemoryRepository is a process-local Repository, mainly for tests and dry runs.
type InMemoryRepository struct {
	entries []contractx.MemoryEntry
	saved   bool
	Writes  int
}

func NewInMemoryRepository(seed ...contractx.MemoryEntry) *InMemoryRepository {
	r := &InMemoryRepository{}
	if len(seed) > 0 {
		r.entries = append([]contractx.MemoryEntry(nil), seed...)
		r.saved = true
	}
	return r
}

func (r *InMemoryRepository) ReadAll(ctx context.Context) ([]contractx.MemoryEntry, error) {
	if !r.saved {
		return nil, ErrMemoryNotFound
	}
	return append([]contractx.MemoryEntry(nil), r.entries...), nil
}

func (r *InMemoryRepository) WriteAll(ctx context.Context, entries []contractx.MemoryEntry) error {
	r.entries = append([]contractx.MemoryEntry(nil), entries...)
	r.saved = true
	r.Writes++
	return nil
}
