package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRepositoryMissingFile(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(filepath.Join(t.TempDir(), "memory.json"))
	_, err := repo.ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrMemoryNotFound)
}

func TestFileRepositoryMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileRepository(path).ReadAll(context.Background())
	assert.ErrorIs(t, err, ErrMemoryCorrupt)

	store, err := NewStore(NewFileRepository(path))
	require.NoError(t, err)
	text, n := store.Summary(context.Background())
	assert.Equal(t, NoHistory, text)
	assert.Zero(t, n)
}

func TestFileRepositoryWritesWholeArray(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "memory.json")
	store, err := NewStore(NewFileRepository(path), WithCapacity(2))
	require.NoError(t, err)

	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, store.Append(ctx, entry(i)))
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "supplier-2", decoded[0]["supplier"])
	assert.Equal(t, "supplier-3", decoded[1]["supplier"])
	assert.Contains(t, decoded[0], "reliability")
}

func TestFileRepositoryNullReliability(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "memory.json")
	repo := NewFileRepository(path)
	require.NoError(t, repo.WriteAll(context.Background(), []contractx.MemoryEntry{{
		Timestamp: "2026-01-01 00:00:00", Demand: 1, Reorder: 2, Supplier: "acme",
	}}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"reliability": null`)
}
