package supply

import (
	"context"
	"testing"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReward(t *testing.T) {
	t.Parallel()

	cases := []struct {
		delay, quality, want float64
	}{
		{0, 0, 1},
		{1, 0, 1},
		{2, 0, 0.5},
		{0, 1, 0.5},
		{2, 1, 0},
		{0, 2, 1},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, Reward(tc.delay, tc.quality), 1e-9, "delay=%v quality=%v", tc.delay, tc.quality)
	}
}

func TestUpdateReliabilityAppliesRewardsAndClamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCSV(t, dir, PerformanceFile, `supplier,delivery_delay,quality_issue
 acme ,0,0
Acme,2,1
beta,0,0
beta,0,0
gamma,3,1
gamma,2,0
`)
	repo := NewInMemorySupplierRepository(
		Supplier{Name: "Acme", Reliability: 0.5},
		Supplier{Name: "Beta", Reliability: 0.99},
		Supplier{Name: "Gamma", Reliability: 0.01},
	)
	updater := NewReliabilityUpdater(Config{DataDir: dir}, repo)

	score, found, err := updater.UpdateReliability(context.Background(), "  ACME ")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 0.52, score, 1e-9)

	saved, err := repo.LoadSuppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 3)
	assert.Equal(t, 1, repo.Saves)
	assert.Equal(t, "Acme", saved[0].Name)
	assert.InDelta(t, 1.0, saved[1].Reliability, 1e-9)
	assert.InDelta(t, 0.02, saved[2].Reliability, 1e-9)
}

func TestUpdateReliabilityFuzzyAndMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCSV(t, dir, PerformanceFile, "supplier,delivery_delay,quality_issue\n")
	repo := NewInMemorySupplierRepository(
		Supplier{Name: "Beta Logistics", Reliability: 0.7},
		Supplier{Name: "Acme Corp", Reliability: 0.9},
	)
	updater := NewReliabilityUpdater(Config{DataDir: dir}, repo)

	score, found, err := updater.UpdateReliability(context.Background(), "Acme Corpp")
	require.NoError(t, err)
	assert.True(t, found)
	assert.InDelta(t, 0.9, score, 1e-9)

	_, found, err = updater.UpdateReliability(context.Background(), "Zeta")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUpdateReliabilityMissingPerformance(t *testing.T) {
	t.Parallel()

	updater := NewReliabilityUpdater(Config{DataDir: t.TempDir()}, NewInMemorySupplierRepository())
	_, _, err := updater.UpdateReliability(context.Background(), "acme")
	assert.ErrorIs(t, err, contractx.ErrDataMissing)
}
