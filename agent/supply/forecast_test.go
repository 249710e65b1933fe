package supply

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linearSales(rows int) string {
	var b strings.Builder
	b.WriteString(strings.Join(SalesFeatures, ",") + "\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%d,10,0,0,21.5,3.2\n", 100+10*i)
	}
	return b.String()
}

func TestPredictDemandTrainsAndCaches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCSV(t, dir, SalesFile, linearSales(30))
	cfg := Config{DataDir: dir, ModelDir: filepath.Join(dir, "model")}

	first, err := NewForecaster(cfg).PredictDemand(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 400, first, 25)

	raw, err := os.ReadFile(filepath.Join(cfg.ModelDir, DemandModelFile))
	require.NoError(t, err)
	var saved demandModel
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, ForecastWindow, saved.Window)
	assert.Len(t, saved.Weights, ForecastWindow*len(SalesFeatures))

	second, err := NewForecaster(cfg).PredictDemand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPredictDemandRetrainsOnShapeMismatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCSV(t, dir, SalesFile, linearSales(30))
	cfg := Config{DataDir: dir, ModelDir: dir}
	require.NoError(t, os.WriteFile(filepath.Join(dir, DemandModelFile), []byte(`{"window":3,"weights":[1,2,3]}`), 0o644))

	got, err := NewForecaster(cfg).PredictDemand(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 400, got, 25)
}

func TestPredictDemandNeverNegative(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(strings.Join(SalesFeatures, ",") + "\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "%d,10,0,0,20,3\n", 200-10*i)
	}
	dir := t.TempDir()
	writeCSV(t, dir, SalesFile, b.String())

	got, err := NewForecaster(Config{DataDir: dir, ModelDir: dir}).PredictDemand(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got, 0)
}

func TestPredictDemandDataErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := NewForecaster(Config{DataDir: dir, ModelDir: dir}).PredictDemand(context.Background())
	assert.ErrorIs(t, err, contractx.ErrDataMissing)

	writeCSV(t, dir, SalesFile, linearSales(ForecastWindow))
	_, err = NewForecaster(Config{DataDir: dir, ModelDir: dir}).PredictDemand(context.Background())
	assert.ErrorIs(t, err, contractx.ErrInsufficientData)
}
