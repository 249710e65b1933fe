package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/ut"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/mithran92/Agentic-AI-In-Supply-Chain/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForecaster struct {
	demand int
	err    error
}

func (f fakeForecaster) PredictDemand(ctx context.Context) (int, error) {
	return f.demand, f.err
}

func newTestServer(t *testing.T, f fakeForecaster) *Server {
	t.Helper()
	s, err := NewServer(f, metrics.NewRecorder(), Config{})
	require.NoError(t, err)
	return s
}

func get(s *Server, path string) *ut.ResponseRecorder {
	h := s.Build(":0")
	return ut.PerformRequest(h.Engine, "GET", path, &ut.Body{Body: bytes.NewReader(nil), Len: 0})
}

func TestPredictReturnsDemand(t *testing.T) {
	s := newTestServer(t, fakeForecaster{demand: 412})

	w := get(s, "/predict")
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())

	var body map[string]int
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Equal(t, map[string]int{"demand": 412}, body)
}

func TestPredictErrorIs500(t *testing.T) {
	s := newTestServer(t, fakeForecaster{err: fmt.Errorf("%w: sales.csv", contractx.ErrDataMissing)})

	w := get(s, "/predict")
	resp := w.Result()
	require.Equal(t, 500, resp.StatusCode())

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body(), &body))
	assert.Contains(t, body["error"], "sales.csv")
}

func TestMetricsExposePredictCounter(t *testing.T) {
	s := newTestServer(t, fakeForecaster{demand: 1})

	require.Equal(t, 200, get(s, "/predict").Result().StatusCode())

	resp := get(s, "/metrics").Result()
	require.Equal(t, 200, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `supplychain_predict_requests_total{status="ok"} 1`)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, fakeForecaster{})

	resp := get(s, "/health").Result()
	require.Equal(t, 200, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), `"status":"ok"`)
}

func TestNewServerRequiresForecaster(t *testing.T) {
	_, err := NewServer(nil, nil, Config{})
	assert.Error(t, err)
}
