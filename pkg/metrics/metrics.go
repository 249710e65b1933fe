package metrics

import (
	"io"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder exports orchestration runs as Prometheus series.
type Recorder struct {
	registry *prometheus.Registry

	runs        *prometheus.CounterVec
	iterations  prometheus.Histogram
	modelCalls  prometheus.Counter
	toolCalls   *prometheus.CounterVec
	tokens      *prometheus.CounterVec
	predictions *prometheus.CounterVec
}

var _ contractx.RunObserver = (*Recorder)(nil)

// Default backs the process-wide /metrics endpoint.
var Default = NewRecorder()

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_runs_total",
				Help: "Orchestration runs by outcome.",
			},
			[]string{"outcome"}, // completed | exhausted | error
		),
		iterations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "supplychain_run_iterations",
				Help:    "Model iterations used per run.",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
		modelCalls: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "supplychain_model_calls_total",
				Help: "Chat completion requests.",
			},
		),
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_tool_calls_total",
				Help: "Tool calls by tool and outcome.",
			},
			[]string{"tool", "outcome"},
		),
		tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_llm_tokens_total",
				Help: "Model tokens by direction.",
			},
			[]string{"direction"}, // input | output
		),
		predictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplychain_predict_requests_total",
				Help: "Direct demand forecast requests by status.",
			},
			[]string{"status"},
		),
	}
	r.registry.MustRegister(r.runs, r.iterations, r.modelCalls, r.toolCalls, r.tokens, r.predictions)
	return r
}

func (r *Recorder) ModelCalled(promptTokens, completionTokens int) {
	r.modelCalls.Inc()
	r.tokens.WithLabelValues("input").Add(float64(promptTokens))
	r.tokens.WithLabelValues("output").Add(float64(completionTokens))
}

func (r *Recorder) ToolCalled(tool string, outcome string) {
	r.toolCalls.WithLabelValues(tool, outcome).Inc()
}

func (r *Recorder) RunFinished(outcome string, iterations int) {
	r.runs.WithLabelValues(outcome).Inc()
	if iterations > 0 {
		r.iterations.Observe(float64(iterations))
	}
}

func (r *Recorder) PredictServed(status string) {
	r.predictions.WithLabelValues(status).Inc()
}

// WritePrometheus writes every series in the text exposition format.
func (r *Recorder) WritePrometheus(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
