package supply

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/rs/zerolog/log"
)

const ForecastWindow = 5

// SalesFeatures are the sales.csv columns fed to the forecaster; sales is the target.
var SalesFeatures = []string{"sales", "price", "holiday", "promotion", "temperature", "fuel_price"}

type demandModel struct {
	Window    int       `json:"window"`
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Bias      float64   `json:"bias"`
	TrainedAt time.Time `json:"trained_at"`
}

func (m *demandModel) fits(window int, features []string) bool {
	return m.Window == window &&
		slices.Equal(m.Features, features) &&
		len(m.Weights) == window*len(features)
}

func (m *demandModel) predict(flat []float64) float64 {
	v := m.Bias
	for i, w := range m.Weights {
		v += w * flat[i]
	}
	return v
}

// minMax scales each column into [0, 1] over the full table.
type minMax struct {
	min   []float64
	scale []float64
}

func fitMinMax(x [][]float64) minMax {
	d := len(x[0])
	m := minMax{min: slices.Clone(x[0]), scale: make([]float64, d)}
	hi := slices.Clone(x[0])
	for _, row := range x[1:] {
		for j, v := range row {
			m.min[j] = min(m.min[j], v)
			hi[j] = max(hi[j], v)
		}
	}
	for j := range m.scale {
		m.scale[j] = hi[j] - m.min[j]
		if m.scale[j] == 0 {
			m.scale[j] = 1
		}
	}
	return m
}

func (m minMax) apply(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - m.min[j]) / m.scale[j]
	}
	return out
}

func (m minMax) invert(col int, v float64) float64 {
	return v*m.scale[col] + m.min[col]
}

type Forecaster struct {
	salesPath string
	modelPath string
	window    int
	now       func() time.Time
}

func NewForecaster(cfg Config) *Forecaster {
	return &Forecaster{
		salesPath: cfg.dataPath(SalesFile),
		modelPath: cfg.modelPath(DemandModelFile),
		window:    ForecastWindow,
		now:       time.Now,
	}
}

// PredictDemand forecasts the next period's sales from the last window of sales.csv.
func (f *Forecaster) PredictDemand(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	t, err := readTable(f.salesPath)
	if err != nil {
		return 0, err
	}
	if t.len() <= f.window {
		return 0, fmt.Errorf("%w: %s has %d rows, need more than %d", contractx.ErrInsufficientData, f.salesPath, t.len(), f.window)
	}

	raw, err := t.matrix(SalesFeatures...)
	if err != nil {
		return 0, err
	}
	scaler := fitMinMax(raw)
	scaled := make([][]float64, len(raw))
	for i, row := range raw {
		scaled[i] = scaler.apply(row)
	}

	model, err := f.loadOrTrain(scaled)
	if err != nil {
		return 0, err
	}

	next := model.predict(flatten(scaled[len(scaled)-f.window:]))
	prediction := int(scaler.invert(0, next))
	if prediction < 0 {
		prediction = 0
	}

	log.Info().Int("predicted_demand", prediction).Msg("demand forecast")
	return prediction, nil
}

func (f *Forecaster) loadOrTrain(scaled [][]float64) (*demandModel, error) {
	saved, err := f.load()
	switch {
	case err == nil && saved.fits(f.window, SalesFeatures):
		log.Debug().Str("path", f.modelPath).Msg("loading saved demand model")
		return saved, nil
	case err == nil:
		log.Warn().Str("path", f.modelPath).Msg("saved demand model shape mismatch, retraining")
	case !errors.Is(err, os.ErrNotExist):
		log.Warn().Err(err).Str("path", f.modelPath).Msg("saved demand model unreadable, retraining")
	}

	log.Info().Str("path", f.modelPath).Msg("training new demand model")
	var x [][]float64
	var y []float64
	for i := 0; i+f.window < len(scaled); i++ {
		x = append(x, flatten(scaled[i:i+f.window]))
		y = append(y, scaled[i+f.window][0])
	}
	weights, bias, err := fitRidge(x, y, ridgeLambda)
	if err != nil {
		return nil, err
	}

	model := &demandModel{
		Window:    f.window,
		Features:  slices.Clone(SalesFeatures),
		Weights:   weights,
		Bias:      bias,
		TrainedAt: f.now().UTC(),
	}
	if err := f.save(model); err != nil {
		return nil, err
	}
	return model, nil
}

func (f *Forecaster) load() (*demandModel, error) {
	raw, err := os.ReadFile(f.modelPath)
	if err != nil {
		return nil, err
	}
	var m demandModel
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.modelPath, err)
	}
	return &m, nil
}

func (f *Forecaster) save(m *demandModel) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.modelPath), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	return os.WriteFile(f.modelPath, raw, 0o644)
}

func flatten(rows [][]float64) []float64 {
	var out []float64
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
