package supply

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"github.com/rs/zerolog/log"
)

const (
	DecisionReorder = "Reorder"

	lowReliability    = 0.6
	mediumReliability = 0.8
	lowBuffer         = 50
	mediumBuffer      = 20
)

var inventoryFeatures = []string{"predicted_demand", "current_stock", "past_delay", "holding_cost", "lead_time"}

type ReorderCalculator struct {
	trainingPath string
	currentPath  string
	neighbors    int
}

func NewReorderCalculator(cfg Config) *ReorderCalculator {
	return &ReorderCalculator{
		trainingPath: cfg.dataPath(InventoryTrainingFile),
		currentPath:  cfg.dataPath(InventoryFile),
		neighbors:    defaultNeighbors,
	}
}

func (c *ReorderCalculator) CalculateReorder(ctx context.Context, req contractx.ReorderRequest) (contractx.ReorderDecision, error) {
	if err := ctx.Err(); err != nil {
		return contractx.ReorderDecision{}, err
	}

	train, err := readTable(c.trainingPath)
	if err != nil {
		return contractx.ReorderDecision{}, err
	}
	x, err := train.matrix(inventoryFeatures...)
	if err != nil {
		return contractx.ReorderDecision{}, err
	}
	y, err := train.floats("reorder_qty")
	if err != nil {
		return contractx.ReorderDecision{}, err
	}
	model, err := fitKNN(x, y, c.neighbors)
	if err != nil {
		return contractx.ReorderDecision{}, err
	}

	current, err := readTable(c.currentPath)
	if err != nil {
		return contractx.ReorderDecision{}, err
	}
	row, err := inventoryRow(current, req.Product)
	if err != nil {
		return contractx.ReorderDecision{}, err
	}

	query := []float64{float64(req.PredictedDemand)}
	for _, col := range inventoryFeatures[1:] {
		v, err := current.float(row, col)
		if err != nil {
			return contractx.ReorderDecision{}, err
		}
		query = append(query, v)
	}

	qty := int(model.regress(query))
	if buffer := ReliabilityBuffer(req.SupplierReliability); buffer > 0 {
		log.Info().Int("buffer", buffer).Float64("reliability", *req.SupplierReliability).Msg("reorder buffer added")
		qty += buffer
	}
	if qty < 0 {
		qty = 0
	}

	return contractx.ReorderDecision{Decision: DecisionReorder, ReorderQty: qty}, nil
}

// ReliabilityBuffer is the safety stock added for a supplier of the given reliability.
func ReliabilityBuffer(reliability *float64) int {
	switch {
	case reliability == nil:
		return 0
	case *reliability < lowReliability:
		return lowBuffer
	case *reliability < mediumReliability:
		return mediumBuffer
	default:
		return 0
	}
}

func inventoryRow(t *table, product string) (int, error) {
	if t.len() == 0 {
		return 0, fmt.Errorf("%w: %s has no rows", contractx.ErrInsufficientData, t.path)
	}
	product = strings.TrimSpace(product)
	if product == "" {
		return 0, nil
	}
	if !t.has("product") {
		return 0, fmt.Errorf("%w: %s has no product column", contractx.ErrDataMissing, t.path)
	}
	for i := 0; i < t.len(); i++ {
		name, _ := t.cell(i, "product")
		if strings.EqualFold(name, product) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no inventory row for product %q", contractx.ErrDataMissing, product)
}
