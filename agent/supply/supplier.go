package supply

import (
	"context"
	"fmt"
	"sort"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

// BulkOrderThreshold is the quantity above which cost no longer breaks ties.
const BulkOrderThreshold = 300

var supplierFeatures = []string{"cost", "delivery_time", "past_delays", "quality_score"}

type SupplierSelector struct {
	trainingPath string
	suppliers    SupplierRepository
	neighbors    int
}

func NewSupplierSelector(cfg Config, suppliers SupplierRepository) *SupplierSelector {
	return &SupplierSelector{
		trainingPath: cfg.dataPath(SupplierTrainingFile),
		suppliers:    suppliers,
		neighbors:    defaultNeighbors,
	}
}

func (s *SupplierSelector) SelectSupplier(ctx context.Context, reorderQty int) (contractx.SupplierSelection, error) {
	train, err := readTable(s.trainingPath)
	if err != nil {
		return contractx.SupplierSelection{}, err
	}
	x, err := train.matrix(supplierFeatures...)
	if err != nil {
		return contractx.SupplierSelection{}, err
	}
	y, err := train.floats("on_time_delivery")
	if err != nil {
		return contractx.SupplierSelection{}, err
	}
	model, err := fitKNN(x, y, s.neighbors)
	if err != nil {
		return contractx.SupplierSelection{}, err
	}

	suppliers, err := s.suppliers.LoadSuppliers(ctx)
	if err != nil {
		return contractx.SupplierSelection{}, err
	}
	if len(suppliers) == 0 {
		return contractx.SupplierSelection{}, fmt.Errorf("%w: supplier table is empty", contractx.ErrInsufficientData)
	}

	ranked := make([]contractx.RankedSupplier, 0, len(suppliers))
	for _, sup := range suppliers {
		ranked = append(ranked, contractx.RankedSupplier{
			Name:           sup.Name,
			Cost:           sup.Cost,
			DeliveryTime:   sup.DeliveryTime,
			PastDelays:     sup.PastDelays,
			QualityScore:   sup.QualityScore,
			Reliability:    sup.Reliability,
			PredictedScore: model.probability(sup.features()),
		})
	}
	ranked = RankSuppliers(ranked, reorderQty)

	best := ranked[0]
	return contractx.SupplierSelection{
		Supplier:    best.Name,
		Reliability: best.Reliability,
		Ranked:      ranked,
	}, nil
}

// RankSuppliers orders suppliers best first. Bulk orders rank on predicted
// score alone; smaller orders prefer the cheaper supplier on equal score.
// Equal keys keep table order.
func RankSuppliers(suppliers []contractx.RankedSupplier, reorderQty int) []contractx.RankedSupplier {
	out := append([]contractx.RankedSupplier(nil), suppliers...)
	bulk := reorderQty > BulkOrderThreshold
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PredictedScore != out[j].PredictedScore {
			return out[i].PredictedScore > out[j].PredictedScore
		}
		if bulk {
			return false
		}
		return out[i].Cost < out[j].Cost
	})
	return out
}
