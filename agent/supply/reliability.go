package supply

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	RewardScale = 0.02
	// MatchCutoff is the minimum similarity for a fuzzy supplier-name match.
	MatchCutoff = 0.6
)

type ReliabilityUpdater struct {
	performancePath string
	suppliers       SupplierRepository
}

func NewReliabilityUpdater(cfg Config, suppliers SupplierRepository) *ReliabilityUpdater {
	return &ReliabilityUpdater{
		performancePath: cfg.dataPath(PerformanceFile),
		suppliers:       suppliers,
	}
}

// Reward scores one delivery: a late delivery and a quality issue each cost half.
func Reward(deliveryDelay, qualityIssue float64) float64 {
	reward := 1.0
	if deliveryDelay > 1 {
		reward -= 0.5
	}
	if qualityIssue == 1 {
		reward -= 0.5
	}
	return reward
}

// UpdateReliability folds every performance record into the supplier table,
// persists it, and reports the resulting score of the named supplier. found is
// false when neither an exact nor a fuzzy name match exists.
func (u *ReliabilityUpdater) UpdateReliability(ctx context.Context, supplierName string) (float64, bool, error) {
	perf, err := readTable(u.performancePath)
	if err != nil {
		return 0, false, err
	}
	names, err := perf.strings("supplier")
	if err != nil {
		return 0, false, err
	}
	delays, err := perf.floats("delivery_delay")
	if err != nil {
		return 0, false, err
	}
	issues, err := perf.floats("quality_issue")
	if err != nil {
		return 0, false, err
	}

	suppliers, err := u.suppliers.LoadSuppliers(ctx)
	if err != nil {
		return 0, false, err
	}

	byName := make(map[string][]int, len(suppliers))
	normalized := make([]string, len(suppliers))
	for i, s := range suppliers {
		normalized[i] = normalizeName(s.Name)
		byName[normalized[i]] = append(byName[normalized[i]], i)
	}

	for i, name := range names {
		delta := Reward(delays[i], issues[i]) * RewardScale
		for _, idx := range byName[normalizeName(name)] {
			suppliers[idx].Reliability += delta
		}
	}
	for i := range suppliers {
		suppliers[i].Reliability = clamp01(suppliers[i].Reliability)
	}

	if err := u.suppliers.SaveSuppliers(ctx, suppliers); err != nil {
		return 0, false, err
	}

	target := normalizeName(supplierName)
	if idx, ok := byName[target]; ok {
		return suppliers[idx[0]].Reliability, true, nil
	}
	if match, score, ok := closestMatch(target, normalized, MatchCutoff); ok {
		log.Debug().Str("supplier", supplierName).Str("match", match).Float64("similarity", score).Msg("fuzzy supplier match")
		return suppliers[byName[match][0]].Reliability, true, nil
	}

	log.Warn().Str("supplier", supplierName).Msg("supplier not found")
	return 0, false, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
