package contract

import "strings"

// DecisionState accumulates the latest values reported by tool results during one run.
// Every field is overwritten, never merged, when a result carries its key.
type DecisionState struct {
	Demand      *int     `json:"demand"`
	Reorder     *int     `json:"reorder"`
	Supplier    string   `json:"supplier,omitempty"`
	Reliability *float64 `json:"reliability"`
	Reasoning   []string `json:"reasoning,omitempty"`
}

func (s *DecisionState) SetDemand(v int) {
	s.Demand = &v
}

func (s *DecisionState) SetReorder(v int) {
	s.Reorder = &v
}

func (s *DecisionState) SetSupplier(v string) {
	s.Supplier = v
}

func (s *DecisionState) SetReliability(v float64) {
	s.Reliability = &v
}

func (s *DecisionState) AddReasoning(note string) {
	s.Reasoning = append(s.Reasoning, note)
}

// Complete reports whether demand, reorder and supplier are all set to non-zero values.
// Only complete runs are written to memory.
func (s DecisionState) Complete() bool {
	return s.Demand != nil && *s.Demand != 0 &&
		s.Reorder != nil && *s.Reorder != 0 &&
		strings.TrimSpace(s.Supplier) != ""
}

// MemoryEntry is one persisted record of a completed run.
type MemoryEntry struct {
	Timestamp   string   `json:"timestamp"`
	Demand      int      `json:"demand"`
	Reorder     int      `json:"reorder"`
	Supplier    string   `json:"supplier"`
	Reliability *float64 `json:"reliability"`
}

type ReorderRequest struct {
	PredictedDemand     int
	SupplierReliability *float64
	Product             string
}

type ReorderDecision struct {
	Decision   string `json:"decision"`
	ReorderQty int    `json:"reorder_qty"`
}

type RankedSupplier struct {
	Name           string  `json:"supplier"`
	Cost           float64 `json:"cost"`
	DeliveryTime   float64 `json:"delivery_time"`
	PastDelays     float64 `json:"past_delays"`
	QualityScore   float64 `json:"quality_score"`
	Reliability    float64 `json:"reliability"`
	PredictedScore float64 `json:"predicted_score"`
}

type SupplierSelection struct {
	Supplier    string           `json:"supplier"`
	Reliability float64          `json:"reliability"`
	Ranked      []RankedSupplier `json:"ranked"`
}
