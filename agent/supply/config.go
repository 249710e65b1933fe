package supply

import (
	"path/filepath"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

var (
	_ contractx.Forecaster         = (*Forecaster)(nil)
	_ contractx.ReorderCalculator  = (*ReorderCalculator)(nil)
	_ contractx.SupplierSelector   = (*SupplierSelector)(nil)
	_ contractx.ReliabilityUpdater = (*ReliabilityUpdater)(nil)
)

const (
	SalesFile             = "sales.csv"
	InventoryTrainingFile = "inventory_training.csv"
	InventoryFile         = "inventory.csv"
	SupplierTrainingFile  = "supplier_training.csv"
	SuppliersFile         = "suppliers.csv"
	PerformanceFile       = "performance.csv"
	DemandModelFile       = "demand_model.json"
)

type Config struct {
	DataDir  string `split_words:"true" default:"data"`
	ModelDir string `split_words:"true" default:"model"`
}

func (c Config) dataPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

func (c Config) modelPath(name string) string {
	return filepath.Join(c.ModelDir, name)
}

// Toolset groups the four collaborators that back the agent's tools.
type Toolset struct {
	Forecaster  *Forecaster
	Reorder     *ReorderCalculator
	Selector    *SupplierSelector
	Reliability *ReliabilityUpdater
}

// NewToolset wires every collaborator against the same data directory and
// CSV-backed supplier table.
func NewToolset(cfg Config) *Toolset {
	suppliers := NewCSVSupplierRepository(cfg.dataPath(SuppliersFile))
	return &Toolset{
		Forecaster:  NewForecaster(cfg),
		Reorder:     NewReorderCalculator(cfg),
		Selector:    NewSupplierSelector(cfg, suppliers),
		Reliability: NewReliabilityUpdater(cfg, suppliers),
	}
}
