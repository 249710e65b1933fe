package tool

import (
	"github.com/cloudwego/eino/schema"
)

type Kind string

const (
	KindPredictDemand     Kind = "predict_demand"
	KindCalculateReorder  Kind = "calculate_reorder"
	KindSelectSupplier    Kind = "select_best_supplier"
	KindUpdateReliability Kind = "update_supplier_reliability"
)

var kinds = []Kind{
	KindPredictDemand,
	KindCalculateReorder,
	KindSelectSupplier,
	KindUpdateReliability,
}

// Kinds lists the registered tools in catalog order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Lookup resolves a tool name emitted by the model.
func Lookup(name string) (Kind, bool) {
	for _, k := range kinds {
		if string(k) == name {
			return k, true
		}
	}
	return "", false
}

// Infos returns the tool catalog exposed to the chat model.
func Infos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name:        string(KindPredictDemand),
			Desc:        "Predicts future product demand from historical sales data.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		{
			Name: string(KindCalculateReorder),
			Desc: "Calculates the reorder quantity based on predicted demand and current inventory levels.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"predicted_demand": {Type: schema.Integer, Desc: "The predicted demand value from the demand tool", Required: true},
			}),
		},
		{
			Name: string(KindSelectSupplier),
			Desc: "Selects the best supplier based on cost, delivery time, reliability and reorder quantity.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"reorder_qty": {Type: schema.Integer, Desc: "The reorder quantity used to pick the most suitable supplier", Required: true},
			}),
		},
		{
			Name: string(KindUpdateReliability),
			Desc: "Updates and returns the reliability score of the selected supplier based on past performance.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"supplier_name": {Type: schema.String, Desc: "The name of the selected supplier", Required: true},
			}),
		},
	}
}
