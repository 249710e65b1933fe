package tool

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

var ErrUnknownTool = errors.New("unknown tool")

// Call is a decoded tool invocation. The set of implementations is closed.
type Call interface {
	Kind() Kind
	isCall()
}

type PredictDemand struct{}

type CalculateReorder struct {
	PredictedDemand     int      `mapstructure:"predicted_demand"`
	SupplierReliability *float64 `mapstructure:"supplier_reliability"`
	Product             string   `mapstructure:"product"`
}

type SelectSupplier struct {
	ReorderQty int `mapstructure:"reorder_qty"`
}

type UpdateReliability struct {
	SupplierName string `mapstructure:"supplier_name"`
}

func (PredictDemand) Kind() Kind     { return KindPredictDemand }
func (CalculateReorder) Kind() Kind  { return KindCalculateReorder }
func (SelectSupplier) Kind() Kind    { return KindSelectSupplier }
func (UpdateReliability) Kind() Kind { return KindUpdateReliability }

func (PredictDemand) isCall()     {}
func (CalculateReorder) isCall()  {}
func (SelectSupplier) isCall()    {}
func (UpdateReliability) isCall() {}

// Decode maps a tool name and its raw arguments onto a typed Call.
func Decode(name string, args map[string]any) (Call, error) {
	kind, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	switch kind {
	case KindPredictDemand:
		return PredictDemand{}, nil
	case KindCalculateReorder:
		var c CalculateReorder
		if err := decodeArgs(kind, args, &c, "predicted_demand"); err != nil {
			return nil, err
		}
		return c, nil
	case KindSelectSupplier:
		var c SelectSupplier
		if err := decodeArgs(kind, args, &c, "reorder_qty"); err != nil {
			return nil, err
		}
		return c, nil
	case KindUpdateReliability:
		var c UpdateReliability
		if err := decodeArgs(kind, args, &c, "supplier_name"); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func decodeArgs(kind Kind, args map[string]any, out any, required ...string) error {
	for _, key := range required {
		if v, ok := args[key]; !ok || v == nil {
			return fmt.Errorf("%w: tool=%s requires %s", contractx.ErrValidation, kind, key)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("build decoder for tool=%s: %w", kind, err)
	}
	if err := dec.Decode(args); err != nil {
		return fmt.Errorf("%w: invalid args for tool=%s: %v", contractx.ErrValidation, kind, err)
	}
	return nil
}
