package tool

import (
	"testing"
)

func TestInfosCatalogOrder(t *testing.T) {
	t.Parallel()

	infos := Infos()
	if len(infos) != 4 {
		t.Fatalf("expected 4 tool infos, got %d", len(infos))
	}
	want := []Kind{KindPredictDemand, KindCalculateReorder, KindSelectSupplier, KindUpdateReliability}
	for i, k := range want {
		if infos[i].Name != string(k) {
			t.Fatalf("infos[%d].Name = %s, want %s", i, infos[i].Name, k)
		}
		if infos[i].Desc == "" {
			t.Fatalf("infos[%d] has empty description", i)
		}
		if infos[i].ParamsOneOf == nil {
			t.Fatalf("infos[%d] has no params", i)
		}
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	if k, ok := Lookup("select_best_supplier"); !ok || k != KindSelectSupplier {
		t.Fatalf("Lookup(select_best_supplier) = %q, %v", k, ok)
	}
	if _, ok := Lookup("order_pizza"); ok {
		t.Fatal("expected unknown tool lookup to fail")
	}
	if len(Kinds()) != 4 {
		t.Fatalf("expected 4 kinds, got %d", len(Kinds()))
	}
}
